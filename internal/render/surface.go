package render

import "github.com/pstuifzand/tui-grid/internal/theme"

// Rect is an axis aligned rectangle in surface units.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers nothing.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the unit at x, y lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and o, empty when they do not touch.
func (r Rect) Intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Offset returns r moved by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Surface is what the renderer paints on. Coordinates are absolute surface
// units. Clip and Exclude restrict every later drawing call until the
// matching Restore.
type Surface interface {
	Size() (width, height int)

	Save()
	Restore()
	// Clip limits drawing to r, intersected with the current clip.
	Clip(r Rect)
	// Exclude punches a hole: nothing is drawn inside r.
	Exclude(r Rect)

	// FillRect paints the background of r. Translucent colors blend with
	// what is already there.
	FillRect(r Rect, c theme.Color)
	// StrokeRect outlines the inner edge of r.
	StrokeRect(r Rect, c theme.Color)
	// RoundRect outlines r with rounded corners; used for the active cell.
	RoundRect(r Rect, c theme.Color)
	// HLine draws a horizontal line over x1 up to but not including x2.
	HLine(x1, x2, y int, c theme.Color)
	// VLine draws a vertical line over y1 up to but not including y2.
	VLine(x, y1, y2 int, c theme.Color)

	// FillText draws text with its left edge at x on row y.
	FillText(x, y int, text string, c theme.Color, font string)
	MeasureText(text, font string) int
}

type paintState struct {
	dx, dy int
	font   string
}

// painter applies a translation and current font on top of a Surface and
// skips calls with unset colors or empty areas. save and restore cover both.
type painter struct {
	s      Surface
	dx, dy int
	font   string
	saved  []paintState
}

func newPainter(s Surface) *painter {
	return &painter{s: s}
}

func (p *painter) save() {
	p.s.Save()
	p.saved = append(p.saved, paintState{p.dx, p.dy, p.font})
}

func (p *painter) restore() {
	p.s.Restore()
	last := p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
	p.dx, p.dy, p.font = last.dx, last.dy, last.font
}

func (p *painter) translate(dx, dy int) {
	p.dx += dx
	p.dy += dy
}

func (p *painter) rect(x, y, w, h int) Rect {
	return Rect{X: x + p.dx, Y: y + p.dy, W: w, H: h}
}

func (p *painter) clip(x, y, w, h int) {
	p.s.Clip(p.rect(x, y, w, h))
}

func (p *painter) exclude(x, y, w, h int) {
	p.s.Exclude(p.rect(x, y, w, h))
}

func (p *painter) fillRect(x, y, w, h int, c theme.Color) {
	if !c.IsSet() || w <= 0 || h <= 0 {
		return
	}
	p.s.FillRect(p.rect(x, y, w, h), c)
}

func (p *painter) strokeRect(x, y, w, h int, c theme.Color) {
	if !c.IsSet() || w <= 0 || h <= 0 {
		return
	}
	p.s.StrokeRect(p.rect(x, y, w, h), c)
}

func (p *painter) roundRect(x, y, w, h int, c theme.Color) {
	if !c.IsSet() || w <= 0 || h <= 0 {
		return
	}
	p.s.RoundRect(p.rect(x, y, w, h), c)
}

func (p *painter) hLine(x1, x2, y int, c theme.Color) {
	if !c.IsSet() || x2 <= x1 {
		return
	}
	p.s.HLine(x1+p.dx, x2+p.dx, y+p.dy, c)
}

func (p *painter) vLine(x, y1, y2 int, c theme.Color) {
	if !c.IsSet() || y2 <= y1 {
		return
	}
	p.s.VLine(x+p.dx, y1+p.dy, y2+p.dy, c)
}

func (p *painter) fillText(x, y int, text string, c theme.Color) {
	if text == "" || !c.IsSet() {
		return
	}
	p.s.FillText(x+p.dx, y+p.dy, text, c, p.font)
}

func (p *painter) measure(text string) int {
	return p.s.MeasureText(text, p.font)
}
