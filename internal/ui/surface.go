package ui

import (
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-grid/internal/render"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

// Outlines can't be drawn between terminal cells, so they tint the cells
// they cover instead.
const (
	strokeTint = 0.25
	roundTint  = 0.5
)

type surfaceState struct {
	clip     render.Rect
	excludes []render.Rect
}

var _ render.Surface = (*Screen)(nil)

func (s *Screen) resetClip() {
	s.clip = render.Rect{W: s.width, H: s.height}
	s.excludes = nil
	s.saved = s.saved[:0]
}

func (s *Screen) Save() {
	s.saved = append(s.saved, surfaceState{clip: s.clip, excludes: slices.Clone(s.excludes)})
}

func (s *Screen) Restore() {
	if len(s.saved) == 0 {
		return
	}
	last := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.clip, s.excludes = last.clip, last.excludes
}

func (s *Screen) Clip(r render.Rect) {
	s.clip = s.clip.Intersect(r)
}

func (s *Screen) Exclude(r render.Rect) {
	s.excludes = append(s.excludes, r)
}

// visible reports whether drawing at x, y is allowed by the clip and
// exclude state.
func (s *Screen) visible(x, y int) bool {
	if !s.clip.Contains(x, y) {
		return false
	}
	for _, r := range s.excludes {
		if r.Contains(x, y) {
			return false
		}
	}
	return true
}

// cells calls fn for every drawable cell of r.
func (s *Screen) cells(r render.Rect, fn func(x, y int)) {
	area := r.Intersect(s.clip)
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if s.visible(x, y) {
				fn(x, y)
			}
		}
	}
}

// colorOf converts a terminal color back to a theme color. The terminal
// default gives an unset color.
func colorOf(c tcell.Color) theme.Color {
	if !c.Valid() {
		return ""
	}
	r, g, b := c.RGB()
	if r < 0 {
		return ""
	}
	return theme.RGBToColor(int(r), int(g), int(b))
}

// over paints c on top of the terminal color under it.
func (s *Screen) over(under tcell.Color, c theme.Color) tcell.Color {
	if c.Alpha() >= 1 {
		return c.Tcell()
	}
	base := colorOf(under)
	if !base.IsSet() {
		base = s.Theme.BackgroundColor
	}
	return theme.Blend(base, c).Tcell()
}

// FillRect paints the background of r. Opaque colors also clear the text,
// translucent ones tint what is there.
func (s *Screen) FillRect(r render.Rect, c theme.Color) {
	opaque := c.Alpha() >= 1
	s.cells(r, func(x, y int) {
		ch, style := s.GetCell(x, y)
		_, bg, _ := style.Decompose()
		style = style.Background(s.over(bg, c))
		if opaque {
			ch = ' '
		}
		s.SetCell(x, y, ch, style)
	})
}

func (s *Screen) tint(x, y int, c theme.Color, alpha float64) tcell.Style {
	_, style := s.GetCell(x, y)
	_, bg, _ := style.Decompose()
	return style.Background(s.over(bg, theme.WithAlpha(c, c.Alpha()*alpha)))
}

// StrokeRect tints the background of the edge cells of r.
func (s *Screen) StrokeRect(r render.Rect, c theme.Color) {
	s.cells(r, func(x, y int) {
		if x != r.X && x != r.Right()-1 && y != r.Y && y != r.Bottom()-1 {
			return
		}
		ch, _ := s.GetCell(x, y)
		s.SetCell(x, y, ch, s.tint(x, y, c, strokeTint))
	})
}

// RoundRect marks the active cell: a stronger tint and underlined text.
func (s *Screen) RoundRect(r render.Rect, c theme.Color) {
	s.cells(r, func(x, y int) {
		ch, _ := s.GetCell(x, y)
		s.SetCell(x, y, ch, s.tint(x, y, c, roundTint).Underline(true))
	})
}

// line draws a box drawing rune at x, y, joining it with a crossing line.
func (s *Screen) line(x, y int, r rune, c theme.Color) {
	ch, style := s.GetCell(x, y)
	_, bg, _ := style.Decompose()
	if (r == '─' && ch == '│') || (r == '│' && ch == '─') {
		r = '┼'
	}
	s.SetCell(x, y, r, style.Foreground(s.over(bg, c)))
}

func (s *Screen) HLine(x1, x2, y int, c theme.Color) {
	s.cells(render.Rect{X: x1, Y: y, W: x2 - x1, H: 1}, func(x, y int) {
		s.line(x, y, '─', c)
	})
}

func (s *Screen) VLine(x, y1, y2 int, c theme.Color) {
	s.cells(render.Rect{X: x, Y: y1, W: 1, H: y2 - y1}, func(x, y int) {
		s.line(x, y, '│', c)
	})
}

// FillText draws text over the current backgrounds. Attributes set by
// RoundRect are kept.
func (s *Screen) FillText(x, y int, text string, c theme.Color, font string) {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		if s.visible(x, y) && (w == 1 || s.visible(x+1, y)) {
			_, style := s.GetCell(x, y)
			_, bg, _ := style.Decompose()
			style = FontStyle(style.Foreground(s.over(bg, c)), font)
			s.SetCell(x, y, r, style)
		}
		x += w
	}
}

func (s *Screen) MeasureText(text, font string) int {
	return StringWidth(text)
}
