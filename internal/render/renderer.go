// Package render paints a grid frame onto a Surface. A Renderer holds only
// memoized helpers; everything else comes from the State passed to Paint.
package render

import (
	"github.com/pstuifzand/tui-grid/internal/memo"
	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/theme"
	"github.com/pstuifzand/tui-grid/internal/utils"
)

// DefaultFontWidth is the character width used when the metrics have none
// for the current font.
const DefaultFontWidth = 1.0

const (
	TreeMarkerCollapsed = "▸"
	TreeMarkerExpanded  = "▾"
)

// shadowAlpha is the opacity of the shadow next to nested rows and dragged
// items.
const shadowAlpha = 0.15

type truncateKey struct {
	text           string
	width          int
	fontWidth      float64
	truncationChar string
	font           string
}

type backgroundKey struct {
	colors   string
	maxDepth int
}

type alphaKey struct {
	color theme.Color
	alpha float64
}

// Renderer draws the grid. It is not safe for concurrent use.
type Renderer struct {
	truncated   *memo.Cache[truncateKey, string]
	backgrounds *memo.Cache[backgroundKey, [][]theme.Color]
	alpha       *memo.Cache[alphaKey, theme.Color]
	dark        *memo.Cache[theme.Color, bool]
}

// New creates a Renderer with empty caches.
func New() *Renderer {
	return &Renderer{
		truncated:   memo.New[truncateKey, string](memo.StringCacheCapacity),
		backgrounds: memo.New[backgroundKey, [][]theme.Color](memo.DefaultCapacity),
		alpha:       memo.New[alphaKey, theme.Color](memo.DefaultCapacity),
		dark:        memo.New[theme.Color, bool](memo.DefaultCapacity),
	}
}

// Paint draws one frame of state onto s.
func (r *Renderer) Paint(s Surface, state *State) {
	utils.Assert(state.Theme != nil && state.Model != nil && state.Metrics != nil,
		"render: state needs a theme, model and metrics")

	p := newPainter(s)
	p.save()
	p.font = state.Theme.Font

	r.drawBackground(p, state)
	r.drawGrid(p, state)
	r.drawHeaders(p, state)
	r.drawFooters(p, state)
	r.drawDraggingColumn(p, state)
	r.drawDraggingRow(p, state)
	r.drawScrollBars(p, state)

	p.restore()
}

func (r *Renderer) drawBackground(p *painter, state *State) {
	m := state.Metrics
	p.fillRect(0, 0, m.Width, m.Height, state.Theme.BackgroundColor)
}

func (r *Renderer) drawGrid(p *painter, state *State) {
	m := state.Metrics

	p.save()
	p.translate(m.GridX, m.GridY)

	r.drawGridBackground(p, state, !state.isDraggingItem())
	r.drawCellContents(p, state)
	r.drawFloatingRows(p, state)
	r.drawFloatingColumns(p, state)

	p.restore()
}

func (r *Renderer) fontWidth(m *metrics.Metrics, font string) float64 {
	if w, ok := m.FontWidths[font]; ok && w > 0 {
		return w
	}
	return DefaultFontWidth
}

func (r *Renderer) truncatedString(p *painter, text string, width int, fontWidth float64, truncationChar string) string {
	key := truncateKey{text, width, fontWidth, truncationChar, p.font}
	return r.truncated.GetOrCompute(key, func() string {
		return TruncateToWidth(p.measure, text, width, fontWidth, truncationChar)
	})
}

// backgroundColors returns, per stripe color, the shades for each depth.
func (r *Renderer) backgroundColors(colors string, maxDepth int) [][]theme.Color {
	maxDepth = max(1, maxDepth)
	return r.backgrounds.GetOrCompute(backgroundKey{colors, maxDepth}, func() [][]theme.Color {
		var sets [][]theme.Color
		for _, c := range theme.ParseColorList(colors) {
			shades := make([]theme.Color, maxDepth)
			for depth := range maxDepth {
				shades[depth] = theme.DarkenForDepth(c, depth, maxDepth)
			}
			sets = append(sets, shades)
		}
		return sets
	})
}

func (r *Renderer) colorWithAlpha(c theme.Color, alpha float64) theme.Color {
	return r.alpha.GetOrCompute(alphaKey{c, alpha}, func() theme.Color {
		return theme.WithAlpha(c, alpha)
	})
}

func (r *Renderer) isDark(c theme.Color) bool {
	return r.dark.GetOrCompute(c, func() bool {
		return theme.IsDark(c)
	})
}
