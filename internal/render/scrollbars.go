package render

import (
	"math"
	"slices"

	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/transform"
)

// scrollBarHover works out which scroll bar the mouse is over. The vertical
// bar wins in the corner where both overlap.
func scrollBarHover(state *State) (horizontal, vertical bool) {
	t := state.Theme
	m := state.Metrics
	mouse := state.Mouse
	inBounds := mouse != nil && mouse.X <= m.Width && mouse.Y <= m.Height

	vertical = state.IsDraggingVerticalScrollBar ||
		(m.HasVerticalBar && !state.IsDraggingHorizontalScrollBar && !state.IsDragging &&
			inBounds && mouse.X >= m.Width-t.ScrollBarHoverSize && mouse.Y >= m.BarTop)

	horizontal = state.IsDraggingHorizontalScrollBar ||
		(m.HasHorizontalBar && !state.IsDraggingVerticalScrollBar && !state.IsDragging && !vertical &&
			inBounds && mouse.Y >= m.Height-t.ScrollBarHoverSize && mouse.X >= m.BarLeft)

	return horizontal, vertical
}

// selectedAxisRanges merges the bounded spans of the selection on one axis.
func selectedAxisRanges(ranges []gridrange.Range, axis func(gridrange.Range) (gridrange.Index, gridrange.Index)) []transform.AxisRange {
	var spans []transform.AxisRange
	for _, r := range ranges {
		start, end := axis(r)
		if start.IsBounded() && end.IsBounded() {
			spans = append(spans, transform.AxisRange{Start: start, End: end})
		}
	}
	slices.SortFunc(spans, transform.CompareRanges)
	return transform.MergeSortedRanges(spans)
}

func columnAxis(r gridrange.Range) (gridrange.Index, gridrange.Index) { return r.StartColumn, r.EndColumn }
func rowAxis(r gridrange.Range) (gridrange.Index, gridrange.Index)    { return r.StartRow, r.EndRow }

// tickPosition maps an index onto a scroll track. Indexes up to last move
// the handle; the rest fall inside the handle at its end position.
func tickPosition(index, last, count, barSize, handleSize int) float64 {
	if index <= last {
		if last <= 0 {
			return 0
		}
		return float64(index) / float64(last) * float64(barSize-handleSize)
	}
	if count <= last {
		return float64(barSize)
	}
	return float64(barSize-handleSize) + float64(index-last)/float64(count-last)*float64(handleSize)
}

func round(v float64) int {
	return int(math.Round(v))
}

func (r *Renderer) drawScrollBars(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	if t.ScrollBarSize <= 0 {
		return
	}

	horizontalHover, verticalHover := scrollBarHover(state)
	hSize := t.ScrollBarSize
	if horizontalHover {
		hSize = t.ScrollBarHoverSize
	}
	vSize := t.ScrollBarSize
	if verticalHover {
		vSize = t.ScrollBarHoverSize
	}
	casing := t.ScrollBarCasingWidth

	p.save()
	p.translate(m.BarLeft, m.BarTop)

	if m.HasHorizontalBar && m.HasVerticalBar {
		// Corner where the bars meet
		x := m.Width - m.BarLeft - t.ScrollBarSize
		y := m.Height - m.BarTop - t.ScrollBarSize
		p.fillRect(x, y, t.ScrollBarSize, t.ScrollBarSize, t.ScrollBarCasingColor)
		p.fillRect(x+casing, y+casing, t.ScrollBarSize-casing, t.ScrollBarSize-casing, t.ScrollBarCornerColor)
	}

	if m.HasHorizontalBar {
		y := m.Height - m.BarTop - hSize
		track := hSize - casing

		p.fillRect(0, y, m.BarWidth, track, t.ScrollBarCasingColor)

		trackColor := t.ScrollBarBackgroundColor
		if horizontalHover {
			trackColor = t.ScrollBarHoverBackgroundColor
		}
		p.fillRect(0, y+casing, m.BarWidth, track, trackColor)

		thumb := t.ScrollBarColor
		if state.IsDraggingHorizontalScrollBar {
			thumb = t.ScrollBarActiveColor
		} else if horizontalHover {
			thumb = t.ScrollBarHoverColor
		}
		p.fillRect(m.ScrollX, y+casing, m.HandleWidth, track, thumb)

		if !t.AutoSelectRow && t.ScrollBarSelectionTick &&
			t.ScrollBarSelectionTickColor.IsSet() && t.ScrollBarActiveSelectionTickColor.IsSet() {
			r.drawHorizontalTicks(p, state, y+casing, track)
		}
	}

	if m.HasVerticalBar {
		x := m.Width - m.BarLeft - vSize
		track := vSize - casing

		p.fillRect(x, 0, track, m.BarHeight, t.ScrollBarCasingColor)

		trackColor := t.ScrollBarBackgroundColor
		if verticalHover {
			trackColor = t.ScrollBarHoverBackgroundColor
		}
		p.fillRect(x+casing, 0, track, m.BarHeight, trackColor)

		thumb := t.ScrollBarColor
		if state.IsDraggingVerticalScrollBar {
			thumb = t.ScrollBarActiveColor
		} else if verticalHover {
			thumb = t.ScrollBarHoverColor
		}
		p.fillRect(x+casing, m.ScrollY, track, m.HandleHeight, thumb)

		if !t.AutoSelectColumn && t.ScrollBarSelectionTick &&
			t.ScrollBarSelectionTickColor.IsSet() && t.ScrollBarActiveSelectionTickColor.IsSet() {
			r.drawVerticalTicks(p, state, x+casing, track)
		}
	}

	p.restore()
}

// drawHorizontalTicks marks the selected columns on the horizontal track,
// which starts at y and is track units high.
func (r *Renderer) drawHorizontalTicks(p *painter, state *State, y, track int) {
	t := state.Theme
	m := state.Metrics
	tickX := func(index int) float64 {
		return tickPosition(index, m.LastLeft, m.ColumnCount, m.BarWidth, m.HandleWidth)
	}

	size := max(1, round(float64(track)/3))
	offset := round(float64(track) / 3)
	for _, span := range selectedAxisRanges(state.SelectedRanges, columnAxis) {
		start, end := span.Start.MustValue(), span.End.MustValue()
		if c := state.Cursor; c != nil && start == c.Column && end == c.Column {
			continue
		}
		x := tickX(start)
		width := max(1, round(tickX(end+1)-x))
		p.fillRect(round(x), y+offset, width, size, t.ScrollBarSelectionTickColor)
	}

	if c := state.Cursor; c != nil {
		p.fillRect(round(tickX(c.Column)), y, 2, track, t.ScrollBarActiveSelectionTickColor)
	}
}

// drawVerticalTicks marks the selected rows on the vertical track, which
// starts at x and is track units wide.
func (r *Renderer) drawVerticalTicks(p *painter, state *State, x, track int) {
	t := state.Theme
	m := state.Metrics
	tickY := func(index int) float64 {
		return tickPosition(index, m.LastTop, m.RowCount, m.BarHeight, m.HandleHeight)
	}

	size := max(1, round(float64(track)/3))
	offset := round(float64(track) / 3)
	for _, span := range selectedAxisRanges(state.SelectedRanges, rowAxis) {
		start, end := span.Start.MustValue(), span.End.MustValue()
		if c := state.Cursor; c != nil && start == c.Row && end == c.Row {
			continue
		}
		y := tickY(start)
		height := max(1, round(tickY(end+1)-y))
		p.fillRect(x+offset, round(y), size, height, t.ScrollBarSelectionTickColor)
	}

	if c := state.Cursor; c != nil {
		p.fillRect(x, round(tickY(c.Row)), track, 2, t.ScrollBarActiveSelectionTickColor)
	}
}
