package render

import (
	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/model"
)

// selectionViewport limits which part of the selection a pass draws.
// left/top/right/bottom are visible indexes standing in for unbounded range
// ends; the min/max coordinates are where a range that continues past the
// viewport is cut off.
type selectionViewport struct {
	left, top, right, bottom int
	minX, minY, maxX, maxY   int
}

// newSelectionViewport covers the whole viewport, with edges just off the
// surface so their outline is not drawn.
func newSelectionViewport(m *metrics.Metrics) selectionViewport {
	return selectionViewport{
		left:   m.Left,
		top:    m.Top,
		right:  m.Right,
		bottom: m.Bottom,
		minX:   -1,
		minY:   -1,
		maxX:   m.Width + 1,
		maxY:   m.Height + 1,
	}
}

// isCursorVisible reports whether the keyboard cursor is drawn as the
// active cell.
func (s *State) isCursorVisible() bool {
	if _, ok := model.AsEditable(s.Model); !ok {
		return false
	}
	if s.EditingCell != nil || s.isDraggingItem() || s.Cursor == nil {
		return false
	}
	_, ok := cellRect(s.Metrics, s.Cursor.Column, s.Cursor.Row)
	return ok
}

func (r *Renderer) drawSelectedRanges(p *painter, state *State, vp selectionViewport) {
	t := state.Theme
	m := state.Metrics
	if len(state.SelectedRanges) == 0 {
		return
	}

	cursorVisible := state.isCursorVisible()
	if cursorVisible {
		// The active cell is styled on its own
		cell, _ := cellRect(m, state.Cursor.Column, state.Cursor.Row)
		p.save()
		p.exclude(cell.X, cell.Y, cell.W, cell.H)
	}

	for _, selected := range state.SelectedRanges {
		startColumn := selected.StartColumn.Or(vp.left)
		startRow := selected.StartRow.Or(vp.top)
		endColumn := selected.EndColumn.Or(vp.right)
		endRow := selected.EndRow.Or(vp.bottom)

		if endRow < vp.top || vp.bottom < startRow || endColumn < vp.left || vp.right < startColumn {
			continue
		}

		x := vp.minX
		if startColumn >= vp.left {
			if columnX, ok := m.VisibleColumnXs[startColumn]; ok {
				x = columnX
			}
		}
		y := vp.minY
		if startRow >= vp.top {
			if rowY, ok := m.VisibleRowYs[startRow]; ok {
				y = max(rowY, 0)
			}
		}
		endX := vp.maxX
		if endColumn <= vp.right {
			if columnEnd, ok := itemEnd(m.VisibleColumnXs, m.VisibleColumnWidths, endColumn); ok {
				endX = columnEnd
			}
		}
		endY := vp.maxY
		if endRow <= vp.bottom {
			if rowEnd, ok := itemEnd(m.VisibleRowYs, m.VisibleRowHeights, endRow); ok {
				endY = rowEnd
			}
		}

		p.fillRect(x, y, endX-x, endY-y, t.SelectionColor)
		p.strokeRect(x, y, endX-x, endY-y, t.SelectionOutlineColor)
	}

	if cursorVisible {
		p.restore()
		r.drawActiveCell(p, state, state.Cursor.Column, state.Cursor.Row)
	}
}

// drawActiveCell outlines the cell under the keyboard cursor.
func (r *Renderer) drawActiveCell(p *painter, state *State, column, row int) {
	cell, ok := cellRect(state.Metrics, column, row)
	if !ok {
		return
	}
	p.roundRect(cell.X, cell.Y, cell.W, cell.H, state.Theme.SelectionOutlineColor)
}
