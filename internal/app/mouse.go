package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/render"
	"github.com/pstuifzand/tui-grid/internal/transform"
)

// WheelLines is how many cells one wheel notch scrolls
const WheelLines = 3

const wheelButtons = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	a.mouse = &render.Point{X: x, Y: y}
	buttons := ev.Buttons()
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch {
	case buttons&wheelButtons != 0:
		a.scrollWheel(buttons, shift)
	case buttons&tcell.Button1 != 0:
		if a.mouseDown {
			a.dragTo(x, y)
		} else {
			a.click(x, y, shift)
		}
		a.mouseDown = true
	default:
		a.mouseDown = false
	}
}

// scrollWheel scrolls by the wheel delta, horizontally with shift
func (a *App) scrollWheel(buttons tcell.ButtonMask, shift bool) {
	wheel := transform.WheelEvent{DeltaMode: transform.DeltaPixel, Shift: shift}
	switch {
	case buttons&tcell.WheelUp != 0:
		wheel.DeltaY = -WheelLines
	case buttons&tcell.WheelDown != 0:
		wheel.DeltaY = WheelLines
	case buttons&tcell.WheelLeft != 0:
		wheel.DeltaX = -WheelLines
	case buttons&tcell.WheelRight != 0:
		wheel.DeltaX = WheelLines
	}

	m := a.metrics
	dx, dy := transform.GetScrollDelta(wheel,
		float64(m.Width), float64(m.Height),
		float64(a.theme.ColumnWidth), float64(a.theme.RowHeight))

	columns := 0
	if dx != 0 {
		// A notch moves at least one column
		columns = int(dx) / max(1, a.theme.ColumnWidth)
		if columns == 0 {
			columns = sign(int(dx))
		}
	}
	a.scrollBy(columns, int(dy)/max(1, a.theme.RowHeight))
}

// click selects the cell, column or row under x, y. Clicking a tree marker
// expands or collapses its row.
func (a *App) click(x, y int, extend bool) {
	m := a.metrics
	p := transform.GetGridPointFromXY(x, y, m)

	switch {
	case p.HasColumn && p.HasRow:
		if a.clickTreeMarker(p) {
			return
		}
		a.setCursor(gridrange.Cell{Column: p.Column, Row: p.Row}, extend)
	case p.HasColumn && y < m.GridY:
		a.selectColumns(p.Column, extend)
	case p.HasRow && x < m.GridX:
		a.selectRows(p.Row, extend)
	}
}

// dragTo extends the selection to the cell under x, y
func (a *App) dragTo(x, y int) {
	p := transform.GetGridPointFromXY(x, y, a.metrics)
	if p.HasColumn && p.HasRow && (p.Column != a.cursor.Column || p.Row != a.cursor.Row) {
		a.setCursor(gridrange.Cell{Column: p.Column, Row: p.Row}, true)
	}
}

func (a *App) clickTreeMarker(p transform.GridPoint) bool {
	m := a.metrics
	if p.Column != m.FirstColumn {
		return false
	}
	e, ok := model.AsExpandable(a.model)
	if !ok {
		return false
	}
	box, ok := m.VisibleRowTreeBoxes[p.Row]
	if !ok {
		return false
	}

	x := p.X - m.GridX - m.VisibleColumnXs[p.Column]
	y := p.Y - m.GridY - m.VisibleRowYs[p.Row]
	if x < box.X1 || x >= box.X2 || y < box.Y1 || y >= box.Y2 {
		return false
	}

	row := a.modelRow(p.Row)
	e.SetRowExpanded(row, !e.IsRowExpanded(row), false)
	a.clampCursor()
	return true
}

// selectColumns selects whole columns from the anchor to column
func (a *App) selectColumns(column int, extend bool) {
	a.setCursor(gridrange.Cell{Column: column, Row: a.metrics.TopVisible}, extend)
	a.selection = []gridrange.Range{gridrange.New(
		gridrange.At(a.anchor.Column), gridrange.Unbounded,
		gridrange.At(column), gridrange.Unbounded,
	)}
}

// selectRows selects whole rows from the anchor to row
func (a *App) selectRows(row int, extend bool) {
	a.setCursor(gridrange.Cell{Column: a.metrics.LeftVisible, Row: row}, extend)
	a.selection = []gridrange.Range{gridrange.New(
		gridrange.Unbounded, gridrange.At(a.anchor.Row),
		gridrange.Unbounded, gridrange.At(row),
	)}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
