package app

import (
	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/transform"
)

func (a *App) hasCells() bool {
	return a.model.RowCount() > 0 && a.model.ColumnCount() > 0
}

// firstCell is the top left cell that is not hidden
func (a *App) firstCell() gridrange.Cell {
	return gridrange.Cell{Column: a.metrics.FirstColumn, Row: a.metrics.FirstRow}
}

func (a *App) modelColumn(column int) int {
	return transform.GetModelIndex(column, a.movedColumns)
}

func (a *App) modelRow(row int) int {
	return transform.GetModelIndex(row, a.movedRows)
}

func (a *App) isColumnHidden(column int) bool {
	return transform.CheckColumnHidden(a.modelColumn(column), a.calc.UserColumnWidths())
}

// nextShownColumn steps from column in direction step, skipping hidden
// columns. It returns column when there is none.
func (a *App) nextShownColumn(column, step int) int {
	if step == 0 {
		return column
	}
	for next := column + step; next >= 0 && next < a.model.ColumnCount(); next += step {
		if !a.isColumnHidden(next) {
			return next
		}
	}
	return column
}

// moveCursor moves the cursor by columns and rows. With extend the
// selection grows from the anchor instead of following the cursor.
func (a *App) moveCursor(columns, rows int, extend bool) {
	if !a.hasCells() {
		return
	}
	c := a.cursor
	c.Column = a.nextShownColumn(c.Column, columns)
	c.Row += rows
	a.setCursor(c, extend)
}

// page moves the cursor one screen of rows
func (a *App) page(direction int) {
	m := a.metrics
	rows := max(1, m.BottomVisible-m.TopVisible)
	a.moveCursor(0, direction*rows, false)
}

// setCursor places the cursor on c, clamped to the grid, and scrolls it
// into view
func (a *App) setCursor(c gridrange.Cell, extend bool) {
	if !a.hasCells() {
		a.selection = nil
		return
	}
	c.Column = clamp(c.Column, 0, a.model.ColumnCount()-1)
	c.Row = clamp(c.Row, 0, a.model.RowCount()-1)

	a.cursor = c
	if !extend {
		a.anchor = c
	}
	a.selection = []gridrange.Range{gridrange.NewBounded(a.anchor.Column, a.anchor.Row, c.Column, c.Row)}
	a.scrollToCursor()
}

// scrollToCursor scrolls the least amount that makes the cursor fully
// visible. Floating items are always visible.
func (a *App) scrollToCursor() {
	a.relayout()
	state := a.layoutState()
	m := a.metrics
	c := a.cursor

	if !transform.IsFloatingRow(c.Row, m) {
		switch {
		case c.Row < m.TopVisible:
			a.top = a.calc.GetTopForTopVisible(state, c.Row)
		case c.Row > m.BottomVisible:
			a.top = a.calc.GetTopForBottomVisible(state, c.Row)
		}
	}
	if !transform.IsFloatingColumn(c.Column, m) {
		switch {
		case c.Column < m.LeftVisible:
			a.left = a.calc.GetLeftForLeftVisible(state, c.Column)
		case c.Column > m.RightVisible:
			a.left = a.calc.GetLeftForRightVisible(state, c.Column)
		}
	}
	a.relayout()
}

// clampCursor keeps the cursor and selection inside the grid after the row
// count changed
func (a *App) clampCursor() {
	a.relayout()
	if !a.hasCells() {
		a.selection = nil
		return
	}
	rows := a.model.RowCount()
	if a.cursor.Row < rows && a.anchor.Row < rows {
		return
	}
	a.anchor.Row = min(a.anchor.Row, rows-1)
	a.setCursor(gridrange.Cell{Column: a.cursor.Column, Row: min(a.cursor.Row, rows-1)}, true)
}

// nextSelectedCell moves the cursor through the selection without changing
// it
func (a *App) nextSelectedCell(direction gridrange.Direction) {
	bounded := a.boundedSelection()
	if len(bounded) == 0 {
		return
	}
	if gridrange.CellCount(bounded) <= 1 {
		switch direction {
		case gridrange.Down:
			a.moveCursor(0, 1, false)
		case gridrange.Right:
			a.moveCursor(1, 0, false)
		case gridrange.Left:
			a.moveCursor(-1, 0, false)
		}
		return
	}

	cursor := a.cursor
	next, ok := gridrange.NextCell(bounded, &cursor, direction)
	if !ok {
		return
	}
	a.cursor = next
	a.scrollToCursor()
}

// boundedSelection is the selection limited to the grid
func (a *App) boundedSelection() []gridrange.Range {
	return gridrange.BoundedRanges(a.selection, a.model.ColumnCount(), a.model.RowCount())
}

// selectedSpan returns the columns (or rows) covered by the selection when
// it is a single bounded block containing the cursor
func (a *App) selectedSpan(columns bool) (start, end int) {
	pos := a.cursor.Row
	if columns {
		pos = a.cursor.Column
	}
	if len(a.selection) != 1 {
		return pos, pos
	}
	r := a.selection[0]
	s, e := r.StartRow, r.EndRow
	if columns {
		s, e = r.StartColumn, r.EndColumn
	}
	if !s.IsBounded() || !e.IsBounded() {
		return pos, pos
	}
	return s.MustValue(), e.MustValue()
}

// moveColumns moves the selected columns by delta, staying out of the
// floating columns
func (a *App) moveColumns(delta int) {
	m := a.metrics
	start, end := a.selectedSpan(true)
	if start+delta < m.FloatingLeftColumnCount || end+delta >= m.ColumnCount-m.FloatingRightColumnCount ||
		transform.IsFloatingColumn(start, m) || transform.IsFloatingColumn(end, m) {
		return
	}
	for column := start; column <= end; column++ {
		if !a.model.IsColumnMovable(a.modelColumn(column)) {
			a.SetStatus("Column cannot be moved")
			return
		}
	}

	a.movedColumns = transform.MoveRange(start, end, start+delta, a.movedColumns, false)
	a.shiftSelection(delta, 0)
	a.layoutChanged()
}

// moveRows moves the selected rows by delta
func (a *App) moveRows(delta int) {
	m := a.metrics
	start, end := a.selectedSpan(false)
	if start+delta < m.FloatingTopRowCount || end+delta >= m.RowCount-m.FloatingBottomRowCount ||
		transform.IsFloatingRow(start, m) || transform.IsFloatingRow(end, m) {
		return
	}
	for row := start; row <= end; row++ {
		if !a.model.IsRowMovable(a.modelRow(row)) {
			a.SetStatus("Row cannot be moved")
			return
		}
	}

	a.movedRows = transform.MoveRange(start, end, start+delta, a.movedRows, false)
	a.shiftSelection(0, delta)
	a.layoutChanged()
}

func (a *App) shiftSelection(columns, rows int) {
	for i, r := range a.selection {
		a.selection[i] = gridrange.Offset(r, columns, rows)
	}
	a.cursor.Column += columns
	a.cursor.Row += rows
	a.anchor.Column += columns
	a.anchor.Row += rows
	a.scrollToCursor()
}

// resizeColumn changes the width of the cursor column by delta, not
// below the theme's minimum
func (a *App) resizeColumn(delta int) {
	width := a.calc.ColumnWidth(a.layoutState(), a.cursor.Column) + delta
	a.calc.SetColumnWidth(a.modelColumn(a.cursor.Column), max(width, a.theme.MinColumnWidth))
	a.layoutChanged()
}

func (a *App) resetColumnWidth() {
	a.calc.ResetColumnWidth(a.modelColumn(a.cursor.Column))
	a.layoutChanged()
}

// hideColumn hides the cursor column and moves the cursor to a shown one
func (a *App) hideColumn() {
	if a.nextShownColumn(a.cursor.Column, 1) == a.cursor.Column && a.nextShownColumn(a.cursor.Column, -1) == a.cursor.Column {
		a.SetStatus("Cannot hide the last column")
		return
	}

	a.calc.SetColumnWidth(a.modelColumn(a.cursor.Column), 0)
	next := a.nextShownColumn(a.cursor.Column, 1)
	if next == a.cursor.Column {
		next = a.nextShownColumn(a.cursor.Column, -1)
	}
	a.layoutChanged()
	a.setCursor(gridrange.Cell{Column: next, Row: a.cursor.Row}, false)
}

// showColumns shows all hidden columns
func (a *App) showColumns() {
	hidden := 0
	for column, width := range a.calc.UserColumnWidths() {
		if width == 0 {
			a.calc.ResetColumnWidth(column)
			hidden++
		}
	}
	if hidden > 0 {
		a.layoutChanged()
	}
}

// toggleRow expands or collapses the tree row under the cursor
func (a *App) toggleRow() {
	e, ok := model.AsExpandable(a.model)
	if !ok {
		return
	}
	row := a.modelRow(a.cursor.Row)
	if !e.IsRowExpandable(row) {
		a.SetStatus("Row cannot be expanded")
		return
	}
	e.SetRowExpanded(row, !e.IsRowExpanded(row), false)
	a.clampCursor()
}

func (a *App) setAllExpanded(expanded bool) {
	e, ok := model.AsExpandable(a.model)
	if !ok {
		return
	}
	if expanded {
		e.ExpandAll()
	} else {
		e.CollapseAll()
	}
	a.clampCursor()
}

// scrollBy scrolls by whole rows and columns
func (a *App) scrollBy(columns, rows int) {
	a.left += columns
	a.top += rows
	a.relayout()
}

// layoutChanged marks the layout as changed since it was saved
func (a *App) layoutChanged() {
	a.dirty = a.layouts != nil
	a.relayout()
}
