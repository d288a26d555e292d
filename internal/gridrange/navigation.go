package gridrange

import (
	"fmt"

	"github.com/pstuifzand/tui-grid/internal/utils"
)

// Direction is the scan order used when moving through the cells of a
// selection.
type Direction int

const (
	// Down scans the rows of a column, then moves to the next column.
	Down Direction = iota
	// Up scans rows upward, then moves to the previous column.
	Up
	// Left scans columns leftward, then moves to the previous row.
	Left
	// Right scans the columns of a row, then moves to the next row.
	Right
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func invalidDirection(d Direction) string {
	return fmt.Sprintf("gridrange: invalid direction %d", int(d))
}

// StartCell returns the first cell of r when scanning in direction: the top
// left for Down and Right, the bottom right for Up and Left. It panics for an
// unbounded range.
func (r Range) StartCell(direction Direction) Cell {
	utils.Assert(r.IsBounded(), "gridrange: cannot get the start cell of an unbounded range")

	switch direction {
	case Down, Right:
		return Cell{Column: r.StartColumn.value, Row: r.StartRow.value}
	case Up, Left:
		return Cell{Column: r.EndColumn.value, Row: r.EndRow.value}
	}
	panic(invalidDirection(direction))
}

// NextCell returns the cell after (column, row) in direction. When the scan
// axis reaches the edge of r it wraps to the next line; false means the end
// of r was reached. A cursor outside r moves to the closest cell inside it.
// It panics for an unbounded range.
func (r Range) NextCell(column, row int, direction Direction) (Cell, bool) {
	utils.Assert(r.IsBounded(), "gridrange: bounded range required")

	startColumn, endColumn := r.StartColumn.value, r.EndColumn.value
	startRow, endRow := r.StartRow.value, r.EndRow.value

	switch direction {
	case Down:
		if row < endRow {
			return Cell{Column: column, Row: max(row+1, startRow)}, true
		}
		if column < endColumn {
			return Cell{Column: max(column+1, startColumn), Row: startRow}, true
		}
	case Up:
		if row > startRow {
			return Cell{Column: column, Row: min(row-1, endRow)}, true
		}
		if column > startColumn {
			return Cell{Column: min(column-1, endColumn), Row: endRow}, true
		}
	case Right:
		if column < endColumn {
			return Cell{Column: max(column+1, startColumn), Row: row}, true
		}
		if row < endRow {
			return Cell{Column: startColumn, Row: max(row+1, startRow)}, true
		}
	case Left:
		if column > startColumn {
			return Cell{Column: min(column-1, endColumn), Row: row}, true
		}
		if row > startRow {
			return Cell{Column: endColumn, Row: min(row-1, endRow)}, true
		}
	default:
		panic(invalidDirection(direction))
	}

	return Cell{}, false
}

// NextCell returns the cell to focus after cursor within the selected ranges.
// Inside a range the cursor advances within it. At the end of a range, or
// when the cursor is nil or outside every range, it jumps to the start cell
// of the next range (Down/Right) or the previous one (Up/Left), wrapping
// around the list. It returns false only when ranges is empty.
func NextCell(ranges []Range, cursor *Cell, direction Direction) (Cell, bool) {
	if len(ranges) == 0 {
		return Cell{}, false
	}

	rangeIndex := -1
	if cursor != nil {
		for i, r := range ranges {
			if r.ContainsCell(cursor.Column, cursor.Row) {
				rangeIndex = i
				break
			}
		}

		if rangeIndex >= 0 {
			if next, ok := ranges[rangeIndex].NextCell(cursor.Column, cursor.Row, direction); ok {
				return next, true
			}
		}
	}

	switch direction {
	case Down, Right:
		next := 0
		if rangeIndex < len(ranges)-1 {
			next = rangeIndex + 1
		}
		return ranges[next].StartCell(direction), true
	case Up, Left:
		next := len(ranges) - 1
		if rangeIndex > 0 {
			next = rangeIndex - 1
		}
		return ranges[next].StartCell(direction), true
	}
	panic(invalidDirection(direction))
}

// ForEach calls fn for every cell of r in scan order. index counts from zero
// within r. It panics for an unbounded range.
func (r Range) ForEach(fn func(column, row, index int), direction Direction) {
	cell := r.StartCell(direction)
	for i := 0; ; i++ {
		fn(cell.Column, cell.Row, i)

		next, ok := r.NextCell(cell.Column, cell.Row, direction)
		if !ok {
			return
		}
		cell = next
	}
}

// ForEachCell calls ForEach on each range in turn.
func ForEachCell(ranges []Range, fn func(column, row, index int), direction Direction) {
	for _, r := range ranges {
		r.ForEach(fn, direction)
	}
}
