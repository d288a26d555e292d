// Package gridrange models rectangular regions of a grid's (column, row)
// index space. Any edge of a range may be unbounded, so a whole row, a whole
// column or the entire grid can be expressed without knowing the grid size.
package gridrange

import (
	"fmt"
	"math"
)

// Range is a rectangle of cells. Ranges are values; every operation returns a
// new range.
type Range struct {
	StartColumn Index
	StartRow    Index
	EndColumn   Index
	EndRow      Index
}

// Cell is a single column/row position.
type Cell struct {
	Column int
	Row    int
}

// New returns a range with each bounded axis ordered so start <= end.
func New(startColumn, startRow, endColumn, endRow Index) Range {
	return Normalize(startColumn, startRow, endColumn, endRow)
}

// NewBounded returns a range where every edge is bounded.
func NewBounded(startColumn, startRow, endColumn, endRow int) Range {
	return New(At(startColumn), At(startRow), At(endColumn), At(endRow))
}

// Normalize swaps the ends of any bounded axis that is out of order.
// Unbounded ends are left where they are.
func Normalize(startColumn, startRow, endColumn, endRow Index) Range {
	if startColumn.bounded && endColumn.bounded && endColumn.value < startColumn.value {
		startColumn, endColumn = endColumn, startColumn
	}
	if startRow.bounded && endRow.bounded && endRow.value < startRow.value {
		startRow, endRow = endRow, startRow
	}
	return Range{
		StartColumn: startColumn,
		StartRow:    startRow,
		EndColumn:   endColumn,
		EndRow:      endRow,
	}
}

// MakeCell returns a range covering one cell.
func MakeCell(column, row int) Range {
	return Range{At(column), At(row), At(column), At(row)}
}

// MakeColumn returns a range covering every row of one column.
func MakeColumn(column int) Range {
	return Range{At(column), Unbounded, At(column), Unbounded}
}

// MakeRow returns a range covering every column of one row.
func MakeRow(row int) Range {
	return Range{Unbounded, At(row), Unbounded, At(row)}
}

// Full returns the range covering the whole grid.
func Full() Range {
	return Range{}
}

func (r Range) String() string {
	return fmt.Sprintf("Range(%s,%s,%s,%s)", r.StartColumn, r.StartRow, r.EndColumn, r.EndRow)
}

// Equals reports whether all four edges match exactly.
func (r Range) Equals(other Range) bool {
	return r == other
}

// IsBounded reports whether every edge of r is bounded.
func (r Range) IsBounded() bool {
	return r.StartColumn.bounded && r.StartRow.bounded && r.EndColumn.bounded && r.EndRow.bounded
}

// IsFullRow reports whether r spans every column.
func (r Range) IsFullRow() bool {
	return !r.StartColumn.bounded && !r.EndColumn.bounded
}

// IsFullColumn reports whether r spans every row.
func (r Range) IsFullColumn() bool {
	return !r.StartRow.bounded && !r.EndRow.bounded
}

// Contains reports whether other lies completely inside r. An unbounded edge
// of r contains anything on that side; a bounded edge never contains an
// unbounded one.
func (r Range) Contains(other Range) bool {
	return containsStart(r.StartColumn, other.StartColumn) &&
		containsStart(r.StartRow, other.StartRow) &&
		containsEnd(r.EndColumn, other.EndColumn) &&
		containsEnd(r.EndRow, other.EndRow)
}

func containsStart(outer, inner Index) bool {
	return !outer.bounded || (inner.bounded && outer.value <= inner.value)
}

func containsEnd(outer, inner Index) bool {
	return !outer.bounded || (inner.bounded && outer.value >= inner.value)
}

// Contains is the function form of Range.Contains.
func Contains(a, b Range) bool {
	return a.Contains(b)
}

// ContainsCell reports whether the cell is inside r.
func (r Range) ContainsCell(column, row int) bool {
	return (!r.StartColumn.bounded || r.StartColumn.value <= column) &&
		(!r.EndColumn.bounded || r.EndColumn.value >= column) &&
		(!r.StartRow.bounded || r.StartRow.value <= row) &&
		(!r.EndRow.bounded || r.EndRow.value >= row)
}

// ContainsCell reports whether any of the ranges contains the cell.
func ContainsCell(ranges []Range, column, row int) bool {
	for _, r := range ranges {
		if r.ContainsCell(column, row) {
			return true
		}
	}
	return false
}

// IsAxisRangeTouching reports whether the closed intervals [start1, end1] and
// [start2, end2] overlap or sit next to each other with no gap.
func IsAxisRangeTouching(start1, end1, start2, end2 Index) bool {
	if !start1.bounded {
		if !end1.bounded || !start2.bounded {
			return true
		}
		return start2.value <= end1.value+1
	}

	if !end1.bounded {
		if !end2.bounded {
			return true
		}
		return end2.value >= start1.value-1
	}

	if !start2.bounded {
		if !end2.bounded {
			return true
		}
		return start1.value <= end2.value+1
	}

	if !end2.bounded {
		return end1.value >= start2.value-1
	}

	if start2.value >= start1.value-1 {
		return start2.value <= end1.value+1
	}

	return end2.value >= start1.value-1
}

// Touches reports whether r and other overlap or are adjacent on both axes,
// i.e. whether they could be described by one continuous range.
func (r Range) Touches(other Range) bool {
	return IsAxisRangeTouching(r.StartRow, r.EndRow, other.StartRow, other.EndRow) &&
		IsAxisRangeTouching(r.StartColumn, r.EndColumn, other.StartColumn, other.EndColumn)
}

// Intersection returns the overlapping area of a and b. The second result is
// false when they do not overlap.
func Intersection(a, b Range) (Range, bool) {
	if a == b {
		return a, true
	}

	startColumn := intersectStart(a.StartColumn, b.StartColumn)
	endColumn := intersectEnd(a.EndColumn, b.EndColumn)
	startRow := intersectStart(a.StartRow, b.StartRow)
	endRow := intersectEnd(a.EndRow, b.EndRow)

	if isEmptyAxis(startColumn, endColumn) || isEmptyAxis(startRow, endRow) {
		return Range{}, false
	}

	return Range{startColumn, startRow, endColumn, endRow}, true
}

func intersectStart(a, b Index) Index {
	if a.bounded && b.bounded {
		return At(max(a.value, b.value))
	}
	if a.bounded {
		return a
	}
	return b
}

func intersectEnd(a, b Index) Index {
	if a.bounded && b.bounded {
		return At(min(a.value, b.value))
	}
	if a.bounded {
		return a
	}
	return b
}

func isEmptyAxis(start, end Index) bool {
	return start.bounded && end.bounded && start.value > end.value
}

// SubtractFromRange returns the parts of r not covered by subtract, as up to
// four disjoint ranges: above, middle-left, middle-right and below the
// overlap.
func SubtractFromRange(r, subtract Range) []Range {
	overlap, ok := Intersection(r, subtract)
	if !ok {
		return []Range{r}
	}

	result := make([]Range, 0, 4)

	if overlap.StartRow.bounded && (!r.StartRow.bounded || r.StartRow.value < overlap.StartRow.value) {
		result = append(result, Range{r.StartColumn, r.StartRow, r.EndColumn, overlap.StartRow.Add(-1)})
	}

	if overlap.StartColumn.bounded && (!r.StartColumn.bounded || r.StartColumn.value < overlap.StartColumn.value) {
		result = append(result, Range{r.StartColumn, overlap.StartRow, overlap.StartColumn.Add(-1), overlap.EndRow})
	}

	if overlap.EndColumn.bounded && (!r.EndColumn.bounded || r.EndColumn.value > overlap.EndColumn.value) {
		result = append(result, Range{overlap.EndColumn.Add(1), overlap.StartRow, r.EndColumn, overlap.EndRow})
	}

	if overlap.EndRow.bounded && (!r.EndRow.bounded || r.EndRow.value > overlap.EndRow.value) {
		result = append(result, Range{r.StartColumn, overlap.EndRow.Add(1), r.EndColumn, r.EndRow})
	}

	return result
}

// Subtract removes other from r. See SubtractFromRange.
func (r Range) Subtract(other Range) []Range {
	return SubtractFromRange(r, other)
}

// SubtractFromRanges subtracts one range from each of ranges.
func SubtractFromRanges(ranges []Range, subtract Range) []Range {
	result := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		result = append(result, SubtractFromRange(r, subtract)...)
	}
	return result
}

// SubtractRangesFromRanges subtracts each of subtracts in turn from the
// running result.
func SubtractRangesFromRanges(ranges, subtracts []Range) []Range {
	if len(subtracts) == 0 {
		return ranges
	}

	result := append([]Range(nil), ranges...)
	for _, s := range subtracts {
		result = SubtractFromRanges(result, s)
	}
	return result
}

// Consolidate merges ranges that contain one another, or that share both
// bounds on one axis and touch on the other, until nothing more merges.
// Callers should compare results as a set; element order is not part of the
// contract.
func Consolidate(ranges []Range) []Range {
	result := append([]Range(nil), ranges...)

	modified := true
	for modified {
		modified = false
		for i := 0; i < len(result) && !modified; i++ {
			r := result[i]
			for j := len(result) - 1; j > i; j-- {
				other := result[j]

				switch {
				case r.Contains(other):
					result = append(result[:j], result[j+1:]...)
				case other.Contains(r):
					result[i] = other
					result = append(result[:j], result[j+1:]...)
					modified = true
				case r.StartRow == other.StartRow && r.EndRow == other.EndRow:
					if r.Touches(other) {
						result[i] = New(
							MinOrUnbounded(r.StartColumn, other.StartColumn),
							r.StartRow,
							MaxOrUnbounded(r.EndColumn, other.EndColumn),
							r.EndRow,
						)
						result = append(result[:j], result[j+1:]...)
						modified = true
					}
				case r.StartColumn == other.StartColumn && r.EndColumn == other.EndColumn:
					if r.Touches(other) {
						result[i] = New(
							r.StartColumn,
							MinOrUnbounded(r.StartRow, other.StartRow),
							r.EndColumn,
							MaxOrUnbounded(r.EndRow, other.EndRow),
						)
						result = append(result[:j], result[j+1:]...)
						modified = true
					}
				}

				if modified {
					break
				}
			}
		}
	}

	return result
}

// RangeArraysEqual reports whether both slices hold equal ranges in the same
// order.
func RangeArraysEqual(a, b []Range) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BoundedRange fills any unbounded edge of r from the grid size.
func BoundedRange(r Range, columnCount, rowCount int) Range {
	if r.IsBounded() {
		return r
	}
	return New(
		At(r.StartColumn.Or(0)),
		At(r.StartRow.Or(0)),
		At(r.EndColumn.Or(columnCount-1)),
		At(r.EndRow.Or(rowCount-1)),
	)
}

// BoundedRanges applies BoundedRange to each range.
func BoundedRanges(ranges []Range, columnCount, rowCount int) []Range {
	result := make([]Range, len(ranges))
	for i, r := range ranges {
		result[i] = BoundedRange(r, columnCount, rowCount)
	}
	return result
}

// Offset shifts the bounded edges of r. Unbounded edges stay unbounded.
func Offset(r Range, columnOffset, rowOffset int) Range {
	return Range{
		StartColumn: r.StartColumn.Add(columnOffset),
		StartRow:    r.StartRow.Add(rowOffset),
		EndColumn:   r.EndColumn.Add(columnOffset),
		EndRow:      r.EndRow.Add(rowOffset),
	}
}

func axisCount(start, end Index) float64 {
	if !start.bounded || !end.bounded {
		return math.NaN()
	}
	return float64(end.value - start.value + 1)
}

// CellCount sums the cells in ranges. Any unbounded range makes the result
// NaN.
func CellCount(ranges []Range) float64 {
	var count float64
	for _, r := range ranges {
		count += axisCount(r.StartRow, r.EndRow) * axisCount(r.StartColumn, r.EndColumn)
	}
	return count
}

// RowCount sums the rows in ranges, NaN if any row axis is unbounded.
func RowCount(ranges []Range) float64 {
	var count float64
	for _, r := range ranges {
		count += axisCount(r.StartRow, r.EndRow)
	}
	return count
}

// ColumnCount sums the columns in ranges, NaN if any column axis is
// unbounded.
func ColumnCount(ranges []Range) float64 {
	var count float64
	for _, r := range ranges {
		count += axisCount(r.StartColumn, r.EndColumn)
	}
	return count
}
