package transform

import (
	"slices"

	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

// IndexCallback is called for each item an Iterate function visits. Returning
// true stops the iteration and the value is handed back to the caller.
type IndexCallback[T any] func(index int) (T, bool)

// IterateFloatingStart visits the first start items in increasing order.
func IterateFloatingStart[T any](start, total int, callback IndexCallback[T]) (T, bool) {
	for i := 0; i < start && i < total; i++ {
		if result, ok := callback(i); ok {
			return result, true
		}
	}
	var zero T
	return zero, false
}

// IterateFloatingEnd visits the last end items in increasing order.
func IterateFloatingEnd[T any](end, total int, callback IndexCallback[T]) (T, bool) {
	for i := 0; i < end && total-(end-i) >= 0; i++ {
		if result, ok := callback(total - (end - i)); ok {
			return result, true
		}
	}
	var zero T
	return zero, false
}

// IterateFloating visits the floating items at the start, then those at the
// end.
func IterateFloating[T any](start, end, total int, callback IndexCallback[T]) (T, bool) {
	if result, ok := IterateFloatingStart(start, total, callback); ok {
		return result, true
	}
	return IterateFloatingEnd(end, total, callback)
}

// IterateAllItems visits every floating item and then the visible items in
// [visibleStart, visibleEnd] that are not floating.
func IterateAllItems[T any](visibleStart, visibleEnd, floatingStartCount, floatingEndCount, totalCount int, callback IndexCallback[T]) (T, bool) {
	if result, ok := IterateFloating(floatingStartCount, floatingEndCount, totalCount, callback); ok {
		return result, true
	}

	startIndex := max(visibleStart, floatingStartCount)
	endIndex := min(visibleEnd, totalCount-floatingEndCount-1)
	for i := startIndex; i <= endIndex; i++ {
		if result, ok := callback(i); ok {
			return result, true
		}
	}

	var zero T
	return zero, false
}

// IsInItem reports whether coordinate falls on the item, edges included.
func IsInItem(index int, coordinates metrics.CoordinateMap, sizes metrics.SizeMap, coordinate int) bool {
	x := coordinates[index]
	return x <= coordinate && coordinate <= x+sizes[index]
}

// GetItemAtOffset returns the item at offset. Floating items are drawn over
// the scrolling ones so they are checked first.
func GetItemAtOffset(offset, itemCount, floatingStart, floatingEnd int, items []int, coordinates metrics.CoordinateMap, sizes metrics.SizeMap) (int, bool) {
	item, ok := IterateFloating(floatingStart, floatingEnd, itemCount, func(i int) (int, bool) {
		return i, IsInItem(i, coordinates, sizes, offset)
	})
	if ok {
		return item, true
	}

	for _, item := range items {
		if IsInItem(item, coordinates, sizes, offset) {
			return item, true
		}
	}
	return 0, false
}

// ColumnAtX returns the visible column under surface coordinate x.
func ColumnAtX(x int, m *metrics.Metrics) (int, bool) {
	if x < m.GridX {
		return 0, false
	}
	return GetItemAtOffset(x-m.GridX, m.ColumnCount, m.FloatingLeftColumnCount, m.FloatingRightColumnCount,
		m.VisibleColumns, m.VisibleColumnXs, m.VisibleColumnWidths)
}

// RowAtY returns the visible row under surface coordinate y.
func RowAtY(y int, m *metrics.Metrics) (int, bool) {
	if y < m.GridY {
		return 0, false
	}
	return GetItemAtOffset(y-m.GridY, m.RowCount, m.FloatingTopRowCount, m.FloatingBottomRowCount,
		m.VisibleRows, m.VisibleRowYs, m.VisibleRowHeights)
}

// GridPoint is a surface coordinate with the cell under it, if any.
type GridPoint struct {
	X, Y      int
	Column    int
	HasColumn bool
	Row       int
	HasRow    bool
}

// GetGridPointFromXY resolves a surface coordinate to a grid point.
func GetGridPointFromXY(x, y int, m *metrics.Metrics) GridPoint {
	column, hasColumn := ColumnAtX(x, m)
	row, hasRow := RowAtY(y, m)
	return GridPoint{X: x, Y: y, Column: column, HasColumn: hasColumn, Row: row, HasRow: hasRow}
}

// GetNextShownItem walks backward from start through items and returns the
// first one the user has not hidden.
func GetNextShownItem(start int, modelIndexes metrics.ModelIndexMap, items []int, userSizes metrics.ModelSizeMap) (int, bool) {
	i := max(slices.Index(items, start), 0) - 1
	for ; i >= 0; i-- {
		item := items[i]
		modelIndex, ok := modelIndexes[item]
		if !ok {
			continue
		}
		if size, set := userSizes[modelIndex]; !set || size != 0 {
			return item, true
		}
	}
	return 0, false
}

// GetNextShownColumn is GetNextShownItem over the visible columns.
func GetNextShownColumn(start int, m *metrics.Metrics) (int, bool) {
	return GetNextShownItem(start, m.ModelColumns, m.VisibleColumns, m.UserColumnWidths)
}

// GetNextShownRow is GetNextShownItem over the visible rows.
func GetNextShownRow(start int, m *metrics.Metrics) (int, bool) {
	return GetNextShownItem(start, m.ModelRows, m.VisibleRows, m.UserRowHeights)
}

// IsItemHidden reports whether the item is laid out with zero size.
func IsItemHidden(index int, sizes metrics.SizeMap) bool {
	size, ok := sizes[index]
	return ok && size == 0
}

func IsColumnHidden(column int, m *metrics.Metrics) bool {
	return IsItemHidden(column, m.VisibleColumnWidths)
}

func IsRowHidden(row int, m *metrics.Metrics) bool {
	return IsItemHidden(row, m.VisibleRowHeights)
}

// GetHiddenItems returns index and every hidden item directly before it, so
// a run of hidden items that share one separator can be revealed together.
// The result is empty when index itself is shown.
func GetHiddenItems(index int, sizes metrics.SizeMap, items []int) []int {
	if !IsItemHidden(index, sizes) {
		return nil
	}

	hidden := []int{index}
	for i := slices.Index(items, index) - 1; i >= 0; i-- {
		item := items[i]
		if !IsItemHidden(item, sizes) {
			break
		}
		hidden = append(hidden, item)
	}
	return hidden
}

func GetHiddenColumns(column int, m *metrics.Metrics) []int {
	return GetHiddenItems(column, m.VisibleColumnWidths, m.VisibleColumns)
}

func GetHiddenRows(row int, m *metrics.Metrics) []int {
	return GetHiddenItems(row, m.VisibleRowHeights, m.VisibleRows)
}

// IsFloatingRow reports whether a visible row is frozen at the top or bottom.
func IsFloatingRow(row int, m *metrics.Metrics) bool {
	return row < m.FloatingTopRowCount || row >= m.RowCount-m.FloatingBottomRowCount
}

// IsFloatingColumn reports whether a visible column is frozen at the left or
// right.
func IsFloatingColumn(column int, m *metrics.Metrics) bool {
	return column < m.FloatingLeftColumnCount || column >= m.ColumnCount-m.FloatingRightColumnCount
}

// separatorScan tracks hidden runs while items are scanned backward.
type separatorScan struct {
	half           float64
	previousHidden bool
}

// hit reports whether offset is on the trailing separator of the item. A
// hidden item's separator sits just after the previous separator so both can
// be grabbed.
func (s *separatorScan) hit(itemOffset, itemSize, offset int) bool {
	hidden := itemSize == 0
	if s.previousHidden && hidden {
		return false
	}

	mid := float64(itemOffset + itemSize)
	if hidden {
		mid += s.half
	} else if s.previousHidden {
		mid -= s.half
	}
	s.previousHidden = hidden

	o := float64(offset)
	return mid-s.half <= o && o <= mid+s.half
}

// GetSeparatorIndex returns the item whose trailing separator is within half
// a handle of offset. Floating items are scanned first. Scrolling items that
// end under the leading floating section stop the scan.
func GetSeparatorIndex(offset int, floatingItems, items []int, coordinates metrics.CoordinateMap, sizes metrics.SizeMap, floatingStartSize, handleSize int) (int, bool) {
	half := float64(handleSize) * 0.5

	scan := separatorScan{half: half}
	for i := len(floatingItems) - 1; i >= 0; i-- {
		item := floatingItems[i]
		if scan.hit(coordinates[item], sizes[item], offset) {
			return item, true
		}
	}

	scan = separatorScan{half: half}
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		x, size := coordinates[item], sizes[item]
		if x < floatingStartSize-size {
			return 0, false
		}
		if scan.hit(x, size, offset) {
			return item, true
		}
	}
	return 0, false
}

// GetColumnSeparatorIndex returns the column whose separator in the column
// header is under (x, y).
func GetColumnSeparatorIndex(x, y int, m *metrics.Metrics, t *theme.GridTheme) (int, bool) {
	if m.ColumnHeaderHeight < y || !t.AllowColumnResize || t.HeaderSeparatorHandleSize <= 0 {
		return 0, false
	}
	return GetSeparatorIndex(x-m.RowHeaderWidth, m.FloatingColumns, m.VisibleColumns,
		m.VisibleColumnXs, m.VisibleColumnWidths, m.FloatingLeftWidth, t.HeaderSeparatorHandleSize)
}

// GetRowSeparatorIndex returns the row whose separator in the row header is
// under (x, y). Floating rows are not resizable from the header.
func GetRowSeparatorIndex(x, y int, m *metrics.Metrics, t *theme.GridTheme) (int, bool) {
	if m.RowHeaderWidth < x || !t.AllowRowResize || t.HeaderSeparatorHandleSize <= 0 {
		return 0, false
	}
	return GetSeparatorIndex(y-m.ColumnHeaderHeight, nil, m.VisibleRows,
		m.VisibleRowYs, m.VisibleRowHeights, 0, t.HeaderSeparatorHandleSize)
}

// CheckColumnHidden reports whether the user hid a model column.
func CheckColumnHidden(modelColumn int, userColumnWidths metrics.ModelSizeMap) bool {
	width, ok := userColumnWidths[modelColumn]
	return ok && width == 0
}

// CheckAllColumnsHidden reports whether the user hid every one of columns.
func CheckAllColumnsHidden(columns []int, userColumnWidths metrics.ModelSizeMap) bool {
	if len(userColumnWidths) == 0 {
		return false
	}
	for _, column := range columns {
		if !CheckColumnHidden(column, userColumnWidths) {
			return false
		}
	}
	return true
}

// BoxCoordinates is a rectangle given by two corners.
type BoxCoordinates struct {
	X1, Y1, X2, Y2 int
}

// GetScrollDragBounds returns the area a drag selection started at
// (column, row) must leave before the grid auto scrolls. Floating sections
// covering the scrolling area shrink it. Pass -1 for an unknown row or
// column.
func GetScrollDragBounds(m *metrics.Metrics, row, column int) BoxCoordinates {
	box := BoxCoordinates{X1: m.GridX, Y1: m.GridY, X2: m.Width, Y2: m.Height}
	if column >= 0 {
		if column > m.FloatingLeftColumnCount {
			box.X1 += m.FloatingLeftWidth
		}
		if column < m.ColumnCount-m.FloatingRightColumnCount {
			box.X2 -= m.FloatingRightWidth
		}
	}
	if row >= 0 {
		if row > m.FloatingTopRowCount {
			box.Y1 += m.FloatingTopHeight
		}
		if row < m.RowCount-m.FloatingBottomRowCount {
			box.Y2 -= m.FloatingBottomHeight
		}
	}
	return box
}
