package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

// collect records every index an iterator visits and stops at stopAt.
func collect(stopAt int) (*[]int, IndexCallback[string]) {
	var calls []int
	return &calls, func(i int) (string, bool) {
		calls = append(calls, i)
		if i == stopAt {
			return "TEST", true
		}
		return "", false
	}
}

func TestIterateFloating(t *testing.T) {
	calls, callback := collect(-1)
	_, ok := IterateFloating(0, 0, 100, callback)
	assert.False(t, ok)
	assert.Empty(t, *calls)

	calls, callback = collect(-1)
	IterateFloating(3, 5, 10, callback)
	assert.Equal(t, []int{0, 1, 2, 5, 6, 7, 8, 9}, *calls)

	calls, callback = collect(-1)
	IterateFloating(5, 5, 3, callback)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, *calls)
}

func TestIterateAllItems(t *testing.T) {
	tests := []struct {
		name                       string
		visibleStart, visibleEnd   int
		floatingStart, floatingEnd int
		total                      int
		expected                   []int
	}{
		{"visible only", 0, 5, 0, 0, 20, []int{0, 1, 2, 3, 4, 5}},
		{"visible only scrolled", 5, 10, 0, 0, 20, []int{5, 6, 7, 8, 9, 10}},
		{"floating first", 4, 7, 2, 3, 20, []int{0, 1, 17, 18, 19, 4, 5, 6, 7}},
		{"visible overlaps floating", 0, 19, 2, 3, 20, []int{0, 1, 17, 18, 19, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, callback := collect(-1)
			IterateAllItems(tt.visibleStart, tt.visibleEnd, tt.floatingStart, tt.floatingEnd, tt.total, callback)
			assert.Equal(t, tt.expected, *calls)
		})
	}
}

func TestIterateAllItemsStops(t *testing.T) {
	calls, callback := collect(28)
	result, ok := IterateAllItems(8, 13, 3, 5, 30, callback)
	assert.True(t, ok)
	assert.Equal(t, "TEST", result)
	assert.Equal(t, []int{0, 1, 2, 25, 26, 27, 28}, *calls)
}

func floatingMetrics(top, bottom, rowCount, left, right, columnCount int) *metrics.Metrics {
	return &metrics.Metrics{
		FloatingTopRowCount:      top,
		FloatingBottomRowCount:   bottom,
		RowCount:                 rowCount,
		FloatingLeftColumnCount:  left,
		FloatingRightColumnCount: right,
		ColumnCount:              columnCount,
	}
}

func TestIsFloatingRow(t *testing.T) {
	assert.False(t, IsFloatingRow(3, floatingMetrics(0, 0, 10, 0, 0, 10)))
	assert.True(t, IsFloatingRow(3, floatingMetrics(5, 0, 10, 0, 0, 10)))
	assert.False(t, IsFloatingRow(3, floatingMetrics(0, 5, 10, 0, 0, 10)))
	assert.False(t, IsFloatingRow(8, floatingMetrics(0, 0, 10, 0, 0, 10)))
	assert.False(t, IsFloatingRow(8, floatingMetrics(5, 0, 10, 0, 0, 10)))
	assert.True(t, IsFloatingRow(8, floatingMetrics(0, 5, 10, 0, 0, 10)))
	assert.False(t, IsFloatingRow(8, floatingMetrics(0, 0, 10, 5, 5, 20)))
}

func TestIsFloatingColumn(t *testing.T) {
	assert.False(t, IsFloatingColumn(3, floatingMetrics(0, 0, 10, 0, 0, 10)))
	assert.True(t, IsFloatingColumn(3, floatingMetrics(0, 0, 10, 5, 0, 10)))
	assert.False(t, IsFloatingColumn(3, floatingMetrics(0, 0, 10, 0, 5, 10)))
	assert.False(t, IsFloatingColumn(8, floatingMetrics(0, 0, 10, 0, 0, 10)))
	assert.False(t, IsFloatingColumn(8, floatingMetrics(0, 0, 10, 5, 0, 10)))
	assert.True(t, IsFloatingColumn(8, floatingMetrics(0, 0, 10, 0, 5, 10)))
}

// gridMetrics lays out five columns and five rows of size 10 behind a row
// header of width 5 and a column header of height 1. Sizes given in
// hiddenColumns are zero.
func gridMetrics(hiddenColumns ...int) *metrics.Metrics {
	m := &metrics.Metrics{
		RowHeaderWidth:      5,
		ColumnHeaderHeight:  1,
		GridX:               5,
		GridY:               1,
		ColumnCount:         5,
		RowCount:            5,
		VisibleColumns:      []int{0, 1, 2, 3, 4},
		VisibleRows:         []int{0, 1, 2, 3, 4},
		VisibleColumnXs:     metrics.CoordinateMap{},
		VisibleColumnWidths: metrics.SizeMap{},
		VisibleRowYs:        metrics.CoordinateMap{},
		VisibleRowHeights:   metrics.SizeMap{},
		ModelColumns:        metrics.ModelIndexMap{},
		ModelRows:           metrics.ModelIndexMap{},
	}

	hidden := map[int]bool{}
	for _, c := range hiddenColumns {
		hidden[c] = true
	}

	x := 0
	for i := 0; i < 5; i++ {
		width := 10
		if hidden[i] {
			width = 0
		}
		m.VisibleColumnXs[i] = x
		m.VisibleColumnWidths[i] = width
		m.ModelColumns[i] = i
		x += width

		m.VisibleRowYs[i] = i * 10
		m.VisibleRowHeights[i] = 10
		m.ModelRows[i] = i
	}
	return m
}

func TestColumnAtX(t *testing.T) {
	m := gridMetrics()

	tests := []struct {
		x        int
		expected int
		ok       bool
	}{
		{4, 0, false},
		{5, 0, true},
		{15, 0, true},
		{16, 1, true},
		{54, 4, true},
		{56, 0, false},
	}

	for _, tt := range tests {
		got, ok := ColumnAtX(tt.x, m)
		assert.Equal(t, tt.ok, ok, "x=%d", tt.x)
		if tt.ok {
			assert.Equal(t, tt.expected, got, "x=%d", tt.x)
		}
	}
}

func TestRowAtY(t *testing.T) {
	m := gridMetrics()

	_, ok := RowAtY(0, m)
	assert.False(t, ok)

	row, ok := RowAtY(25, m)
	assert.True(t, ok)
	assert.Equal(t, 2, row)

	point := GetGridPointFromXY(26, 25, m)
	assert.Equal(t, GridPoint{X: 26, Y: 25, Column: 2, HasColumn: true, Row: 2, HasRow: true}, point)
}

func TestFloatingItemsWin(t *testing.T) {
	m := gridMetrics()
	m.FloatingLeftColumnCount = 1
	m.VisibleColumns = []int{3, 4}
	m.VisibleColumnXs[3] = 0

	column, ok := ColumnAtX(8, m)
	assert.True(t, ok)
	assert.Equal(t, 0, column)
}

func resizableTheme() *theme.GridTheme {
	t := theme.Default()
	t.AllowColumnResize = true
	t.AllowRowResize = true
	t.HeaderSeparatorHandleSize = 2
	return t
}

func TestGetColumnSeparatorIndex(t *testing.T) {
	th := resizableTheme()
	m := gridMetrics()

	tests := []struct {
		name     string
		x, y     int
		expected int
		ok       bool
	}{
		{"left of separator", 5 + 9, 0, 0, true},
		{"on separator", 5 + 10, 0, 0, true},
		{"right of separator", 5 + 11, 0, 0, true},
		{"between separators", 5 + 13, 0, 0, false},
		{"last column", 5 + 50, 0, 4, true},
		{"below header", 5 + 10, 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetColumnSeparatorIndex(tt.x, tt.y, m, th)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestGetColumnSeparatorIndexDisabled(t *testing.T) {
	m := gridMetrics()

	th := resizableTheme()
	th.AllowColumnResize = false
	_, ok := GetColumnSeparatorIndex(15, 0, m, th)
	assert.False(t, ok)

	th = resizableTheme()
	th.HeaderSeparatorHandleSize = 0
	_, ok = GetColumnSeparatorIndex(15, 0, m, th)
	assert.False(t, ok)
}

func TestGetColumnSeparatorIndexHiddenColumn(t *testing.T) {
	th := resizableTheme()
	m := gridMetrics(1)

	// Column 1 has zero width, so its separator sits just right of column 0's.
	got, ok := GetColumnSeparatorIndex(5+12, 0, m, th)
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	got, ok = GetColumnSeparatorIndex(5+8, 0, m, th)
	assert.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestGetRowSeparatorIndex(t *testing.T) {
	th := resizableTheme()
	m := gridMetrics()

	got, ok := GetRowSeparatorIndex(2, 1+20, m, th)
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = GetRowSeparatorIndex(6, 1+20, m, th)
	assert.False(t, ok)

	th.AllowRowResize = false
	_, ok = GetRowSeparatorIndex(2, 1+20, m, th)
	assert.False(t, ok)
}

func TestHiddenItems(t *testing.T) {
	m := gridMetrics(1, 2)

	assert.True(t, IsColumnHidden(1, m))
	assert.False(t, IsColumnHidden(3, m))
	assert.False(t, IsRowHidden(1, m))
	assert.Equal(t, []int{2, 1}, GetHiddenColumns(2, m))
	assert.Equal(t, []int{1}, GetHiddenColumns(1, m))
	assert.Empty(t, GetHiddenColumns(3, m))
	assert.Empty(t, GetHiddenRows(3, m))
}

func TestGetNextShownItem(t *testing.T) {
	m := gridMetrics()

	m.UserColumnWidths = metrics.ModelSizeMap{2: 0}
	got, ok := GetNextShownColumn(3, m)
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	m.UserColumnWidths = metrics.ModelSizeMap{1: 0, 2: 0}
	got, ok = GetNextShownColumn(3, m)
	assert.True(t, ok)
	assert.Equal(t, 0, got)

	_, ok = GetNextShownColumn(0, m)
	assert.False(t, ok)

	got, ok = GetNextShownRow(4, m)
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestCheckColumnsHidden(t *testing.T) {
	widths := metrics.ModelSizeMap{1: 0, 2: 0, 3: 12}

	assert.True(t, CheckColumnHidden(1, widths))
	assert.False(t, CheckColumnHidden(3, widths))
	assert.False(t, CheckColumnHidden(4, widths))
	assert.True(t, CheckAllColumnsHidden([]int{1, 2}, widths))
	assert.False(t, CheckAllColumnsHidden([]int{1, 3}, widths))
	assert.False(t, CheckAllColumnsHidden([]int{1}, nil))
}

func TestGetScrollDragBounds(t *testing.T) {
	m := &metrics.Metrics{
		GridX: 5, GridY: 1, Width: 80, Height: 24,
		RowCount: 100, ColumnCount: 20,
		FloatingTopRowCount: 2, FloatingBottomRowCount: 1,
		FloatingLeftColumnCount: 1, FloatingRightColumnCount: 1,
		FloatingTopHeight: 2, FloatingBottomHeight: 1,
		FloatingLeftWidth: 10, FloatingRightWidth: 8,
	}

	assert.Equal(t, BoxCoordinates{X1: 15, Y1: 3, X2: 72, Y2: 23}, GetScrollDragBounds(m, 10, 5))
	assert.Equal(t, BoxCoordinates{X1: 5, Y1: 1, X2: 72, Y2: 23}, GetScrollDragBounds(m, 1, 0))
	assert.Equal(t, BoxCoordinates{X1: 15, Y1: 3, X2: 80, Y2: 24}, GetScrollDragBounds(m, 99, 19))
	assert.Equal(t, BoxCoordinates{X1: 5, Y1: 1, X2: 80, Y2: 24}, GetScrollDragBounds(m, -1, -1))
}
