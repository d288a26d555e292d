package layout

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/theme"
	"github.com/pstuifzand/tui-grid/internal/transform"
	"github.com/pstuifzand/tui-grid/internal/tree"
)

// fixedTheme sizes every column to the theme width.
func fixedTheme() *theme.GridTheme {
	t := theme.Default()
	t.AutoSizeColumns = false
	return t
}

func sampleState(opts model.SampleOptions) *State {
	return &State{
		Width:  80,
		Height: 24,
		Theme:  fixedTheme(),
		Model:  model.NewSample(opts),
	}
}

func TestGetMetricsBasic(t *testing.T) {
	state := sampleState(model.SampleOptions{RowCount: 100, ColumnCount: 10})
	m := NewCalculator().GetMetrics(state)

	assert.Equal(t, 7, m.GridX)
	assert.Equal(t, 1, m.GridY)

	require.Len(t, m.VisibleRows, 24)
	require.Len(t, m.VisibleColumns, 6)
	assert.Equal(t, 0, m.VisibleRows[0])
	assert.Equal(t, 23, m.Bottom)
	assert.Equal(t, 5, m.Right)
	assert.Equal(t, m.VisibleRows, m.AllRows)
	assert.Empty(t, m.FloatingRows)

	for _, row := range m.VisibleRows {
		assert.Equal(t, row, m.VisibleRowYs[row])
		assert.Equal(t, 1, m.VisibleRowHeights[row])
		assert.Equal(t, row, m.ModelRows[row])
	}
	for _, column := range m.VisibleColumns {
		assert.Equal(t, column*14, m.VisibleColumnXs[column])
		assert.Equal(t, 14, m.VisibleColumnWidths[column])
	}

	assert.Equal(t, 84, m.MaxX)
	assert.Equal(t, 24, m.MaxY)
	assert.Equal(t, 5, m.LastLeft)
	assert.Equal(t, 79, m.LastTop)
	assert.Equal(t, 21, m.BottomVisible)
	assert.Equal(t, 4, m.RightVisible)
	assert.Equal(t, 23, m.BottomViewport)
	assert.Equal(t, 5, m.RightViewport)
}

func TestGetMetricsScrollBars(t *testing.T) {
	state := sampleState(model.SampleOptions{RowCount: 100, ColumnCount: 10})
	c := NewCalculator()

	m := c.GetMetrics(state)
	assert.True(t, m.HasHorizontalBar)
	assert.True(t, m.HasVerticalBar)
	assert.Equal(t, 1, m.HorizontalBarHeight)
	assert.Equal(t, 1, m.VerticalBarWidth)
	assert.Equal(t, m.GridX, m.BarLeft)
	assert.Equal(t, m.GridY, m.BarTop)
	assert.Equal(t, 72, m.BarWidth)
	assert.Equal(t, 22, m.BarHeight)
	assert.Equal(t, 36, m.HandleWidth)
	assert.Equal(t, 5, m.HandleHeight)
	assert.Zero(t, m.ScrollX)
	assert.Zero(t, m.ScrollY)

	state.Top = m.LastTop
	state.Left = m.LastLeft
	m = c.GetMetrics(state)
	assert.Equal(t, m.BarHeight-m.HandleHeight, m.ScrollY)
	assert.Equal(t, m.BarWidth-m.HandleWidth, m.ScrollX)
	assert.Equal(t, 99, m.Bottom)
}

func TestGetMetricsSmallGridHasNoScrollBars(t *testing.T) {
	state := sampleState(model.SampleOptions{RowCount: 5, ColumnCount: 2})
	m := NewCalculator().GetMetrics(state)

	assert.False(t, m.HasHorizontalBar)
	assert.False(t, m.HasVerticalBar)
	assert.Zero(t, m.HandleWidth)
	assert.Zero(t, m.HandleHeight)
	assert.Zero(t, m.LastTop)
	assert.Zero(t, m.LastLeft)
	assert.Equal(t, 4, m.BottomVisible)
	assert.Equal(t, 1, m.RightVisible)
	// Room for 19 more default sized rows below the data
	assert.Equal(t, 23, m.BottomViewport)
}

func TestGetMetricsFloating(t *testing.T) {
	state := sampleState(model.SampleOptions{
		RowCount:                 100,
		ColumnCount:              10,
		FloatingTopRowCount:      1,
		FloatingBottomRowCount:   1,
		FloatingLeftColumnCount:  1,
		FloatingRightColumnCount: 1,
	})
	state.Top = 10
	state.Left = 2
	m := NewCalculator().GetMetrics(state)

	assert.Equal(t, []int{0, 99}, m.FloatingRows)
	assert.Equal(t, []int{0, 9}, m.FloatingColumns)
	assert.Equal(t, 10, m.VisibleRows[0])
	assert.Equal(t, 2, m.VisibleColumns[0])
	assert.Len(t, m.AllRows, len(m.VisibleRows)+2)
	assert.Len(t, m.AllColumns, len(m.VisibleColumns)+2)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"top row y", m.VisibleRowYs[0], 0},
		{"bottom row y", m.VisibleRowYs[99], 21},
		{"left column x", m.VisibleColumnXs[0], 0},
		{"right column x", m.VisibleColumnXs[9], 58},
		{"scrolling row y", m.VisibleRowYs[10], 0},
		{"floating top height", m.FloatingTopHeight, 1},
		{"floating bottom height", m.FloatingBottomHeight, 1},
		{"floating left width", m.FloatingLeftWidth, 14},
		{"floating right width", m.FloatingRightWidth, 14},
		{"top visible", m.TopVisible, 11},
		{"left visible", m.LeftVisible, 3},
		{"model row of bottom row", m.ModelRows[99], 99},
		{"model column of right column", m.ModelColumns[9], 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	row, ok := transform.RowAtY(m.GridY, m)
	require.True(t, ok)
	assert.Equal(t, 0, row, "floating rows are hit before the rows under them")
}

func TestGetMetricsMovedColumns(t *testing.T) {
	state := sampleState(model.SampleOptions{RowCount: 10, ColumnCount: 5})
	c := NewCalculator()

	m := c.GetMetrics(state)
	assert.Equal(t, 2, m.ModelColumns[2])

	state.MovedColumns = []transform.MoveOperation{{From: 0, To: 2}}
	m = c.GetMetrics(state)
	assert.Equal(t, 1, m.ModelColumns[0])
	assert.Equal(t, 2, m.ModelColumns[1])
	assert.Equal(t, 0, m.ModelColumns[2])
	assert.Equal(t, state.MovedColumns, m.MovedColumns)

	state.MovedColumns = nil
	m = c.GetMetrics(state)
	assert.Equal(t, 0, m.ModelColumns[0])
}

func TestGetMetricsUserColumnWidths(t *testing.T) {
	state := sampleState(model.SampleOptions{RowCount: 10, ColumnCount: 5})
	c := NewCalculator()

	c.SetColumnWidth(2, 20)
	c.SetColumnWidth(0, 0)
	m := c.GetMetrics(state)

	assert.Equal(t, 0, m.VisibleColumnWidths[0])
	assert.Equal(t, 20, m.VisibleColumnWidths[2])
	assert.Equal(t, 1, m.FirstColumn)
	assert.Equal(t, 14, m.VisibleColumnXs[2])
	assert.Equal(t, metrics.ModelSizeMap{0: 0, 2: 20}, m.UserColumnWidths)
	assert.True(t, transform.IsColumnHidden(0, m))

	c.ResetColumnWidth(0)
	m = c.GetMetrics(state)
	assert.Equal(t, 0, m.FirstColumn)
	assert.Equal(t, 14, m.VisibleColumnWidths[0])

	c.SetUserColumnWidths(nil)
	assert.Empty(t, c.UserColumnWidths())
}

func TestGetMetricsTree(t *testing.T) {
	md := tree.New(tree.Options{RowCount: 10, ColumnCount: 3, ChildRowCount: 2})
	md.SetRowExpanded(0, true, false)
	state := &State{Width: 80, Height: 24, Theme: fixedTheme(), Model: md}

	m := NewCalculator().GetMetrics(state)

	// Depth one rows are on the page: two levels of indent
	assert.Equal(t, 4, m.TreePaddingX)
	assert.Equal(t, 18, m.VisibleColumnWidths[0])
	assert.Equal(t, 14, m.VisibleColumnWidths[1])
	assert.Equal(t, metrics.Box{X1: 1, Y1: 0, X2: 3, Y2: 1}, m.VisibleRowTreeBoxes[0])
	assert.Equal(t, metrics.Box{X1: 3, Y1: 0, X2: 5, Y2: 1}, m.VisibleRowTreeBoxes[1])
}

// wordModel has short cells and longer headers.
type wordModel struct {
	model.Base
}

func (wordModel) RowCount() int                         { return 3 }
func (wordModel) ColumnCount() int                      { return 2 }
func (wordModel) TextForCell(column, row int) string    { return strconv.Itoa(column) + "," + strconv.Itoa(row) }
func (wordModel) TextForColumnHeader(column int) string { return "Header " + strconv.Itoa(column) }

func TestGetMetricsAutoSizeColumns(t *testing.T) {
	th := theme.Default()
	th.AutoSizeColumns = true
	th.MinColumnWidth = 4
	state := &State{Width: 80, Height: 24, Theme: th, Model: wordModel{}}

	m := NewCalculator().GetMetrics(state)

	// "Header 0" plus padding is wider than any cell
	assert.Equal(t, 10, m.VisibleColumnWidths[0])
	assert.Equal(t, 10, m.VisibleColumnXs[1])
	assert.Equal(t, 20, m.MaxX)
}

func TestGetMetricsUsesMeasure(t *testing.T) {
	th := theme.Default()
	th.AutoSizeColumns = true
	state := &State{
		Width:  80,
		Height: 24,
		Theme:  th,
		Model:  wordModel{},
		Measure: func(text, font string) int {
			return 2 * len(text)
		},
	}

	m := NewCalculator().GetMetrics(state)
	assert.Equal(t, 18, m.VisibleColumnWidths[0])
	assert.InDelta(t, 2.0, m.FontWidths[th.Font], 0)
}

func TestThemeChangeShrinksColumns(t *testing.T) {
	wide := theme.Default()
	wide.AutoSizeColumns = true
	wide.MinColumnWidth = 4
	wide.HeaderHorizontalPadding = 3
	wide.RowHeight = 2
	wide.AutoSizeRows = true
	state := &State{Width: 80, Height: 24, Theme: wide, Model: wordModel{}}
	calc := NewCalculator()

	m := calc.GetMetrics(state)
	require.Equal(t, 14, m.VisibleColumnWidths[0])
	require.Equal(t, 2, m.VisibleRowHeights[0])

	narrow := *wide
	narrow.HeaderHorizontalPadding = 1
	narrow.RowHeight = 1
	state.Theme = &narrow
	m = calc.GetMetrics(state)
	assert.Equal(t, 10, m.VisibleColumnWidths[0])
	assert.Equal(t, 1, m.VisibleRowHeights[0])

	state.Theme = wide
	m = calc.GetMetrics(state)
	assert.Equal(t, 14, m.VisibleColumnWidths[0])
}

func TestThemeChangeRemeasuresFonts(t *testing.T) {
	th := theme.Default()
	th.AutoSizeColumns = true
	charWidth := 2
	state := &State{
		Width:  80,
		Height: 24,
		Theme:  th,
		Model:  wordModel{},
		Measure: func(text, font string) int {
			return charWidth * len(text)
		},
	}
	calc := NewCalculator()
	m := calc.GetMetrics(state)
	require.InDelta(t, 2.0, m.FontWidths[th.Font], 0)

	charWidth = 1
	m = calc.GetMetrics(state)
	assert.InDelta(t, 2.0, m.FontWidths[th.Font], 0)

	other := *th
	other.HeaderFont = "bold " + th.Font
	state.Theme = &other
	m = calc.GetMetrics(state)
	assert.InDelta(t, 1.0, m.FontWidths[th.Font], 0)
}

func TestScrollTargets(t *testing.T) {
	state := sampleState(model.SampleOptions{
		RowCount:                100,
		ColumnCount:             10,
		FloatingTopRowCount:     2,
		FloatingLeftColumnCount: 1,
	})
	c := NewCalculator()

	assert.Equal(t, 8, c.GetTopForTopVisible(state, 10))
	assert.Equal(t, 0, c.GetTopForTopVisible(state, 1))
	assert.Equal(t, 4, c.GetLeftForLeftVisible(state, 5))

	// 22 units between the header and the scroll bar
	assert.Equal(t, 30, c.GetTopForBottomVisible(state, 50))

	// The floating top rows and left column take room from the scrolling ones
	assert.Equal(t, 81, c.GetLastTop(state))
	assert.Equal(t, 6, c.GetLastLeft(state))
}
