// Package metrics holds the per-frame layout snapshot a grid is painted
// from. A Metrics value is computed once per layout change and is read-only
// for the rest of the frame.
package metrics

import "github.com/pstuifzand/tui-grid/internal/utils"

// CoordinateMap maps a visible index to its offset from the grid origin.
type CoordinateMap map[int]int

// SizeMap maps a visible index to its width or height. A size of zero means
// the item is hidden.
type SizeMap map[int]int

// ModelIndexMap maps a visible index to the model index it shows.
type ModelIndexMap map[int]int

// ModelSizeMap maps a model index to a user set size.
type ModelSizeMap map[int]int

// Box is a rectangle given by its top left and bottom right corners.
type Box struct {
	X1, Y1, X2, Y2 int
}

// MoveOperation records that the item at visible index From was moved to
// visible index To.
type MoveOperation struct {
	From int `toml:"from"`
	To   int `toml:"to"`
}

// Metrics describes what is on screen for one frame. Coordinates are in
// surface units (terminal cells for the tcell surface).
type Metrics struct {
	// Sizes from the model and theme
	RowHeight          int
	RowHeaderWidth     int
	RowFooterWidth     int
	RowCount           int
	ColumnWidth        int
	ColumnCount        int
	ColumnHeaderHeight int

	FloatingTopRowCount      int
	FloatingBottomRowCount   int
	FloatingLeftColumnCount  int
	FloatingRightColumnCount int

	// Offset of the grid body from the top left of the surface
	GridX int
	GridY int

	// First non-hidden row and column
	FirstRow    int
	FirstColumn int

	TreePaddingX int
	TreePaddingY int

	// Viewport in visible index space, limited by the data size
	Left       int
	Top        int
	Bottom     int
	Right      int
	TopOffset  int
	LeftOffset int

	// Items fully visible, not covered by scroll bars or floating sections
	TopVisible    int
	LeftVisible   int
	BottomVisible int
	RightVisible  int

	// Bottom and right of the viewport, not limited by the data size
	BottomViewport int
	RightViewport  int

	Width  int
	Height int

	// Max coordinate of the grid body, headers excluded
	MaxX int
	MaxY int

	// Last column/row that can be scrolled to the left/top
	LastLeft int
	LastTop  int

	BarHeight           int
	BarTop              int
	BarWidth            int
	BarLeft             int
	HandleHeight        int
	HandleWidth         int
	HasHorizontalBar    bool
	HasVerticalBar      bool
	VerticalBarWidth    int
	HorizontalBarHeight int
	ScrollX             int
	ScrollY             int

	ScrollableContentWidth   int
	ScrollableContentHeight  int
	ScrollableViewportWidth  int
	ScrollableViewportHeight int

	VisibleRows     []int
	VisibleColumns  []int
	FloatingRows    []int
	FloatingColumns []int
	AllRows         []int
	AllColumns      []int

	// Sizes and coordinates of visible and floating items
	VisibleRowHeights   SizeMap
	VisibleColumnWidths SizeMap
	VisibleRowYs        CoordinateMap
	VisibleColumnXs     CoordinateMap

	FloatingTopHeight    int
	FloatingBottomHeight int
	FloatingLeftWidth    int
	FloatingRightWidth   int

	// Click areas of the tree markers, relative to the cell
	VisibleRowTreeBoxes map[int]Box

	ModelRows    ModelIndexMap
	ModelColumns ModelIndexMap

	MovedRows    []MoveOperation
	MovedColumns []MoveOperation

	// Average character width per font; missing fonts use the renderer
	// default.
	FontWidths map[string]float64

	UserColumnWidths ModelSizeMap
	UserRowHeights   ModelSizeMap
}

// ModelRow returns the model row shown at a laid out row, visible or
// floating. Off-screen rows go through transform.GetModelIndex instead.
func (m *Metrics) ModelRow(row int) int {
	modelRow, ok := m.ModelRows[row]
	utils.Assertf(ok, "metrics: row %d is not laid out", row)
	return modelRow
}

// ModelColumn returns the model column shown at a laid out column.
func (m *Metrics) ModelColumn(column int) int {
	modelColumn, ok := m.ModelColumns[column]
	utils.Assertf(ok, "metrics: column %d is not laid out", column)
	return modelColumn
}
