// Package layout works out which rows and columns of a grid are on screen,
// where they are drawn and what the scroll bars look like.
package layout

import (
	"maps"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/theme"
	"github.com/pstuifzand/tui-grid/internal/transform"
	"github.com/pstuifzand/tui-grid/internal/utils"
)

// MaxColumnWidth is the widest an automatically sized column may get, as a
// fraction of the space next to the row headers.
const MaxColumnWidth = 0.8

// DefaultFontWidth is the width of one character when State has no Measure
// function.
const DefaultFontWidth = 1.0

// State is the input of a layout: the scroll position, the size of the
// surface and what is shown on it.
type State struct {
	// Top left visible item and the scroll offset within it
	Left       int
	Top        int
	LeftOffset int
	TopOffset  int

	Width  int
	Height int

	Theme *theme.GridTheme
	Model model.GridModel

	MovedColumns []transform.MoveOperation
	MovedRows    []transform.MoveOperation

	IsDraggingHorizontalScrollBar bool
	IsDraggingVerticalScrollBar   bool

	// Measure returns the width of text in font. Nil counts runes.
	Measure func(text, font string) int
}

// Calculator computes metrics for a grid. It keeps the sizes the user set
// and caches calculated sizes and index mappings between frames. It is not
// safe for concurrent use.
type Calculator struct {
	userColumnWidths metrics.ModelSizeMap
	userRowHeights   metrics.ModelSizeMap

	calculatedColumnWidths *OrderedMap
	calculatedRowHeights   *OrderedMap

	fontWidths map[string]float64

	// Fingerprint of the theme the size caches were filled with
	themeHash uint64

	modelRows    *OrderedMap
	modelColumns *OrderedMap

	// Move histories the model index caches were built from
	movedRows    []transform.MoveOperation
	movedColumns []transform.MoveOperation
}

// NewCalculator creates a calculator without user sizes.
func NewCalculator() *Calculator {
	return &Calculator{
		userColumnWidths:       metrics.ModelSizeMap{},
		userRowHeights:         metrics.ModelSizeMap{},
		calculatedColumnWidths: NewOrderedMap(),
		calculatedRowHeights:   NewOrderedMap(),
		fontWidths:             make(map[string]float64),
		modelRows:              NewOrderedMap(),
		modelColumns:           NewOrderedMap(),
	}
}

// GetMetrics lays out state.
func (c *Calculator) GetMetrics(state *State) *metrics.Metrics {
	utils.Assert(state.Theme != nil && state.Model != nil, "layout: state needs a theme and a model")
	t := state.Theme
	md := state.Model

	c.checkTheme(t)
	if !slices.Equal(state.MovedRows, c.movedRows) {
		c.movedRows = slices.Clone(state.MovedRows)
		c.modelRows.Clear()
	}
	if !slices.Equal(state.MovedColumns, c.movedColumns) {
		c.movedColumns = slices.Clone(state.MovedColumns)
		c.modelColumns.Clear()
	}

	rowCount := md.RowCount()
	columnCount := md.ColumnCount()
	floatingTopRowCount := md.FloatingTopRowCount()
	floatingBottomRowCount := md.FloatingBottomRowCount()
	floatingLeftColumnCount := md.FloatingLeftColumnCount()
	floatingRightColumnCount := md.FloatingRightColumnCount()

	firstRow := c.firstRow(state)
	columns := c.columnSizer(state)

	gridX := c.gridX(state)
	gridY := c.gridY(state)

	rowHeights, visibleRows := c.visibleRowHeights(state)
	columnWidths, visibleColumns := c.visibleColumnWidths(state, columns)

	// Floating items share the size maps with the scrolling ones
	maps.Copy(rowHeights, c.floatingRowHeights(state))
	maps.Copy(columnWidths, c.floatingColumnWidths(state, columns))

	columnXs := visibleCoordinates(columnWidths, visibleColumns, state.LeftOffset)
	rowYs := visibleCoordinates(rowHeights, visibleRows, state.TopOffset)

	bottom := state.Top
	if n := len(visibleRows); n > 0 {
		bottom = visibleRows[n-1]
	}
	right := state.Left
	if n := len(visibleColumns); n > 0 {
		right = visibleColumns[n-1]
	}

	bottomViewport := lastIndexViewport(visibleRows, rowYs, rowHeights, state.Height, t.RowHeight)
	rightViewport := lastIndexViewport(visibleColumns, columnXs, columnWidths, state.Width, t.ColumnWidth)

	maxX := sumSizes(columnWidths) - state.LeftOffset
	maxY := sumSizes(rowHeights) - state.TopOffset

	floatingBottomHeight := c.floatingBottomHeight(state, rowHeights)

	lastLeft := c.lastLeft(state, columns, columnCount-1, state.Width-gridX-t.ScrollBarSize-t.RowFooterWidth)
	lastTop := c.lastTop(state, c.defaultBottom(state), state.Height-gridY-t.ScrollBarSize-floatingBottomHeight)

	contentWidth := state.LeftOffset + maxX + t.RowFooterWidth
	contentHeight := state.TopOffset + maxY
	viewportWidth := state.Width - gridX
	viewportHeight := state.Height - gridY

	hasHorizontalBar := lastLeft > 0 || contentWidth > viewportWidth
	horizontalBarHeight := 0
	if hasHorizontalBar {
		horizontalBarHeight = t.ScrollBarSize
	}
	hasVerticalBar := lastTop > 0 || contentHeight > viewportHeight-horizontalBarHeight
	verticalBarWidth := 0
	if hasVerticalBar {
		verticalBarWidth = t.ScrollBarSize
	}

	barWidth := state.Width - gridX - verticalBarWidth
	barHeight := state.Height - gridY - horizontalBarHeight

	handleWidth := 0
	if hasHorizontalBar {
		percent := float64(columnCount-lastLeft) / float64(columnCount)
		if columnCount == 1 {
			percent = float64(barWidth) / float64(contentWidth)
		}
		handleWidth = handleSize(barWidth, percent, t.MinScrollHandleSize)
	}
	handleHeight := 0
	if hasVerticalBar {
		percent := float64(rowCount-lastTop) / float64(rowCount)
		if rowCount == 1 {
			percent = float64(barHeight) / float64(contentHeight)
		}
		handleHeight = handleSize(barHeight, percent, t.MinScrollHandleSize)
	}

	scrollX := 0
	if hasHorizontalBar {
		percent := scrollPercent(columnCount, state.Left, lastLeft, state.LeftOffset,
			columnWidths[state.Left], contentWidth-viewportWidth)
		scrollX = clampInt(int(math.Round(percent*float64(barWidth-handleWidth))), 0, barWidth-handleWidth)
	}
	scrollY := 0
	if hasVerticalBar {
		percent := scrollPercent(rowCount, state.Top, lastTop, state.TopOffset,
			rowHeights[state.Top], contentHeight-viewportHeight)
		scrollY = clampInt(int(math.Round(percent*float64(barHeight-handleHeight))), 0, barHeight-handleHeight)
	}

	var floatingRows []int
	if floatingTopRowCount > 0 || floatingBottomRowCount > 0 {
		floatingRows = floatingItems(floatingTopRowCount, floatingBottomRowCount, rowCount)
		// Bottom rows stick to the end of the data when it is shorter than the viewport
		end := min(state.Height-gridY-horizontalBarHeight, maxY)
		maps.Copy(rowYs, floatingCoordinates(floatingTopRowCount, floatingBottomRowCount, rowCount, end, rowHeights))
	}

	var floatingColumns []int
	if floatingLeftColumnCount > 0 || floatingRightColumnCount > 0 {
		floatingColumns = floatingItems(floatingLeftColumnCount, floatingRightColumnCount, columnCount)
		end := min(state.Width-gridX-verticalBarWidth, maxX)
		maps.Copy(columnXs, floatingCoordinates(floatingLeftColumnCount, floatingRightColumnCount, columnCount, end, columnWidths))
	}

	allRows := slices.Concat(visibleRows, floatingRows)
	allColumns := slices.Concat(visibleColumns, floatingColumns)
	modelRows := c.modelRowMap(state, allRows)
	modelColumns := c.modelColumnMap(state, allColumns)

	topVisible := c.topVisible(state, rowYs, rowHeights, visibleRows)
	leftVisible := c.leftVisible(state, columnXs, columnWidths, visibleColumns)
	bottomVisible := bottom
	if lastTop > 0 {
		bottomVisible = c.bottomVisible(state, rowYs, rowHeights, visibleRows, gridY)
	}
	rightVisible := right
	if lastLeft > 0 {
		rightVisible = c.rightVisible(state, columnXs, columnWidths, visibleColumns, gridX)
	}

	c.widthForFont(state, t.Font)
	c.widthForFont(state, t.HeaderFont)

	return &metrics.Metrics{
		RowHeight:          t.RowHeight,
		RowHeaderWidth:     t.RowHeaderWidth,
		RowFooterWidth:     t.RowFooterWidth,
		RowCount:           rowCount,
		ColumnWidth:        t.ColumnWidth,
		ColumnCount:        columnCount,
		ColumnHeaderHeight: t.ColumnHeaderHeight,

		FloatingTopRowCount:      floatingTopRowCount,
		FloatingBottomRowCount:   floatingBottomRowCount,
		FloatingLeftColumnCount:  floatingLeftColumnCount,
		FloatingRightColumnCount: floatingRightColumnCount,

		GridX: gridX,
		GridY: gridY,

		FirstRow:    firstRow,
		FirstColumn: columns.firstColumn,

		TreePaddingX: columns.treePaddingX,

		Left:       state.Left,
		Top:        state.Top,
		Bottom:     bottom,
		Right:      right,
		TopOffset:  state.TopOffset,
		LeftOffset: state.LeftOffset,

		TopVisible:    topVisible,
		LeftVisible:   leftVisible,
		BottomVisible: bottomVisible,
		RightVisible:  rightVisible,

		BottomViewport: bottomViewport,
		RightViewport:  rightViewport,

		Width:  state.Width,
		Height: state.Height,

		MaxX: maxX,
		MaxY: maxY,

		LastLeft: lastLeft,
		LastTop:  lastTop,

		BarHeight:           barHeight,
		BarTop:              gridY,
		BarWidth:            barWidth,
		BarLeft:             gridX,
		HandleHeight:        handleHeight,
		HandleWidth:         handleWidth,
		HasHorizontalBar:    hasHorizontalBar,
		HasVerticalBar:      hasVerticalBar,
		VerticalBarWidth:    verticalBarWidth,
		HorizontalBarHeight: horizontalBarHeight,
		ScrollX:             scrollX,
		ScrollY:             scrollY,

		ScrollableContentWidth:   contentWidth,
		ScrollableContentHeight:  contentHeight,
		ScrollableViewportWidth:  viewportWidth,
		ScrollableViewportHeight: viewportHeight,

		VisibleRows:     visibleRows,
		VisibleColumns:  visibleColumns,
		FloatingRows:    floatingRows,
		FloatingColumns: floatingColumns,
		AllRows:         allRows,
		AllColumns:      allColumns,

		VisibleRowHeights:   rowHeights,
		VisibleColumnWidths: columnWidths,
		VisibleRowYs:        rowYs,
		VisibleColumnXs:     columnXs,

		FloatingTopHeight:    c.floatingTopHeight(state, rowHeights),
		FloatingBottomHeight: floatingBottomHeight,
		FloatingLeftWidth:    c.floatingLeftWidth(state, columnWidths),
		FloatingRightWidth:   c.floatingRightWidth(state, columnWidths),

		VisibleRowTreeBoxes: c.visibleRowTreeBoxes(state, rowHeights, modelRows),

		ModelRows:    modelRows,
		ModelColumns: modelColumns,

		MovedRows:    slices.Clone(state.MovedRows),
		MovedColumns: slices.Clone(state.MovedColumns),

		FontWidths: maps.Clone(c.fontWidths),

		UserColumnWidths: maps.Clone(c.userColumnWidths),
		UserRowHeights:   maps.Clone(c.userRowHeights),
	}
}

func sumSizes(sizes metrics.SizeMap) int {
	total := 0
	for _, size := range sizes {
		total += size
	}
	return total
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// handleSize is the length of a scroll handle showing percent of the
// content on a bar of barSize.
func handleSize(barSize int, percent float64, minSize int) int {
	size := int(math.Round(float64(barSize) * percent))
	return max(0, clampInt(size, minSize, barSize-1))
}

// scrollPercent is how far through the scrollable range the viewport is.
// A single item scrolls by offset; otherwise the position is counted in
// items.
func scrollPercent(count, start, last, offset, startSize, scrollableSize int) float64 {
	if count == 1 {
		if scrollableSize <= 0 {
			return 0
		}
		return float64(offset) / float64(scrollableSize)
	}
	if last <= 0 {
		return 0
	}
	offsetPercent := 0.0
	if startSize > 0 {
		offsetPercent = float64(offset) / float64(startSize)
	}
	return (float64(start) + offsetPercent) / float64(last)
}

// floatingItems lists the floating items at the start and then those at the
// end, the last item first.
func floatingItems(startCount, endCount, total int) []int {
	var items []int
	for i := 0; i < startCount && i < total; i++ {
		items = append(items, i)
	}
	for i := 0; i < endCount && total-i-1 >= 0; i++ {
		items = append(items, total-i-1)
	}
	return items
}

// floatingCoordinates places the start items from 0 and the end items
// against end.
func floatingCoordinates(startCount, endCount, total, end int, sizes metrics.SizeMap) metrics.CoordinateMap {
	coordinates := metrics.CoordinateMap{}
	x := 0
	for i := 0; i < startCount && i < total; i++ {
		coordinates[i] = x
		x += mustSize(sizes, i)
	}

	x = end
	for i := 0; i < endCount && total-i-1 >= 0; i++ {
		item := total - i - 1
		x -= mustSize(sizes, item)
		coordinates[item] = x
	}
	return coordinates
}

func mustSize(sizes metrics.SizeMap, index int) int {
	size, ok := sizes[index]
	utils.Assertf(ok, "layout: no size for item %d", index)
	return size
}

// visibleCoordinates places items one after the other, starting offset
// before the origin.
func visibleCoordinates(sizes metrics.SizeMap, items []int, offset int) metrics.CoordinateMap {
	coordinates := make(metrics.CoordinateMap, len(items))
	x := -offset
	for _, item := range items {
		coordinates[item] = x
		x += mustSize(sizes, item)
	}
	return coordinates
}

// lastIndexViewport is the last item the viewport could show if there were
// data past the end: the last laid out item plus as many default sized items
// as fit in the remaining space.
func lastIndexViewport(items []int, coordinates metrics.CoordinateMap, sizes metrics.SizeMap, maxSize, defaultSize int) int {
	last, dataSize := 0, 0
	if n := len(items); n > 0 {
		last = items[n-1]
		dataSize = coordinates[last] + sizes[last]
	}
	if dataSize < maxSize && defaultSize > 0 {
		last += (maxSize - dataSize + defaultSize - 1) / defaultSize
	}
	return last
}

// checkTheme drops the calculated sizes when the theme changed since the
// last layout. Column widths only grow while the theme stays the same.
func (c *Calculator) checkTheme(t *theme.GridTheme) {
	hash, err := hashstructure.Hash(t, hashstructure.FormatV2, nil)
	if err != nil || hash == c.themeHash {
		return
	}
	c.themeHash = hash
	c.calculatedColumnWidths.Clear()
	c.calculatedRowHeights.Clear()
	clear(c.fontWidths)
}

func (c *Calculator) gridX(state *State) int {
	return state.Theme.RowHeaderWidth
}

func (c *Calculator) gridY(state *State) int {
	return state.Theme.ColumnHeaderHeight
}

// pageBottom returns the last row a full page starting at Top reaches.
func (c *Calculator) pageBottom(state *State) int {
	rowHeight := max(1, state.Theme.RowHeight)
	return state.Top + (state.Height+rowHeight-1)/rowHeight
}

func (c *Calculator) defaultBottom(state *State) int {
	return max(0, state.Model.RowCount()-state.Model.FloatingBottomRowCount()-1)
}

// firstIndex returns the first visible index whose model index the user has
// not hidden. Only as many items as the user sized need checking.
func firstIndex(userSizes metrics.ModelSizeMap, modelIndex func(int) int) int {
	for i := 0; i <= len(userSizes); i++ {
		if size, ok := userSizes[modelIndex(i)]; !ok || size != 0 {
			return i
		}
	}
	return 0
}

func (c *Calculator) firstRow(state *State) int {
	return firstIndex(c.userRowHeights, func(row int) int { return c.modelRow(state, row) })
}

func (c *Calculator) firstColumn(state *State) int {
	return firstIndex(c.userColumnWidths, func(column int) int { return c.modelColumn(state, column) })
}

func (c *Calculator) modelRow(state *State, row int) int {
	if modelRow, ok := c.modelRows.Get(row); ok {
		return modelRow
	}
	modelRow := transform.GetModelIndex(row, state.MovedRows)
	c.modelRows.Set(row, modelRow)
	TrimMap(c.modelRows, CacheSize, CacheSize/2)
	return modelRow
}

func (c *Calculator) modelColumn(state *State, column int) int {
	if modelColumn, ok := c.modelColumns.Get(column); ok {
		return modelColumn
	}
	modelColumn := transform.GetModelIndex(column, state.MovedColumns)
	c.modelColumns.Set(column, modelColumn)
	TrimMap(c.modelColumns, CacheSize, CacheSize/2)
	return modelColumn
}

func (c *Calculator) modelRowMap(state *State, rows []int) metrics.ModelIndexMap {
	result := make(metrics.ModelIndexMap, len(rows))
	for _, row := range rows {
		result[row] = c.modelRow(state, row)
	}
	return result
}

func (c *Calculator) modelColumnMap(state *State, columns []int) metrics.ModelIndexMap {
	result := make(metrics.ModelIndexMap, len(columns))
	for _, column := range columns {
		result[column] = c.modelColumn(state, column)
	}
	return result
}

// visibleItemSize returns the user size of an item if there is one. The
// calculated size is always computed so the calculated maps stay filled.
func visibleItemSize(modelIndex int, userSizes metrics.ModelSizeMap, calculate func() int) int {
	calculated := calculate()
	if size, ok := userSizes[modelIndex]; ok {
		return size
	}
	return calculated
}

func (c *Calculator) visibleRowHeight(state *State, row int) int {
	modelRow := c.modelRow(state, row)
	return visibleItemSize(modelRow, c.userRowHeights, func() int {
		return c.calculateRowHeight(state, modelRow)
	})
}

func (c *Calculator) calculateRowHeight(state *State, modelRow int) int {
	t := state.Theme
	if !t.AutoSizeRows {
		return t.RowHeight
	}
	if height, ok := c.calculatedRowHeights.Get(modelRow); ok {
		return height
	}
	// Text is one line high in every cell
	c.calculatedRowHeights.Set(modelRow, t.RowHeight)
	TrimMap(c.calculatedRowHeights, CacheSize, CacheSize/2)
	return t.RowHeight
}

// columnSizer measures columns for one layout. The first column is wider by
// the tree padding.
type columnSizer struct {
	c            *Calculator
	state        *State
	firstColumn  int
	treePaddingX int
}

func (c *Calculator) columnSizer(state *State) columnSizer {
	return columnSizer{
		c:            c,
		state:        state,
		firstColumn:  c.firstColumn(state),
		treePaddingX: c.treePaddingX(state),
	}
}

func (s columnSizer) width(column int) int {
	modelColumn := s.c.modelColumn(s.state, column)
	return visibleItemSize(modelColumn, s.c.userColumnWidths, func() int {
		width := s.c.calculateColumnWidth(s.state, modelColumn)
		if column == s.firstColumn {
			width += s.treePaddingX
		}
		return width
	})
}

func (c *Calculator) calculateColumnWidth(state *State, modelColumn int) int {
	t := state.Theme
	if !t.AutoSizeColumns {
		return t.ColumnWidth
	}

	headerWidth := c.columnHeaderWidth(state, modelColumn)
	dataWidth := c.columnDataWidth(state, modelColumn)
	width := max(t.MinColumnWidth, int(math.Ceil(max(headerWidth, dataWidth))))

	// Columns only grow while scrolling
	if cached, ok := c.calculatedColumnWidths.Get(modelColumn); ok && cached > width {
		return cached
	}
	c.calculatedColumnWidths.Set(modelColumn, width)
	TrimMap(c.calculatedColumnWidths, CacheSize, CacheSize/2)
	return width
}

func (c *Calculator) textWidth(state *State, text, font string) float64 {
	if state.Measure != nil {
		return float64(state.Measure(text, font))
	}
	return float64(utf8.RuneCountInString(text)) * c.widthForFont(state, font)
}

func (c *Calculator) columnHeaderWidth(state *State, modelColumn int) float64 {
	t := state.Theme
	padding := float64(t.HeaderHorizontalPadding * 2)
	text := state.Model.TextForColumnHeader(modelColumn)
	if text == "" {
		return padding
	}
	return c.textWidth(state, text, t.HeaderFont) + padding
}

// columnDataWidth is the width of the widest cell of a column on the
// current page, floating rows included.
func (c *Calculator) columnDataWidth(state *State, modelColumn int) float64 {
	t := state.Theme
	md := state.Model
	padding := float64(t.CellHorizontalPadding * 2)

	width := 0.0
	transform.IterateAllItems(state.Top, c.pageBottom(state),
		md.FloatingTopRowCount(), md.FloatingBottomRowCount(), md.RowCount(),
		func(row int) (struct{}, bool) {
			text := md.TextForCell(modelColumn, c.modelRow(state, row))
			if text != "" {
				width = max(width, c.textWidth(state, text, t.Font)+padding)
			}
			return struct{}{}, false
		})

	available := float64(state.Width-t.RowHeaderWidth-t.ScrollBarSize-t.RowFooterWidth) * MaxColumnWidth
	return max(min(width, available), padding)
}

// treePaddingX is the room the first column needs for the tree markers of
// the deepest row on the current page.
func (c *Calculator) treePaddingX(state *State) int {
	e, ok := model.AsExpandable(state.Model)
	if !ok {
		return 0
	}

	padding := 0
	rowCount := state.Model.RowCount()
	for row := state.Top; row <= c.pageBottom(state) && row < rowCount; row++ {
		depth := e.DepthForRow(c.modelRow(state, row))
		padding = max(padding, state.Theme.TreeDepthIndent*(depth+1))
	}
	return padding
}

// widthForFont returns the width of one character in font, measured once
// on the digit 8.
func (c *Calculator) widthForFont(state *State, font string) float64 {
	if width, ok := c.fontWidths[font]; ok {
		return width
	}
	width := DefaultFontWidth
	if state.Measure != nil {
		if w := state.Measure("8", font); w > 0 {
			width = float64(w)
		}
	}
	c.fontWidths[font] = width
	return width
}

// visibleRowHeights sizes the rows from Top until the surface is full.
func (c *Calculator) visibleRowHeights(state *State) (metrics.SizeMap, []int) {
	heights := metrics.SizeMap{}
	var rows []int
	rowCount := state.Model.RowCount()
	for y, row := 0, state.Top; y < state.Height+state.TopOffset && row < rowCount; row++ {
		height := c.visibleRowHeight(state, row)
		heights[row] = height
		rows = append(rows, row)
		y += height
	}
	return heights, rows
}

// visibleColumnWidths sizes the columns from Left until the surface is full.
func (c *Calculator) visibleColumnWidths(state *State, columns columnSizer) (metrics.SizeMap, []int) {
	widths := metrics.SizeMap{}
	var visible []int
	columnCount := state.Model.ColumnCount()
	for x, column := 0, state.Left; x < state.Width+state.LeftOffset && column < columnCount; column++ {
		width := columns.width(column)
		widths[column] = width
		visible = append(visible, column)
		x += width
	}
	return widths, visible
}

func (c *Calculator) floatingRowHeights(state *State) metrics.SizeMap {
	md := state.Model
	heights := metrics.SizeMap{}
	for _, row := range floatingItems(md.FloatingTopRowCount(), md.FloatingBottomRowCount(), md.RowCount()) {
		heights[row] = c.visibleRowHeight(state, row)
	}
	return heights
}

func (c *Calculator) floatingColumnWidths(state *State, columns columnSizer) metrics.SizeMap {
	md := state.Model
	widths := metrics.SizeMap{}
	for _, column := range floatingItems(md.FloatingLeftColumnCount(), md.FloatingRightColumnCount(), md.ColumnCount()) {
		widths[column] = columns.width(column)
	}
	return widths
}

func (c *Calculator) floatingTopHeight(state *State, heights metrics.SizeMap) int {
	total := 0
	for row := range min(state.Model.FloatingTopRowCount(), state.Model.RowCount()) {
		total += mustSize(heights, row)
	}
	return total
}

func (c *Calculator) floatingBottomHeight(state *State, heights metrics.SizeMap) int {
	rowCount := state.Model.RowCount()
	total := 0
	for i := range min(state.Model.FloatingBottomRowCount(), rowCount) {
		total += mustSize(heights, rowCount-i-1)
	}
	return total
}

func (c *Calculator) floatingLeftWidth(state *State, widths metrics.SizeMap) int {
	total := 0
	for column := range min(state.Model.FloatingLeftColumnCount(), state.Model.ColumnCount()) {
		total += mustSize(widths, column)
	}
	return total
}

func (c *Calculator) floatingRightWidth(state *State, widths metrics.SizeMap) int {
	columnCount := state.Model.ColumnCount()
	total := 0
	for i := range min(state.Model.FloatingRightColumnCount(), columnCount) {
		total += mustSize(widths, columnCount-i-1)
	}
	return total
}

// visibleHeight is the height left for scrolling rows once the headers,
// floating rows and scroll bar are taken off.
func (c *Calculator) visibleHeight(state *State) int {
	heights := c.floatingRowHeights(state)
	return state.Height - c.floatingTopHeight(state, heights) - c.floatingBottomHeight(state, heights) -
		c.gridY(state) - state.Theme.ScrollBarSize
}

// visibleWidth is the width left for scrolling columns.
func (c *Calculator) visibleWidth(state *State, columns columnSizer) int {
	t := state.Theme
	widths := c.floatingColumnWidths(state, columns)
	return state.Width - c.floatingLeftWidth(state, widths) - c.floatingRightWidth(state, widths) -
		c.gridX(state) - t.ScrollBarSize - t.RowFooterWidth
}

// lastLeft walks left from right until visibleWidth is filled and returns
// the column that would then be at the left edge.
func (c *Calculator) lastLeft(state *State, columns columnSizer, right, visibleWidth int) int {
	columnCount := state.Model.ColumnCount()
	x := 0
	for column := right; column >= 0; column-- {
		x += columns.width(column)
		if x >= visibleWidth {
			return min(column+1, columnCount-1)
		}
	}
	return 0
}

// lastTop walks up from bottom until visibleHeight is filled and returns the
// row that would then be at the top.
func (c *Calculator) lastTop(state *State, bottom, visibleHeight int) int {
	rowCount := state.Model.RowCount()
	y := 0
	for row := bottom; row > 0; row-- {
		y += c.visibleRowHeight(state, row)
		if y >= visibleHeight {
			return min(row+1, rowCount-1)
		}
	}
	return 0
}

// GetLastLeft returns the last column that can be scrolled to the left
// edge.
func (c *Calculator) GetLastLeft(state *State) int {
	columns := c.columnSizer(state)
	return c.lastLeft(state, columns, state.Model.ColumnCount()-1, c.visibleWidth(state, columns))
}

// GetLastTop returns the last row that can be scrolled to the top.
func (c *Calculator) GetLastTop(state *State) int {
	return c.lastTop(state, c.defaultBottom(state), c.visibleHeight(state))
}

// GetTopForTopVisible returns the top to scroll to so topVisible is the
// first row below the floating top rows.
func (c *Calculator) GetTopForTopVisible(state *State, topVisible int) int {
	floatingHeight := c.floatingTopHeight(state, c.floatingRowHeights(state))
	top := topVisible
	for y := 0; top > 0 && y < floatingHeight; {
		top--
		y += c.visibleRowHeight(state, top)
	}
	return top
}

// GetTopForBottomVisible returns the top to scroll to so bottomVisible is
// the last row above the floating bottom rows.
func (c *Calculator) GetTopForBottomVisible(state *State, bottomVisible int) int {
	floatingHeight := c.floatingBottomHeight(state, c.floatingRowHeights(state))
	available := state.Height - c.gridY(state) - floatingHeight - state.Theme.ScrollBarSize
	return c.lastTop(state, bottomVisible, available)
}

// GetLeftForLeftVisible returns the left to scroll to so leftVisible is the
// first column right of the floating left columns.
func (c *Calculator) GetLeftForLeftVisible(state *State, leftVisible int) int {
	columns := c.columnSizer(state)
	floatingWidth := c.floatingLeftWidth(state, c.floatingColumnWidths(state, columns))
	left := leftVisible
	for x := 0; left > 0 && x < floatingWidth; {
		left--
		x += columns.width(left)
	}
	return left
}

// GetLeftForRightVisible returns the left to scroll to so rightVisible is
// the last column left of the floating right columns.
func (c *Calculator) GetLeftForRightVisible(state *State, rightVisible int) int {
	t := state.Theme
	columns := c.columnSizer(state)
	floatingWidth := c.floatingRightWidth(state, c.floatingColumnWidths(state, columns))
	available := state.Width - c.gridX(state) - floatingWidth - t.ScrollBarSize - t.RowFooterWidth
	return c.lastLeft(state, columns, rightVisible, available)
}

func (c *Calculator) topVisible(state *State, ys metrics.CoordinateMap, heights metrics.SizeMap, rows []int) int {
	floatingHeight := c.floatingTopHeight(state, heights)
	for _, row := range rows {
		if ys[row] >= floatingHeight {
			return row
		}
	}
	return 0
}

func (c *Calculator) leftVisible(state *State, xs metrics.CoordinateMap, widths metrics.SizeMap, columns []int) int {
	floatingWidth := c.floatingLeftWidth(state, widths)
	for _, column := range columns {
		if xs[column] >= floatingWidth {
			return column
		}
	}
	return 0
}

func (c *Calculator) bottomVisible(state *State, ys metrics.CoordinateMap, heights metrics.SizeMap, rows []int, gridY int) int {
	floatingHeight := c.floatingBottomHeight(state, heights)
	visibleHeight := state.Height - gridY - state.Theme.ScrollBarSize - floatingHeight
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if ys[row]+heights[row] <= visibleHeight {
			return row
		}
	}
	return 0
}

func (c *Calculator) rightVisible(state *State, xs metrics.CoordinateMap, widths metrics.SizeMap, columns []int, gridX int) int {
	floatingWidth := c.floatingRightWidth(state, widths)
	visibleWidth := state.Width - gridX - state.Theme.ScrollBarSize - floatingWidth
	for i := len(columns) - 1; i >= 0; i-- {
		column := columns[i]
		if xs[column]+widths[column] <= visibleWidth {
			return column
		}
	}
	return 0
}

// visibleRowTreeBoxes returns the click area of the tree marker of every
// expandable row on screen, relative to its cell.
func (c *Calculator) visibleRowTreeBoxes(state *State, heights metrics.SizeMap, modelRows metrics.ModelIndexMap) map[int]metrics.Box {
	boxes := make(map[int]metrics.Box)
	e, ok := model.AsExpandable(state.Model)
	if !ok {
		return boxes
	}

	t := state.Theme
	for row, height := range heights {
		modelRow, ok := modelRows[row]
		if !ok || !e.IsRowExpandable(modelRow) {
			continue
		}
		depth := e.DepthForRow(modelRow)
		boxes[row] = metrics.Box{
			X1: depth*t.TreeDepthIndent + t.TreeHorizontalPadding,
			Y1: 0,
			X2: (depth+1)*t.TreeDepthIndent + t.TreeHorizontalPadding,
			Y2: height,
		}
	}
	return boxes
}

// SetColumnWidth sets the width of a model column. A width of zero hides
// the column.
func (c *Calculator) SetColumnWidth(modelColumn, width int) {
	c.userColumnWidths[modelColumn] = max(0, width)
}

// ResetColumnWidth goes back to the calculated width of a model column.
func (c *Calculator) ResetColumnWidth(modelColumn int) {
	delete(c.userColumnWidths, modelColumn)
}

// SetRowHeight sets the height of a model row. A height of zero hides the
// row.
func (c *Calculator) SetRowHeight(modelRow, height int) {
	c.userRowHeights[modelRow] = max(0, height)
}

// ResetRowHeight goes back to the calculated height of a model row.
func (c *Calculator) ResetRowHeight(modelRow int) {
	delete(c.userRowHeights, modelRow)
	c.calculatedRowHeights.Delete(modelRow)
}

// UserColumnWidths returns a copy of the widths set with SetColumnWidth.
func (c *Calculator) UserColumnWidths() metrics.ModelSizeMap {
	return maps.Clone(c.userColumnWidths)
}

// SetUserColumnWidths replaces all user set column widths.
func (c *Calculator) SetUserColumnWidths(widths metrics.ModelSizeMap) {
	c.userColumnWidths = maps.Clone(widths)
	if c.userColumnWidths == nil {
		c.userColumnWidths = metrics.ModelSizeMap{}
	}
}

// ColumnWidth returns the current width of a visible column.
func (c *Calculator) ColumnWidth(state *State, column int) int {
	return c.columnSizer(state).width(column)
}
