package render

import (
	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/theme"
	"github.com/pstuifzand/tui-grid/internal/transform"
)

// hasRowLines reports whether rows are tall enough to give up a line to a
// horizontal separator. With single unit rows the separator would cover the
// text.
func hasRowLines(t *theme.GridTheme) bool {
	return t.RowHeight >= 2
}

func (r *Renderer) drawGridBackground(p *painter, state *State, drawHover bool) {
	r.drawRowStripes(p, state)

	if drawHover {
		r.drawMouseColumnHover(p, state)
		r.drawMouseRowHover(p, state)
	}

	r.drawGridLines(p, state)
	r.drawCellBackgrounds(p, state)

	m := state.Metrics
	vp := newSelectionViewport(m)
	vp.bottom = min(m.Bottom, m.RowCount-m.FloatingBottomRowCount-1)
	vp.right = min(m.Right, m.ColumnCount-m.FloatingRightColumnCount-1)
	if m.FloatingLeftColumnCount > 0 {
		vp.minX = m.FloatingLeftWidth
	}
	if m.FloatingTopRowCount > 0 {
		vp.minY = m.FloatingTopHeight
	}
	if m.FloatingRightColumnCount > 0 {
		if x, ok := itemEnd(m.VisibleColumnXs, m.VisibleColumnWidths, m.ColumnCount-m.FloatingRightColumnCount-1); ok {
			vp.maxX = x
		}
	}
	if m.FloatingBottomRowCount > 0 {
		if y, ok := itemEnd(m.VisibleRowYs, m.VisibleRowHeights, m.RowCount-m.FloatingBottomRowCount-1); ok {
			vp.maxY = y
		}
	}
	r.drawSelectedRanges(p, state, vp)
}

// itemEnd returns the coordinate just past index.
func itemEnd(coordinates metrics.CoordinateMap, sizes metrics.SizeMap, index int) (int, bool) {
	start, ok := coordinates[index]
	if !ok {
		return 0, false
	}
	return start + sizes[index], true
}

func (r *Renderer) drawRowStripes(p *painter, state *State) {
	colors := state.Theme.RowBackgroundColors
	if colors == "" {
		return
	}
	r.drawRowStripesForRows(p, state, state.Metrics.VisibleRows, colors, 0, state.Metrics.MaxX)
}

func (r *Renderer) depthForRow(state *State, row int) int {
	e, ok := state.expandable()
	if !ok {
		return 0
	}
	return e.DepthForRow(state.Metrics.ModelRow(row))
}

// drawRowStripesForRows fills rows between minX and maxX with the
// alternating row colors, darkened by tree depth. Rows deeper than the row
// above get a shadow along their top, and the last row of a deeper block
// one along its bottom.
func (r *Renderer) drawRowStripesForRows(p *painter, state *State, rows []int, rowBackgroundColors string, minX, maxX int) {
	t := state.Theme
	m := state.Metrics

	colorSets := r.backgroundColors(rowBackgroundColors, t.MaxDepth)
	if len(colorSets) == 0 {
		return
	}

	// Group rows by color, keeping the order colors are first seen in
	var order []theme.Color
	colorRows := make(map[theme.Color][]int)
	var topShadowRows, bottomShadowRows []int

	for i, row := range rows {
		depth := r.depthForRow(state, row)
		colorSet := colorSets[row%len(colorSets)]
		c := colorSet[min(depth, len(colorSet)-1)]
		if _, ok := colorRows[c]; !ok {
			order = append(order, c)
		}
		colorRows[c] = append(colorRows[c], row)

		if i > 0 {
			rowAbove := rows[i-1]
			depthAbove := r.depthForRow(state, rowAbove)
			if depthAbove < depth {
				topShadowRows = append(topShadowRows, row)
			} else if depthAbove > depth {
				bottomShadowRows = append(bottomShadowRows, rowAbove)
			}
		}
	}

	width := maxX - minX
	for _, c := range order {
		for _, row := range colorRows[c] {
			p.fillRect(minX, m.VisibleRowYs[row], width, m.VisibleRowHeights[row], c)
		}
	}

	if t.ShadowBlur <= 0 {
		return
	}
	shadow := r.colorWithAlpha(t.ShadowColor, shadowAlpha)
	for _, row := range topShadowRows {
		height := min(t.ShadowBlur, m.VisibleRowHeights[row])
		p.fillRect(minX, m.VisibleRowYs[row], width, height, shadow)
	}
	for _, row := range bottomShadowRows {
		rowHeight := m.VisibleRowHeights[row]
		height := min(t.ShadowBlur, rowHeight)
		p.fillRect(minX, m.VisibleRowYs[row]+rowHeight-height, width, height, shadow)
	}
}

func (r *Renderer) drawMouseColumnHover(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	if state.Mouse == nil || !t.ColumnHoverBackgroundColor.IsSet() {
		return
	}

	column, ok := transform.ColumnAtX(state.Mouse.X, m)
	if !ok || state.Mouse.Y-m.GridY > m.MaxY {
		return
	}

	p.fillRect(m.VisibleColumnXs[column], 0, m.VisibleColumnWidths[column], m.MaxY, t.ColumnHoverBackgroundColor)
}

func (r *Renderer) drawMouseRowHover(p *painter, state *State) {
	m := state.Metrics
	if state.Mouse == nil || !state.Theme.RowHoverBackgroundColor.IsSet() {
		return
	}
	if state.Mouse.X-m.GridX > m.MaxX {
		return
	}

	row, ok := transform.RowAtY(state.Mouse.Y, m)
	if !ok {
		return
	}
	r.drawMouseRowHoverForRow(p, state, row)
}

func (r *Renderer) drawFloatingMouseRowHover(p *painter, state *State) {
	m := state.Metrics
	if state.Mouse == nil || !state.Theme.RowHoverBackgroundColor.IsSet() {
		return
	}
	if state.Mouse.X-m.GridX > m.MaxX+m.RowFooterWidth {
		return
	}

	row, ok := transform.RowAtY(state.Mouse.Y, m)
	if ok && transform.IsFloatingRow(row, m) {
		r.drawMouseRowHoverForRow(p, state, row)
	}
}

func (r *Renderer) drawMouseRowHoverForRow(p *painter, state *State, row int) {
	t := state.Theme
	m := state.Metrics

	c := t.RowHoverBackgroundColor
	for _, selected := range state.SelectedRanges {
		start, hasStart := selected.StartRow.Value()
		end, hasEnd := selected.EndRow.Value()
		if hasStart && hasEnd && start <= row && row <= end {
			if t.SelectedRowHoverBackgroundColor.IsSet() {
				c = t.SelectedRowHoverBackgroundColor
			}
			break
		}
	}
	p.fillRect(0, m.VisibleRowYs[row], m.MaxX, m.VisibleRowHeights[row], c)
}

func (r *Renderer) drawGridLines(p *painter, state *State) {
	m := state.Metrics
	t := state.Theme
	r.drawGridLinesForItems(p, state, m.VisibleColumns, m.VisibleRows, t.GridColumnColor, t.GridRowColor)
}

// drawGridLinesForItems draws a line on the first unit of every column, and
// of every row when rows have room for one.
func (r *Renderer) drawGridLinesForItems(p *painter, state *State, columns, rows []int, columnColor, rowColor theme.Color) {
	m := state.Metrics
	if columnColor.IsSet() {
		for _, column := range columns {
			p.vLine(m.VisibleColumnXs[column], 0, m.MaxY, columnColor)
		}
	}
	if rowColor.IsSet() && hasRowLines(state.Theme) {
		for _, row := range rows {
			p.hLine(0, m.MaxX, m.VisibleRowYs[row], rowColor)
		}
	}
}

func (r *Renderer) drawCellBackgrounds(p *painter, state *State) {
	m := state.Metrics
	r.drawCellBackgroundsForItems(p, state, m.VisibleColumns, m.VisibleRows)
}

func (r *Renderer) drawCellBackgroundsForItems(p *painter, state *State, columns, rows []int) {
	p.save()
	for _, column := range columns {
		for i, row := range rows {
			rowAfter, hasRowAfter := 0, i+1 < len(rows)
			if hasRowAfter {
				rowAfter = rows[i+1]
			}
			r.drawCellBackground(p, state, column, row, rowAfter, hasRowAfter)
		}
	}
	p.restore()
}

// drawCellBackground fills the cell with the model's background, leaving
// its grid lines visible.
func (r *Renderer) drawCellBackground(p *painter, state *State, column, row, rowAfter int, hasRowAfter bool) {
	t := state.Theme
	m := state.Metrics

	bg := state.Model.BackgroundColorForCell(m.ModelColumn(column), m.ModelRow(row), t)
	if bg.IsSet() {
		lineHeight := 0
		if hasRowLines(t) {
			lineHeight = 1
		}
		x := m.VisibleColumnXs[column] + 1
		y := m.VisibleRowYs[row] + lineHeight
		p.fillRect(x, y, m.VisibleColumnWidths[column]-1, m.VisibleRowHeights[row]-lineHeight, bg)
	}

	if column == m.FirstColumn {
		if e, ok := state.expandable(); ok {
			r.drawCellRowTreeDepthLines(p, state, e, row, rowAfter, hasRowAfter)
		}
	}
}

func (r *Renderer) drawFloatingRows(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	if len(m.FloatingRows) == 0 {
		return
	}

	if t.FloatingRowBackgroundColors != "" {
		r.drawRowStripesForRows(p, state, m.FloatingRows, t.FloatingRowBackgroundColors, 0, m.MaxX)
	}

	if !state.isDraggingItem() {
		r.drawFloatingMouseRowHover(p, state)
	}

	r.drawGridLinesForItems(p, state, m.VisibleColumns, m.FloatingRows, t.FloatingGridColumnColor, t.FloatingGridRowColor)
	r.drawCellBackgroundsForItems(p, state, m.VisibleColumns, m.FloatingRows)
	r.drawFloatingBorders(p, state)

	if m.FloatingTopRowCount > 0 {
		last := m.FloatingTopRowCount - 1
		vp := newSelectionViewport(m)
		vp.top = 0
		vp.bottom = last
		if end, ok := itemEnd(m.VisibleRowYs, m.VisibleRowHeights, last); ok {
			vp.maxY = end
		}
		r.drawSelectedRanges(p, state, vp)
	}
	if m.FloatingBottomRowCount > 0 {
		first := m.RowCount - m.FloatingBottomRowCount
		vp := newSelectionViewport(m)
		vp.top = first
		vp.bottom = m.RowCount - 1
		vp.minY = m.VisibleRowYs[first]
		if end, ok := itemEnd(m.VisibleRowYs, m.VisibleRowHeights, m.RowCount-1); ok {
			vp.maxY = end
		}
		r.drawSelectedRanges(p, state, vp)
	}

	for _, column := range m.VisibleColumns {
		r.drawColumnCellContentsForRows(p, state, column, m.FloatingRows)
	}
}

// floatingRightX is where the right floating columns start.
func floatingRightX(m *metrics.Metrics) int {
	if m.FloatingRightColumnCount == 0 {
		return m.MaxX
	}
	return m.VisibleColumnXs[m.ColumnCount-m.FloatingRightColumnCount]
}

func (r *Renderer) drawFloatingColumns(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	if len(m.FloatingColumns) == 0 {
		return
	}

	rightX := floatingRightX(m)
	areas := []Rect{
		{X: 0, Y: 0, W: m.FloatingLeftWidth, H: m.Height},
		{X: rightX, Y: 0, W: m.FloatingRightWidth, H: m.Height},
	}

	if t.FloatingRowBackgroundColors != "" {
		r.drawRowStripesForRows(p, state, m.VisibleRows, t.FloatingRowBackgroundColors, 0, m.FloatingLeftWidth)
		r.drawRowStripesForRows(p, state, m.VisibleRows, t.FloatingRowBackgroundColors, rightX, rightX+m.FloatingRightWidth)
	}

	for _, area := range areas {
		if area.Empty() {
			continue
		}
		p.save()
		p.clip(area.X, area.Y, area.W, area.H)
		if !state.isDraggingItem() {
			r.drawMouseRowHover(p, state)
		}
		r.drawGridLinesForItems(p, state, m.FloatingColumns, m.VisibleRows, t.FloatingGridColumnColor, t.FloatingGridRowColor)
		p.restore()
	}

	r.drawCellBackgroundsForItems(p, state, m.FloatingColumns, m.VisibleRows)
	r.drawFloatingBorders(p, state)

	if m.FloatingLeftColumnCount > 0 {
		last := m.FloatingLeftColumnCount - 1
		vp := newSelectionViewport(m)
		vp.left = 0
		vp.right = last
		if end, ok := itemEnd(m.VisibleColumnXs, m.VisibleColumnWidths, last); ok {
			vp.maxX = end
		}
		r.drawSelectedRanges(p, state, vp)
	}
	if m.FloatingRightColumnCount > 0 {
		first := m.ColumnCount - m.FloatingRightColumnCount
		vp := newSelectionViewport(m)
		vp.left = first
		vp.right = m.ColumnCount - 1
		vp.minX = m.VisibleColumnXs[first]
		if end, ok := itemEnd(m.VisibleColumnXs, m.VisibleColumnWidths, m.ColumnCount-1); ok {
			vp.maxX = end
		}
		r.drawSelectedRanges(p, state, vp)
	}

	// Corner cells shared with floating rows are painted here, last
	rows := append(append([]int(nil), m.VisibleRows...), m.FloatingRows...)
	for _, column := range m.FloatingColumns {
		r.drawColumnCellContentsForRows(p, state, column, rows)
	}
}

// drawFloatingBorders draws the dividers between floating sections and the
// scrolling area. A divider is drawn in two passes on the seam units: the
// outer color fills the band as a casing, then the inner color draws a thin
// line over it. Seams sit inside the floating sections, whose contents are
// drawn afterwards.
func (r *Renderer) drawFloatingBorders(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics

	var rowSeams, columnSeams []int
	if m.FloatingTopRowCount > 0 {
		if y, ok := itemEnd(m.VisibleRowYs, m.VisibleRowHeights, m.FloatingTopRowCount-1); ok {
			rowSeams = append(rowSeams, y-1)
		}
	}
	if m.FloatingBottomRowCount > 0 {
		if y, ok := m.VisibleRowYs[m.RowCount-m.FloatingBottomRowCount]; ok {
			rowSeams = append(rowSeams, y)
		}
	}
	if m.FloatingLeftColumnCount > 0 {
		if x, ok := itemEnd(m.VisibleColumnXs, m.VisibleColumnWidths, m.FloatingLeftColumnCount-1); ok {
			columnSeams = append(columnSeams, x-1)
		}
	}
	if m.FloatingRightColumnCount > 0 {
		if x, ok := m.VisibleColumnXs[m.ColumnCount-m.FloatingRightColumnCount]; ok {
			columnSeams = append(columnSeams, x)
		}
	}

	for _, y := range rowSeams {
		p.fillRect(0, y, m.MaxX, 1, t.FloatingDividerOuterColor)
	}
	for _, x := range columnSeams {
		p.fillRect(x, 0, 1, m.MaxY, t.FloatingDividerOuterColor)
	}

	for _, y := range rowSeams {
		p.hLine(0, m.MaxX, y, t.FloatingDividerInnerColor)
	}
	for _, x := range columnSeams {
		p.vLine(x, 0, m.MaxY, t.FloatingDividerInnerColor)
	}
}

// cellRect returns the rectangle of a visible cell in grid coordinates.
func cellRect(m *metrics.Metrics, column, row int) (Rect, bool) {
	x, hasX := m.VisibleColumnXs[column]
	y, hasY := m.VisibleRowYs[row]
	if !hasX || !hasY {
		return Rect{}, false
	}
	return Rect{X: x, Y: y, W: m.VisibleColumnWidths[column], H: m.VisibleRowHeights[row]}, true
}
