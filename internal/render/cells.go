package render

import (
	"strings"

	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

func (r *Renderer) drawCellContents(p *painter, state *State) {
	for _, column := range state.Metrics.VisibleColumns {
		r.drawColumnCellContents(p, state, column)
	}
}

func (r *Renderer) drawColumnCellContents(p *painter, state *State, column int) {
	r.drawColumnCellContentsForRows(p, state, column, state.Metrics.VisibleRows)
}

// drawColumnCellContentsForRows draws the cells of column in rows, clipped
// to the column.
func (r *Renderer) drawColumnCellContentsForRows(p *painter, state *State, column int, rows []int) {
	m := state.Metrics
	x, ok := m.VisibleColumnXs[column]
	if !ok {
		return
	}

	p.save()
	p.clip(x, 0, m.VisibleColumnWidths[column], m.Height)
	for _, row := range rows {
		r.drawCellContent(p, state, column, row)
	}
	p.restore()
}

// textRenderMetrics returns the width the text of a cell may use and the
// anchor it is aligned on: the left edge for left aligned text, the right
// edge for right aligned text and the middle for centered text. Tree indent
// and cell padding are taken off the width.
func (r *Renderer) textRenderMetrics(state *State, column, row int, align model.Align) (width, x, y int) {
	t := state.Theme
	m := state.Metrics

	columnX := m.VisibleColumnXs[column]
	rowY := m.VisibleRowYs[row]
	columnWidth := m.VisibleColumnWidths[column]
	rowHeight := m.VisibleRowHeights[row]

	treeIndent := 0
	if e, ok := state.expandable(); ok && column == m.FirstColumn {
		treeIndent = t.TreeDepthIndent*(e.DepthForRow(m.ModelRow(row))+1) + t.TreeHorizontalPadding
	}

	textWidth := columnWidth - treeIndent
	x = columnX + t.CellHorizontalPadding
	switch align {
	case model.AlignRight:
		x = columnX + textWidth - t.CellHorizontalPadding
	case model.AlignCenter:
		x = columnX + textWidth/2
	}
	x += treeIndent

	return textWidth - t.CellHorizontalPadding*2, x, rowY + rowHeight/2
}

func (r *Renderer) drawCellContent(p *painter, state *State, column, row int) {
	t := state.Theme
	m := state.Metrics
	md := state.Model

	rowHeight := m.VisibleRowHeights[row]
	modelRow := m.ModelRow(row)
	modelColumn := m.ModelColumn(column)

	text := md.TextForCell(modelColumn, modelRow)
	if e := state.EditingCell; e != nil && e.Column == column && e.Row == row {
		text = e.Value
	}

	if text != "" && rowHeight > 0 {
		align := md.TextAlignForCell(modelColumn, modelRow)
		c := md.ColorForCell(modelColumn, modelRow, t)
		if !c.IsSet() {
			c = t.TextColor
		}

		width, x, y := r.textRenderMetrics(state, column, row, align)
		fontWidth := r.fontWidth(m, p.font)
		truncated := r.truncatedString(p, text, width, fontWidth, md.TruncationCharForCell(modelColumn, modelRow))

		switch align {
		case model.AlignRight:
			x -= p.measure(truncated)
		case model.AlignCenter:
			x -= p.measure(truncated) / 2
		}
		p.fillText(x, y, truncated, c)
	}

	if column == m.FirstColumn {
		if e, ok := state.expandable(); ok {
			r.drawCellRowTreeMarker(p, state, e, row)
		}
	}
}

func (r *Renderer) drawCellRowTreeMarker(p *painter, state *State, e model.Expandable, row int) {
	t := state.Theme
	m := state.Metrics

	modelRow := m.ModelRow(row)
	if !e.IsRowExpandable(modelRow) {
		return
	}

	cell, ok := cellRect(m, m.FirstColumn, row)
	if !ok {
		return
	}

	c := t.TreeMarkerColor
	if mouse := state.Mouse; mouse != nil && cell.Offset(m.GridX, m.GridY).Contains(mouse.X, mouse.Y) {
		c = t.TreeMarkerHoverColor
	}

	r.drawTreeMarker(p, state, cell.X, cell.Y, cell.H, e.DepthForRow(modelRow), c, e.IsRowExpanded(modelRow))
}

func (r *Renderer) drawTreeMarker(p *painter, state *State, columnX, rowY, rowHeight, depth int, c theme.Color, expanded bool) {
	t := state.Theme
	marker := TreeMarkerCollapsed
	if expanded {
		marker = TreeMarkerExpanded
	}
	x := columnX + t.TreeHorizontalPadding + depth*t.TreeDepthIndent
	p.fillText(x, rowY+rowHeight/2, marker, c)
}

// drawCellRowTreeDepthLines draws a vertical line for each level row is
// nested in. Levels that end after this row get a corner instead.
func (r *Renderer) drawCellRowTreeDepthLines(p *painter, state *State, e model.Expandable, row, rowAfter int, hasRowAfter bool) {
	t := state.Theme
	m := state.Metrics

	depth := e.DepthForRow(m.ModelRow(row))
	if depth == 0 {
		return
	}

	columnX := m.VisibleColumnXs[m.FirstColumn]
	rowY := m.VisibleRowYs[row]
	rowHeight := m.VisibleRowHeights[row]
	if rowHeight <= 0 {
		return
	}

	depthRowAfter := 0
	if hasRowAfter {
		depthRowAfter = e.DepthForRow(m.ModelRow(rowAfter))
	}
	depthDiff := max(0, depth-depthRowAfter)

	lineX := func(level int) int {
		return columnX + t.TreeHorizontalPadding + level*t.TreeDepthIndent
	}

	for level := range depth - depthDiff {
		p.vLine(lineX(level), rowY, rowY+rowHeight, t.TreeLineColor)
	}

	corner := "└" + strings.Repeat("─", max(0, t.TreeDepthIndent-1))
	mid := rowY + rowHeight/2
	for level := depth - depthDiff; level < depth; level++ {
		p.vLine(lineX(level), rowY, mid, t.TreeLineColor)
		p.fillText(lineX(level), mid, corner, t.TreeLineColor)
	}
}
