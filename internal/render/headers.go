package render

import (
	"github.com/pstuifzand/tui-grid/internal/transform"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

// headerStyle overrides the theme colors of one column header.
type headerStyle struct {
	background theme.Color
	text       theme.Color
}

func (r *Renderer) drawHeaders(p *painter, state *State) {
	p.save()
	p.font = state.Theme.HeaderFont
	r.drawColumnHeaders(p, state)
	r.drawRowHeaders(p, state)
	p.restore()
}

func (r *Renderer) drawFooters(p *painter, state *State) {
	p.save()
	p.font = state.Theme.HeaderFont
	r.drawRowFooters(p, state)
	p.restore()
}

// hiddenSeparator returns the size of the box marking hidden items across a
// header of the given size, and its offset within the header.
func hiddenSeparator(headerSize int) (size, offset int) {
	size = max(1, headerSize/2)
	return size, headerSize/2 - size/2
}

func (r *Renderer) drawColumnHeaders(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	if m.ColumnHeaderHeight <= 0 {
		return
	}

	hiddenHeight, hiddenY := hiddenSeparator(m.ColumnHeaderHeight)
	rightX := floatingRightX(m)

	p.save()

	if n := len(m.VisibleColumns); n > 0 {
		r.drawColumnHeadersForRange(p, state, m.VisibleColumns[0], m.VisibleColumns[n-1],
			m.GridX+m.FloatingLeftWidth, m.Width-m.FloatingRightWidth)
	}
	if m.FloatingLeftColumnCount > 0 {
		r.drawColumnHeadersForRange(p, state, 0, m.FloatingLeftColumnCount-1,
			m.GridX, m.GridX+m.FloatingLeftWidth)
	}
	if m.FloatingRightColumnCount > 0 {
		r.drawColumnHeadersForRange(p, state, m.ColumnCount-m.FloatingRightColumnCount, m.ColumnCount-1,
			m.GridX+rightX, m.GridX+rightX+m.FloatingRightWidth)
	}

	if t.HeaderSeparatorColor.IsSet() {
		for _, column := range m.AllColumns {
			x, ok := m.VisibleColumnXs[column]
			if !ok || m.VisibleColumnWidths[column] != 0 {
				continue
			}
			minX := m.GridX + x - t.HeaderHiddenSeparatorSize/2
			p.fillRect(minX, hiddenY, t.HeaderHiddenSeparatorSize, hiddenHeight, t.HeaderSeparatorColor)
		}
	}

	if t.HeaderSeparatorHoverColor.IsSet() {
		r.drawColumnSeparatorHover(p, state, hiddenY, hiddenHeight)
	}

	p.restore()
}

// highlightedColumnSeparator returns the column whose right separator is
// being dragged or is under the mouse.
func (s *State) highlightedColumnSeparator() (int, bool) {
	if s.DraggingColumnSeparator != nil {
		return s.DraggingColumnSeparator.Index, true
	}
	if s.Mouse == nil {
		return 0, false
	}
	return transform.GetColumnSeparatorIndex(s.Mouse.X, s.Mouse.Y, s.Metrics, s.Theme)
}

func (r *Renderer) drawColumnSeparatorHover(p *painter, state *State, hiddenY, hiddenHeight int) {
	t := state.Theme
	m := state.Metrics

	column, ok := state.highlightedColumnSeparator()
	if !ok {
		return
	}
	if state.IsDragging && state.DraggingColumnSeparator == nil {
		return
	}

	modelColumn, ok := m.ModelColumns[column]
	if !ok {
		return
	}
	nextModelColumn, ok := m.ModelColumns[column+1]
	if !ok {
		return
	}
	// Adjacent headers with the same text read as one header
	if state.Model.TextForColumnHeader(modelColumn) == state.Model.TextForColumnHeader(nextModelColumn) {
		return
	}

	columnWidth := m.VisibleColumnWidths[column]
	x := m.GridX + m.VisibleColumnXs[column] + columnWidth
	nextWidth, hasNext := m.VisibleColumnWidths[column+1]
	handleWidth := max(1, t.HeaderHiddenSeparatorSize/2)

	c := t.HeaderSeparatorHoverColor
	if columnWidth == 0 {
		c = t.HeaderHiddenSeparatorHoverColor
		p.fillRect(x, hiddenY, handleWidth, hiddenHeight, c)
	} else if hasNext && nextWidth == 0 {
		p.fillRect(x-handleWidth, hiddenY, handleWidth, hiddenHeight, c)
	}

	p.vLine(x, 0, m.ColumnHeaderHeight, c)
}

// drawColumnHeadersForRange draws the headers of visible columns start to
// end, within the horizontal bounds minX to maxX.
func (r *Renderer) drawColumnHeadersForRange(p *painter, state *State, start, end, minX, maxX int) {
	// Background reaches the right edge even past the last column
	r.drawColumnHeader(p, state, "", minX, maxX-minX, headerStyle{}, minX, maxX)

	for column := start; column <= end; column++ {
		r.drawColumnHeaderAtIndex(p, state, column, minX, maxX)
	}
}

func (r *Renderer) drawColumnHeaderAtIndex(p *painter, state *State, column, minX, maxX int) {
	m := state.Metrics
	x, ok := m.VisibleColumnXs[column]
	if !ok {
		return
	}

	modelColumn := m.ModelColumn(column)
	text := state.Model.TextForColumnHeader(modelColumn)
	style := headerStyle{text: state.Model.ColorForColumnHeader(modelColumn, state.Theme)}

	r.drawColumnHeader(p, state, text, m.GridX+x, m.VisibleColumnWidths[column], style, minX, maxX)
}

// drawColumnHeader draws one header cell. The text is centered, and sticks
// to the visible edge when the header is partly scrolled out of the bounds.
func (r *Renderer) drawColumnHeader(p *painter, state *State, text string, columnX, columnWidth int, style headerStyle, minX, maxX int) {
	if columnWidth <= 0 {
		return
	}
	t := state.Theme
	m := state.Metrics
	height := m.ColumnHeaderHeight
	padding := t.HeaderHorizontalPadding

	bg := t.HeaderBackgroundColor
	if style.background.IsSet() {
		bg = style.background
	}
	textColor := t.HeaderColor
	if style.text.IsSet() {
		textColor = style.text
	}

	// Keep the text readable on the background
	if bg.IsSet() && textColor.IsSet() {
		darkBackground := r.isDark(bg)
		darkText := r.isDark(textColor)
		if darkBackground && darkText {
			textColor = t.White
		} else if !darkBackground && !darkText {
			textColor = t.Black
		}
	}

	p.save()
	p.clip(minX, 0, maxX-minX, height)

	p.fillRect(columnX, 0, columnWidth, height, bg)

	sep := t.HeaderSeparatorColor
	if columnX > 0 {
		p.vLine(columnX, 0, height, sep)
	}
	p.vLine(columnX+columnWidth, 0, height, sep)
	if height >= 2 {
		p.hLine(columnX, columnX+columnWidth, height-1, sep)
	}

	p.clip(columnX, 0, columnWidth, height)

	maxWidth := columnWidth - padding*2
	renderText := truncateProportional(text, float64(maxWidth)/r.fontWidth(m, p.font))
	textWidth := p.measure(renderText)

	x := columnX + (columnWidth-textWidth)/2
	minX += padding
	maxX -= padding

	columnLeft := columnX + padding
	columnRight := columnX + columnWidth - padding
	visibleWidth := min(max(columnRight, minX), maxX) - min(max(columnLeft, minX), maxX)

	if x < minX {
		if textWidth < visibleWidth {
			x = minX
		} else {
			x = columnRight - textWidth
		}
	} else if x+textWidth > maxX {
		if textWidth < visibleWidth {
			x = maxX - textWidth
		} else {
			x = columnLeft
		}
	}

	p.fillText(x, height/2, renderText, textColor)
	p.restore()
}

// highlightedRowSeparator returns the row whose bottom separator is being
// dragged or is under the mouse.
func (s *State) highlightedRowSeparator() (int, bool) {
	if s.DraggingRowSeparator != nil {
		return s.DraggingRowSeparator.Index, true
	}
	if s.Mouse == nil {
		return 0, false
	}
	return transform.GetRowSeparatorIndex(s.Mouse.X, s.Mouse.Y, s.Metrics, s.Theme)
}

// drawRowSeparators draws the separators of a row header or footer column
// at x: a line under each row when rows have room for one, boxes marking
// hidden rows and the hovered separator.
func (r *Renderer) drawRowSeparators(p *painter, state *State, x, width int) {
	t := state.Theme
	m := state.Metrics
	hiddenWidth, hiddenX := hiddenSeparator(width)

	if t.HeaderSeparatorColor.IsSet() {
		var hiddenRows []int
		previousHidden := false
		for _, row := range m.VisibleRows {
			rowHeight := m.VisibleRowHeights[row]
			if rowHeight > 0 {
				if hasRowLines(t) {
					p.hLine(x, x+width, m.GridY+m.VisibleRowYs[row]+rowHeight, t.HeaderSeparatorColor)
				}
				previousHidden = false
			} else if !previousHidden {
				previousHidden = true
				hiddenRows = append(hiddenRows, row)
			}
		}

		for _, row := range hiddenRows {
			y := m.GridY + m.VisibleRowYs[row] - t.HeaderHiddenSeparatorSize/2
			p.fillRect(x+hiddenX, y, hiddenWidth, t.HeaderHiddenSeparatorSize, t.HeaderSeparatorColor)
		}
	}

	if !t.HeaderSeparatorHoverColor.IsSet() {
		return
	}
	row, ok := state.highlightedRowSeparator()
	if !ok {
		return
	}

	rowHeight := m.VisibleRowHeights[row]
	y := m.GridY + m.VisibleRowYs[row] + rowHeight
	nextHeight, hasNext := m.VisibleRowHeights[row+1]
	handleHeight := max(1, t.HeaderHiddenSeparatorSize/2)

	c := t.HeaderSeparatorHoverColor
	if rowHeight == 0 {
		c = t.HeaderHiddenSeparatorHoverColor
		p.fillRect(x+hiddenX, y, hiddenWidth, handleHeight, c)
	} else if hasNext && nextHeight == 0 {
		p.fillRect(x+hiddenX, y-handleHeight, hiddenWidth, handleHeight, c)
	}

	if hasRowLines(t) {
		p.hLine(x, x+width, y, c)
	} else {
		// No room for a line: mark the last unit of the row instead
		p.fillRect(x, y-1, width, 1, c)
	}
}

func (r *Renderer) drawRowHeaders(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	width := m.RowHeaderWidth
	if width <= 0 {
		return
	}

	p.save()

	p.fillRect(0, 0, width, m.Height, t.HeaderBackgroundColor)
	if hasRowLines(t) {
		p.hLine(0, width, m.GridY, t.HeaderSeparatorColor)
	}
	r.drawRowSeparators(p, state, 0, width)
	p.vLine(width-1, 0, m.Height, t.HeaderSeparatorColor)

	p.clip(0, m.GridY, width, m.Height)
	for _, row := range m.VisibleRows {
		r.drawRowHeader(p, state, row)
	}
	for _, row := range m.FloatingRows {
		// Floating rows cover the scrolling rows under them
		p.fillRect(0, m.GridY+m.VisibleRowYs[row], width-1, m.VisibleRowHeights[row], t.HeaderBackgroundColor)
		r.drawRowHeader(p, state, row)
	}

	p.restore()
}

func (r *Renderer) drawRowHeader(p *painter, state *State, row int) {
	m := state.Metrics
	rowHeight := m.VisibleRowHeights[row]
	if rowHeight <= 0 {
		return
	}
	text := state.Model.TextForRowHeader(m.ModelRow(row))
	x := m.RowHeaderWidth - state.Theme.CellHorizontalPadding - p.measure(text)
	y := m.GridY + m.VisibleRowYs[row] + rowHeight/2
	p.fillText(x, y, text, state.Theme.HeaderColor)
}

func (r *Renderer) drawRowFooters(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	width := m.RowFooterWidth
	if width <= 0 {
		return
	}

	x := min(m.GridX+m.MaxX, m.Width-width-m.VerticalBarWidth)

	p.save()

	p.fillRect(x, m.GridY, width, m.Height, t.HeaderBackgroundColor)
	r.drawRowSeparators(p, state, x, width)
	p.vLine(x, m.GridY, m.Height, t.HeaderSeparatorColor)

	p.clip(x, m.GridY, width, m.Height)
	textX := x + t.CellHorizontalPadding
	for _, row := range m.AllRows {
		rowHeight := m.VisibleRowHeights[row]
		if rowHeight <= 0 {
			continue
		}
		y := m.GridY + m.VisibleRowYs[row] + rowHeight/2
		p.fillText(textX, y, state.Model.TextForRowFooter(m.ModelRow(row)), t.HeaderColor)
	}

	p.restore()
}
