package render

// drawDraggingColumn lifts the dragged block of columns: the place it came
// from is blanked and the block is redrawn, header included, at its current
// position.
func (r *Renderer) drawDraggingColumn(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	dc := state.DraggingColumn
	if dc == nil || state.Mouse == nil {
		return
	}

	originalLeft, ok := m.VisibleColumnXs[dc.Start]
	if !ok {
		return
	}
	originalRight, ok := itemEnd(m.VisibleColumnXs, m.VisibleColumnWidths, dc.End)
	if !ok {
		return
	}

	p.save()

	// Blank the origin, leaving floating columns alone
	p.save()
	p.clip(m.GridX+m.FloatingLeftWidth, 0, m.Width, m.Height)
	p.fillRect(m.GridX+originalLeft, 0, originalRight-originalLeft, m.Height, t.BackgroundColor)
	p.restore()

	p.translate(0, t.ReorderOffset)

	p.fillRect(m.GridX+dc.Left, 0, dc.Width, m.Height, t.BackgroundColor)
	if t.ShadowBlur > 0 {
		shadow := r.colorWithAlpha(t.ShadowColor, shadowAlpha)
		p.fillRect(m.GridX+dc.Left+dc.Width, 0, t.ShadowBlur, m.Height, shadow)
	}

	p.clip(m.GridX+dc.Left, 0, dc.Width, m.Height)
	p.translate(dc.Left-originalLeft, 0)

	p.font = t.HeaderFont
	r.drawColumnHeadersForRange(p, state, dc.Start, dc.End, m.GridX+originalLeft, m.Width)

	p.translate(m.GridX, m.GridY)
	p.font = t.Font
	r.drawGridBackground(p, state, false)
	for column := dc.Start; column <= dc.End; column++ {
		r.drawColumnCellContents(p, state, column)
	}

	p.restore()
}

// drawDraggingRow lifts the dragged row and draws it, with its header,
// under the mouse.
func (r *Renderer) drawDraggingRow(p *painter, state *State) {
	t := state.Theme
	m := state.Metrics
	if state.DraggingRow == nil || state.Mouse == nil {
		return
	}

	row := *state.DraggingRow
	y, ok := m.VisibleRowYs[row]
	if !ok {
		return
	}
	rowHeight := m.VisibleRowHeights[row]

	p.save()
	p.translate(0, m.GridY)

	// Blank the origin
	p.fillRect(0, y, m.Width, rowHeight, t.BackgroundColor)

	p.translate(m.GridX+t.ReorderOffset, state.Mouse.Y-y-m.GridY-state.DraggingRowOffset)

	p.fillRect(-m.GridX, y, m.Width, rowHeight, t.BackgroundColor)
	if t.ShadowBlur > 0 {
		shadow := r.colorWithAlpha(t.ShadowColor, shadowAlpha)
		p.fillRect(-m.GridX, y+rowHeight, m.Width, t.ShadowBlur, shadow)
	}

	p.clip(-m.GridX, y, m.Width, rowHeight)

	p.font = t.Font
	r.drawGridBackground(p, state, false)
	r.drawCellContents(p, state)

	p.translate(-m.GridX, -m.GridY)
	p.font = t.HeaderFont
	r.drawRowHeaders(p, state)

	p.restore()
}
