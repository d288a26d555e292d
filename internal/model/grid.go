// Package model defines what the grid renderer reads from a data source and
// the optional capabilities a source can declare: expandable rows, editable
// cells and deletable ranges.
package model

import (
	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

// Align is the horizontal alignment of text in a cell.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// GridModel supplies the content of a grid. All indexes are model indexes.
type GridModel interface {
	RowCount() int
	ColumnCount() int

	FloatingTopRowCount() int
	FloatingBottomRowCount() int
	FloatingLeftColumnCount() int
	FloatingRightColumnCount() int

	TextForCell(column, row int) string
	// TruncationCharForCell returns the character repeated to fill a
	// truncated cell, or "" to end truncated text with an ellipsis.
	TruncationCharForCell(column, row int) string
	TextAlignForCell(column, row int) Align
	ColorForCell(column, row int, t *theme.GridTheme) theme.Color
	// BackgroundColorForCell returns "" when the cell uses the row
	// background.
	BackgroundColorForCell(column, row int, t *theme.GridTheme) theme.Color

	TextForColumnHeader(column int) string
	ColorForColumnHeader(column int, t *theme.GridTheme) theme.Color
	TextForRowHeader(row int) string
	TextForRowFooter(row int) string

	IsColumnMovable(column int) bool
	IsRowMovable(row int) bool
}

// Base implements the optional parts of GridModel. Embed it and provide
// RowCount, ColumnCount, TextForCell and TextForColumnHeader.
type Base struct{}

func (Base) FloatingTopRowCount() int      { return 0 }
func (Base) FloatingBottomRowCount() int   { return 0 }
func (Base) FloatingLeftColumnCount() int  { return 0 }
func (Base) FloatingRightColumnCount() int { return 0 }

func (Base) TruncationCharForCell(column, row int) string { return "" }
func (Base) TextAlignForCell(column, row int) Align        { return AlignLeft }

func (Base) ColorForCell(column, row int, t *theme.GridTheme) theme.Color {
	return t.TextColor
}

func (Base) BackgroundColorForCell(column, row int, t *theme.GridTheme) theme.Color {
	return ""
}

func (Base) ColorForColumnHeader(column int, t *theme.GridTheme) theme.Color {
	return t.HeaderColor
}

func (Base) TextForRowHeader(row int) string { return "" }
func (Base) TextForRowFooter(row int) string { return "" }

func (Base) IsColumnMovable(column int) bool { return true }
func (Base) IsRowMovable(row int) bool       { return true }

// Expandable is implemented by models whose rows form a tree. Expanding a
// row inserts its children directly after it and grows RowCount by the
// number of children; collapsing removes them again.
type Expandable interface {
	HasExpandableRows() bool
	IsRowExpandable(row int) bool
	IsRowExpanded(row int) bool
	// DepthForRow is the nesting level of row, 0 for top level rows.
	DepthForRow(row int) int
	SetRowExpanded(row int, expanded, expandDescendants bool)
	ExpandAll()
	CollapseAll()
}

// Editable is implemented by models that accept new cell values.
type Editable interface {
	IsEditable() bool
	IsEditableRange(r gridrange.Range) bool
	EditValueForCell(column, row int) string
	IsValidForCell(column, row int, value string) bool
	SetValueForCell(column, row int, value string) error
	SetValueForRanges(ranges []gridrange.Range, value string) error
}

// Deletable is implemented by models that can remove the content of ranges.
type Deletable interface {
	IsDeletable() bool
	DeleteRanges(ranges []gridrange.Range) error
}

// AsExpandable returns the tree capability of m when it has expandable rows.
func AsExpandable(m GridModel) (Expandable, bool) {
	e, ok := m.(Expandable)
	if !ok || !e.HasExpandableRows() {
		return nil, false
	}
	return e, true
}

// AsEditable returns the edit capability of m when editing is enabled.
func AsEditable(m GridModel) (Editable, bool) {
	e, ok := m.(Editable)
	if !ok || !e.IsEditable() {
		return nil, false
	}
	return e, true
}

// AsDeletable returns the delete capability of m when deleting is enabled.
func AsDeletable(m GridModel) (Deletable, bool) {
	d, ok := m.(Deletable)
	if !ok || !d.IsDeletable() {
		return nil, false
	}
	return d, true
}
