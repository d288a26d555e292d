package render

import (
	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/metrics"
	"github.com/pstuifzand/tui-grid/internal/model"
	"github.com/pstuifzand/tui-grid/internal/theme"
)

// Point is a position on the surface.
type Point struct {
	X, Y int
}

// DraggingColumn is a block of visible columns being moved by the mouse.
type DraggingColumn struct {
	Start, End int
	// Left is the current x of the block in grid coordinates
	Left  int
	Width int
}

// Separator identifies a header separator being dragged; Index is the
// visible item left of or above it.
type Separator struct {
	Index int
}

// EditingCell is a cell whose value is being edited.
type EditingCell struct {
	Column, Row int
	Value       string
}

// State is everything one frame is painted from. Pointer fields are nil
// when the feature is inactive.
type State struct {
	Theme   *theme.GridTheme
	Model   model.GridModel
	Metrics *metrics.Metrics

	Mouse *Point

	// Cursor is the visible cell of the keyboard cursor
	Cursor         *gridrange.Cell
	SelectedRanges []gridrange.Range

	DraggingColumn          *DraggingColumn
	DraggingColumnSeparator *Separator
	DraggingRow             *int
	DraggingRowOffset       int
	DraggingRowSeparator    *Separator

	EditingCell *EditingCell

	IsDraggingHorizontalScrollBar bool
	IsDraggingVerticalScrollBar   bool
	IsDragging                    bool
}

func (s *State) isDraggingItem() bool {
	return s.DraggingRow != nil || s.DraggingColumn != nil
}

func (s *State) expandable() (model.Expandable, bool) {
	return model.AsExpandable(s.Model)
}
