package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-grid/internal/model"
)

func TestDefaults(t *testing.T) {
	m := New(Options{})
	assert.Equal(t, DefaultRowCount, m.RowCount())
	assert.Equal(t, DefaultColumnCount, m.ColumnCount())
	assert.Equal(t, 10_000_000, m.childRowCount)

	small := New(Options{RowCount: 50})
	assert.Equal(t, MinChildRowCount, small.childRowCount)

	_, ok := model.AsExpandable(m)
	assert.True(t, ok)
	assert.False(t, m.IsRowMovable(0))
	assert.Equal(t, 0, m.FloatingBottomRowCount())
}

func TestExpandCollapse(t *testing.T) {
	m := New(Options{RowCount: 100, ColumnCount: 5})

	assert.False(t, m.IsRowExpanded(5))
	m.SetRowExpanded(5, true, false)
	assert.Equal(t, 110, m.RowCount())
	assert.True(t, m.IsRowExpanded(5))

	tests := []struct {
		row    int
		text   string
		header string
		depth  int
	}{
		{5, "2,5", "5", 0},
		{6, "5.2,0", "5.0", 1},
		{15, "5.2,9", "5.9", 1},
		{16, "2,6", "6", 0},
		{109, "2,99", "99", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.text, m.TextForCell(2, tt.row), "row %d", tt.row)
		assert.Equal(t, tt.header, m.TextForRowHeader(tt.row), "row %d", tt.row)
		assert.Equal(t, tt.depth, m.DepthForRow(tt.row), "row %d", tt.row)
	}

	// Expand a row inside the child
	m.SetRowExpanded(6, true, false)
	assert.Equal(t, 120, m.RowCount())
	assert.True(t, m.IsRowExpanded(6))
	assert.Equal(t, "5.0.2,0", m.TextForCell(2, 7))
	assert.Equal(t, 2, m.DepthForRow(7))
	assert.Equal(t, "5.1", m.TextForRowHeader(17))

	m.SetRowExpanded(6, false, false)
	assert.Equal(t, 110, m.RowCount())

	// Collapsing hides the whole block, nested rows included
	m.SetRowExpanded(6, true, false)
	m.SetRowExpanded(5, false, false)
	assert.Equal(t, 100, m.RowCount())
	assert.Equal(t, "2,6", m.TextForCell(2, 6))

	// Collapsing a row that is not expanded changes nothing
	m.SetRowExpanded(3, false, false)
	assert.Equal(t, 100, m.RowCount())
}

func TestExpandTwiceKeepsCount(t *testing.T) {
	m := New(Options{RowCount: 20})
	m.SetRowExpanded(0, true, false)
	m.SetRowExpanded(0, true, false)
	assert.Equal(t, 30, m.RowCount())
}

func TestMultipleChildrenOffsets(t *testing.T) {
	m := New(Options{RowCount: 20, ColumnCount: 3, ChildRowCount: 2})
	m.SetRowExpanded(10, true, false)
	m.SetRowExpanded(1, true, false)
	require.Equal(t, 24, m.RowCount())

	texts := make([]string, 0, 8)
	for row := range 8 {
		texts = append(texts, m.TextForCell(0, row))
	}
	assert.Equal(t, []string{"0,0", "0,1", "1.0,0", "1.0,1", "0,2", "0,3", "0,4", "0,5"}, texts)
	assert.Equal(t, "0,10", m.TextForCell(0, 12))
	assert.Equal(t, "10.0,0", m.TextForCell(0, 13))
	assert.Equal(t, "0,11", m.TextForCell(0, 15))
}

func TestMaxDepth(t *testing.T) {
	m := New(Options{RowCount: 10, ChildRowCount: 10, MaxDepth: 2})

	assert.True(t, m.IsRowExpandable(0))
	m.SetRowExpanded(0, true, false)
	assert.True(t, m.IsRowExpandable(1))
	m.SetRowExpanded(1, true, false)
	assert.Equal(t, 2, m.DepthForRow(2))
	assert.False(t, m.IsRowExpandable(2))

	before := m.RowCount()
	m.SetRowExpanded(2, true, false)
	assert.Equal(t, before, m.RowCount())
	assert.False(t, m.IsRowExpanded(2))
}

func TestExpandAllCollapseAll(t *testing.T) {
	m := New(Options{RowCount: 3, ChildRowCount: 2})

	m.ExpandAll()
	assert.Equal(t, 9, m.RowCount())
	for row := range m.RowCount() {
		if m.DepthForRow(row) == 0 {
			assert.True(t, m.IsRowExpanded(row), "row %d", row)
		}
	}

	// Next level: each of the six child rows gets ten rows of its own
	m.ExpandAll()
	assert.Equal(t, 69, m.RowCount())

	m.CollapseAll()
	assert.Equal(t, 3, m.RowCount())
	assert.False(t, m.IsRowExpanded(0))
}

func TestExpandDescendants(t *testing.T) {
	m := New(Options{RowCount: 5, ChildRowCount: 3})
	m.SetRowExpanded(2, true, true)
	assert.Equal(t, 5+3+30, m.RowCount())
	assert.Equal(t, 2, m.DepthForRow(4))

	m.SetRowExpanded(2, false, false)
	assert.Equal(t, 5, m.RowCount())
}

func TestLargeTreeStaysLazy(t *testing.T) {
	m := New(Options{})
	m.ExpandAll()
	assert.Equal(t, DefaultRowCount, m.RowCount())

	m.SetRowExpanded(DefaultRowCount-1, true, false)
	assert.Equal(t, DefaultRowCount+10_000_000, m.RowCount())
	assert.Equal(t, 1, m.DepthForRow(DefaultRowCount))
}
