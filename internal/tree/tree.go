// Package tree provides a lazily nested tree grid model. Expanding a row
// attaches a child model with its own rows, which can be expanded in turn,
// so trees of any size can be explored without building them up front.
package tree

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/pstuifzand/tui-grid/internal/gridrange"
	"github.com/pstuifzand/tui-grid/internal/memo"
	"github.com/pstuifzand/tui-grid/internal/model"
)

const (
	DefaultRowCount    = 1_000_000_000
	DefaultColumnCount = 100

	// A child has this fraction of its parent's rows, but at least
	// MinChildRowCount.
	DefaultChildRowCountFactor = 0.01
	MinChildRowCount           = 10
	MaxDepth                   = 10

	// ExpandAll only creates children for models with at most this many
	// rows of their own.
	ExpandAllLimit = 1000
)

// Options configures a Model. Zero values use the defaults.
type Options struct {
	RowCount      int
	ColumnCount   int
	ChildRowCount int
	MaxDepth      int
}

// Model is a tree grid model. Rows of the model itself are numbered
// "column,row"; rows inside an expanded block are prefixed with the key of
// the row they belong to.
type Model struct {
	model.Base

	ownRowCount   int
	rowCount      int
	columnCount   int
	childRowCount int
	maxDepth      int

	// Children keyed by the row of this model they are attached to
	children map[int]*Model
	keys     []int

	text *memo.Cache[gridrange.Cell, string]
}

// New creates a tree model.
func New(opts Options) *Model {
	if opts.RowCount <= 0 {
		opts.RowCount = DefaultRowCount
	}
	if opts.ColumnCount <= 0 {
		opts.ColumnCount = DefaultColumnCount
	}
	if opts.ChildRowCount <= 0 {
		opts.ChildRowCount = int(math.Ceil(math.Max(
			MinChildRowCount,
			float64(opts.RowCount)*DefaultChildRowCountFactor,
		)))
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = MaxDepth
	}
	return &Model{
		ownRowCount:   opts.RowCount,
		rowCount:      opts.RowCount,
		columnCount:   opts.ColumnCount,
		childRowCount: opts.ChildRowCount,
		maxDepth:      opts.MaxDepth,
		children:      make(map[int]*Model),
		text:          memo.New[gridrange.Cell, string](memo.StringCacheCapacity),
	}
}

func (m *Model) RowCount() int    { return m.rowCount }
func (m *Model) ColumnCount() int { return m.columnCount }

// rowOffset finds where row lives. When inChild is true the row is row
// offsetRow of the child attached at key; otherwise offsetRow is a row of m
// itself.
func (m *Model) rowOffset(row int) (key, offsetRow int, inChild bool) {
	offsetRow = row
	for _, childRow := range m.keys {
		if offsetRow <= childRow {
			break
		}
		count := m.children[childRow].rowCount
		if offsetRow <= childRow+count {
			return childRow, offsetRow - childRow - 1, true
		}
		offsetRow -= count
	}
	return 0, offsetRow, false
}

func (m *Model) changed() {
	m.keys = slices.Sorted(maps.Keys(m.children))
	m.text.Clear()
}

func (m *Model) TextForCell(column, row int) string {
	cell := gridrange.Cell{Column: column, Row: row}
	return m.text.GetOrCompute(cell, func() string {
		key, offsetRow, inChild := m.rowOffset(row)
		if inChild {
			return strconv.Itoa(key) + "." + m.children[key].TextForCell(column, offsetRow)
		}
		return fmt.Sprintf("%d,%d", column, offsetRow)
	})
}

func (m *Model) TextForRowHeader(row int) string {
	key, offsetRow, inChild := m.rowOffset(row)
	if inChild {
		return strconv.Itoa(key) + "." + m.children[key].TextForRowHeader(offsetRow)
	}
	return strconv.Itoa(offsetRow)
}

func (m *Model) TextForColumnHeader(column int) string {
	return strconv.Itoa(column)
}

func (m *Model) IsRowMovable(row int) bool {
	return false
}

func (m *Model) HasExpandableRows() bool {
	return true
}

func (m *Model) IsRowExpandable(row int) bool {
	return m.DepthForRow(row) < m.maxDepth
}

func (m *Model) IsRowExpanded(row int) bool {
	key, offsetRow, inChild := m.rowOffset(row)
	if inChild {
		return m.children[key].IsRowExpanded(offsetRow)
	}
	_, ok := m.children[offsetRow]
	return ok
}

func (m *Model) DepthForRow(row int) int {
	key, offsetRow, inChild := m.rowOffset(row)
	if inChild {
		return m.children[key].DepthForRow(offsetRow) + 1
	}
	return 0
}

func (m *Model) newChild() *Model {
	child := New(Options{
		RowCount:    m.childRowCount,
		ColumnCount: m.columnCount,
	})
	child.maxDepth = m.maxDepth - 1
	return child
}

// SetRowExpanded expands or collapses row. The row count changes by exactly
// the number of rows shown or hidden. With expandDescendants a newly
// expanded row also expands its children, see ExpandAll.
func (m *Model) SetRowExpanded(row int, expanded, expandDescendants bool) {
	defer m.changed()

	key, offsetRow, inChild := m.rowOffset(row)
	if inChild {
		child := m.children[key]
		before := child.rowCount
		child.SetRowExpanded(offsetRow, expanded, expandDescendants)
		m.rowCount += child.rowCount - before
		return
	}

	child, ok := m.children[offsetRow]
	if !expanded {
		if ok {
			m.rowCount -= child.rowCount
			delete(m.children, offsetRow)
		}
		return
	}

	if !ok {
		if m.maxDepth <= 0 {
			return
		}
		child = m.newChild()
		m.children[offsetRow] = child
		m.rowCount += child.rowCount
	}
	if expandDescendants {
		before := child.rowCount
		child.ExpandAll()
		m.rowCount += child.rowCount - before
	}
}

// ExpandAll opens one more level below every expanded row. Models with at
// most ExpandAllLimit rows of their own also expand each of their own rows.
func (m *Model) ExpandAll() {
	defer m.changed()

	for _, key := range m.keys {
		child := m.children[key]
		before := child.rowCount
		child.ExpandAll()
		m.rowCount += child.rowCount - before
	}

	if m.ownRowCount > ExpandAllLimit || m.maxDepth <= 0 {
		return
	}
	for row := range m.ownRowCount {
		if _, ok := m.children[row]; !ok {
			child := m.newChild()
			m.children[row] = child
			m.rowCount += child.rowCount
		}
	}
}

// CollapseAll removes every child.
func (m *Model) CollapseAll() {
	clear(m.children)
	m.rowCount = m.ownRowCount
	m.changed()
}
