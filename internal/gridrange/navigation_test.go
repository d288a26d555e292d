package gridrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var navRanges = []Range{
	NewBounded(5, 7, 20, 21),
	NewBounded(105, 107, 120, 121),
}

var (
	firstCellDown = []Cell{{5, 7}, {105, 107}}
	firstCellUp   = []Cell{{20, 21}, {120, 121}}
	outsideCell   = Cell{1, 3}
)

func cellPtr(c Cell) *Cell {
	return &c
}

func TestNextCellEmpty(t *testing.T) {
	_, ok := NextCell(nil, nil, Down)
	assert.False(t, ok)

	_, ok = NextCell([]Range{}, cellPtr(outsideCell), Down)
	assert.False(t, ok)
}

func TestNextCell(t *testing.T) {
	tests := []struct {
		name      string
		ranges    []Range
		cursor    *Cell
		direction Direction
		expected  Cell
	}{
		{"no cursor down", navRanges, nil, Down, firstCellDown[0]},
		{"no cursor right", navRanges, nil, Right, firstCellDown[0]},
		{"no cursor up", navRanges, nil, Up, firstCellUp[1]},
		{"no cursor left", navRanges, nil, Left, firstCellUp[1]},

		{"outside down", navRanges, cellPtr(outsideCell), Down, firstCellDown[0]},
		{"outside right", navRanges, cellPtr(outsideCell), Right, firstCellDown[0]},
		{"outside up", navRanges, cellPtr(outsideCell), Up, firstCellUp[1]},
		{"outside left", navRanges, cellPtr(outsideCell), Left, firstCellUp[1]},

		{"down in range", navRanges, cellPtr(firstCellDown[0]), Down, Cell{5, 8}},
		{"down in middle", navRanges, cellPtr(Cell{8, 15}), Down, Cell{8, 16}},
		{"right in range", navRanges, cellPtr(firstCellDown[0]), Right, Cell{6, 7}},
		{"right in middle", navRanges, cellPtr(Cell{8, 15}), Right, Cell{9, 15}},
		{"up in range", navRanges, cellPtr(firstCellUp[0]), Up, Cell{20, 20}},
		{"up in middle", navRanges, cellPtr(Cell{8, 15}), Up, Cell{8, 14}},
		{"left in range", navRanges, cellPtr(firstCellUp[0]), Left, Cell{19, 21}},
		{"left in middle", navRanges, cellPtr(Cell{8, 15}), Left, Cell{7, 15}},

		{"wrap column down", navRanges, cellPtr(Cell{5, 21}), Down, Cell{6, 7}},
		{"wrap row right", navRanges, cellPtr(Cell{20, 10}), Right, Cell{5, 11}},
		{"wrap column up", navRanges, cellPtr(Cell{20, 7}), Up, Cell{19, 21}},
		{"wrap row left", navRanges, cellPtr(Cell{5, 21}), Left, Cell{20, 20}},

		{"single range wraps down", navRanges[:1], cellPtr(firstCellUp[0]), Down, firstCellDown[0]},
		{"single range wraps right", navRanges[:1], cellPtr(firstCellUp[0]), Right, firstCellDown[0]},
		{"single range wraps up", navRanges[:1], cellPtr(firstCellDown[0]), Up, firstCellUp[0]},
		{"single range wraps left", navRanges[:1], cellPtr(firstCellDown[0]), Left, firstCellUp[0]},

		{"next range down", navRanges, cellPtr(firstCellUp[0]), Down, firstCellDown[1]},
		{"next range right", navRanges, cellPtr(firstCellUp[0]), Right, firstCellDown[1]},
		{"previous range up", navRanges, cellPtr(firstCellDown[1]), Up, firstCellUp[0]},
		{"previous range left", navRanges, cellPtr(firstCellDown[1]), Left, firstCellUp[0]},

		{"last range wraps down", navRanges, cellPtr(firstCellUp[1]), Down, firstCellDown[0]},
		{"first range wraps up", navRanges, cellPtr(firstCellDown[0]), Up, firstCellUp[1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextCell(tt.ranges, tt.cursor, tt.direction)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNextCellPanicsForUnbounded(t *testing.T) {
	rowRange := New(Unbounded, At(0), Unbounded, At(4))
	columnRange := New(At(0), Unbounded, At(4), Unbounded)

	assert.Panics(t, func() { rowRange.NextCell(0, 0, Down) })
	assert.Panics(t, func() { columnRange.NextCell(0, 0, Down) })
	assert.Panics(t, func() { rowRange.StartCell(Down) })
	assert.Panics(t, func() { NextCell([]Range{rowRange}, nil, Down) })
	assert.Panics(t, func() { columnRange.ForEach(func(int, int, int) {}, Right) })
}

func TestNextCellPanicsForInvalidDirection(t *testing.T) {
	assert.Panics(t, func() { navRanges[0].NextCell(5, 7, Direction(99)) })
	assert.Panics(t, func() { navRanges[0].StartCell(Direction(99)) })
}

func TestForEach(t *testing.T) {
	const x, y, w, h = 10, 20, 30, 40
	rng := NewBounded(x, y, x+w-1, y+h-1)

	tests := []struct {
		direction Direction
		expected  func(i int) Cell
	}{
		{Down, func(i int) Cell { return Cell{x + i/h, y + i%h} }},
		{Right, func(i int) Cell { return Cell{x + i%w, y + i/w} }},
		{Up, func(i int) Cell { return Cell{x + w - 1 - i/h, y + h - 1 - i%h} }},
		{Left, func(i int) Cell { return Cell{x + w - 1 - i%w, y + h - 1 - i/w} }},
	}

	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			var got []Cell
			rng.ForEach(func(column, row, index int) {
				assert.Equal(t, len(got), index)
				got = append(got, Cell{column, row})
			}, tt.direction)

			assert.Len(t, got, w*h)
			for i, c := range got {
				if c != tt.expected(i) {
					t.Fatalf("cell %d = %v, want %v", i, c, tt.expected(i))
				}
			}
		})
	}
}

func TestForEachCell(t *testing.T) {
	var got []Cell
	ForEachCell([]Range{MakeCell(1, 1), NewBounded(3, 3, 4, 3)}, func(column, row, _ int) {
		got = append(got, Cell{column, row})
	}, Right)

	assert.Equal(t, []Cell{{1, 1}, {3, 3}, {4, 3}}, got)
}

func TestContainsCellList(t *testing.T) {
	assert.True(t, ContainsCell(navRanges, 10, 10))
	assert.True(t, ContainsCell(navRanges, 120, 121))
	assert.False(t, ContainsCell(navRanges, 50, 50))
	assert.False(t, ContainsCell(nil, 0, 0))
}
