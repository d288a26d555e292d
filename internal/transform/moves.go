// Package transform converts between model and visible index spaces under a
// history of reorder moves, and answers geometry questions about a laid out
// grid (which item is under a point, separator hit testing, scroll deltas).
//
// All functions are pure. The move history is owned by the caller and is
// only read here.
package transform

import (
	"github.com/pstuifzand/tui-grid/internal/metrics"
)

// MoveOperation is an alias so callers of this package do not need to import
// metrics for the common case.
type MoveOperation = metrics.MoveOperation

// MoveItem returns ops with the move from -> to appended. A move that
// continues the previous one (its From is the previous To) rewrites the
// previous operation instead; if that makes the previous operation a no-op
// it is dropped. Moving an item onto itself returns ops unchanged. ops is
// never modified.
func MoveItem(from, to int, ops []MoveOperation) []MoveOperation {
	if from == to {
		return ops
	}

	result := append([]MoveOperation(nil), ops...)
	if n := len(result); n > 0 && result[n-1].To == from {
		if result[n-1].From == to {
			return result[:n-1]
		}
		result[n-1].To = to
		return result
	}

	return append(result, MoveOperation{From: from, To: to})
}

// MoveRange moves the contiguous block [start, end] so its first item lands
// at to. With pickupAtEnd the block is held by its last item instead, and to
// is where the last item lands. The block keeps its internal order. It is
// expressed as single item moves, so the result works with every other
// function in this package.
func MoveRange(start, end, to int, ops []MoveOperation, pickupAtEnd bool) []MoveOperation {
	if end < start {
		start, end = end, start
	}

	length := end - start + 1
	destination := to
	if pickupAtEnd {
		destination = to - length + 1
	}

	if destination == start {
		return ops
	}

	result := ops
	if destination < start {
		for i := 0; i < length; i++ {
			result = MoveItem(start+i, destination+i, result)
		}
		return result
	}

	for i := 0; i < length; i++ {
		result = MoveItem(start, destination+length-1, result)
	}
	return result
}

// GetModelIndex returns the model index shown at visibleIndex. Operations are
// undone newest first.
func GetModelIndex(visibleIndex int, ops []MoveOperation) int {
	index := visibleIndex
	for i := len(ops) - 1; i >= 0; i-- {
		from, to := ops[i].From, ops[i].To
		switch {
		case index == to:
			index = from
		case from < to && from <= index && index < to:
			index++
		case from > to && to < index && index <= from:
			index--
		}
	}
	return index
}

// GetVisibleIndex returns the visible index where modelIndex is shown.
// Operations are applied oldest first. It is the inverse of GetModelIndex.
func GetVisibleIndex(modelIndex int, ops []MoveOperation) int {
	index := modelIndex
	for _, op := range ops {
		from, to := op.From, op.To
		switch {
		case index == from:
			index = to
		case from < to && from < index && index <= to:
			index--
		case from > to && to <= index && index < from:
			index++
		}
	}
	return index
}
