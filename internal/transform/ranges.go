package transform

import (
	"cmp"
	"fmt"
	"math"

	"github.com/pstuifzand/tui-grid/internal/gridrange"
)

// AxisRange is an inclusive [Start, End] span on one axis. Either end may be
// unbounded.
type AxisRange struct {
	Start gridrange.Index
	End   gridrange.Index
}

// NewAxisRange returns a bounded axis range.
func NewAxisRange(start, end int) AxisRange {
	return AxisRange{Start: gridrange.At(start), End: gridrange.At(end)}
}

func (a AxisRange) String() string {
	return fmt.Sprintf("[%s,%s]", a.Start, a.End)
}

const (
	negInf = math.MinInt
	posInf = math.MaxInt
)

// segment is one piece of a move's piecewise mapping: every index in
// [lo, hi] either shifts by shift or, when fixed, maps to target.
type segment struct {
	lo, hi int
	shift  int
	target int
	fixed  bool
}

func shiftBound(v, delta int) int {
	if v == negInf || v == posInf {
		return v
	}
	return v + delta
}

func (s segment) apply(lo, hi int) (int, int) {
	if s.fixed {
		return s.target, s.target
	}
	return shiftBound(lo, s.shift), shiftBound(hi, s.shift)
}

// modelSegments is the visible -> model mapping of a single move.
func modelSegments(op MoveOperation) []segment {
	from, to := op.From, op.To
	if from < to {
		return []segment{
			{lo: negInf, hi: from - 1},
			{lo: from, hi: to - 1, shift: 1},
			{lo: to, hi: to, target: from, fixed: true},
			{lo: to + 1, hi: posInf},
		}
	}
	return []segment{
		{lo: negInf, hi: to - 1},
		{lo: to, hi: to, target: from, fixed: true},
		{lo: to + 1, hi: from, shift: -1},
		{lo: from + 1, hi: posInf},
	}
}

// visibleSegments is the model -> visible mapping of a single move.
func visibleSegments(op MoveOperation) []segment {
	from, to := op.From, op.To
	if from < to {
		return []segment{
			{lo: negInf, hi: from - 1},
			{lo: from, hi: from, target: to, fixed: true},
			{lo: from + 1, hi: to, shift: -1},
			{lo: to + 1, hi: posInf},
		}
	}
	return []segment{
		{lo: negInf, hi: to - 1},
		{lo: to, hi: from - 1, shift: 1},
		{lo: from, hi: from, target: to, fixed: true},
		{lo: from + 1, hi: posInf},
	}
}

type span struct {
	lo, hi int
}

// splitSpan maps s through segments, keeping the order of s so pieces that
// came from lower indexes come first.
func splitSpan(s span, segments []segment, result []span) []span {
	for _, seg := range segments {
		lo, hi := max(s.lo, seg.lo), min(s.hi, seg.hi)
		if lo > hi {
			continue
		}
		mappedLo, mappedHi := seg.apply(lo, hi)
		result = appendSpan(result, span{mappedLo, mappedHi})
	}
	return result
}

// appendSpan appends s, joining it onto the previous span when the two are
// contiguous.
func appendSpan(spans []span, s span) []span {
	if n := len(spans); n > 0 {
		last := &spans[n-1]
		if last.hi != posInf && s.lo != negInf && last.hi+1 == s.lo {
			last.hi = s.hi
			return spans
		}
	}
	return append(spans, s)
}

func transformAxis(start, end gridrange.Index, ops []MoveOperation, reverse bool, segmentsFor func(MoveOperation) []segment) []AxisRange {
	spans := []span{{lo: start.Or(negInf), hi: end.Or(posInf)}}

	for i := range ops {
		op := ops[i]
		if reverse {
			op = ops[len(ops)-1-i]
		}
		if op.From == op.To {
			continue
		}

		segments := segmentsFor(op)
		next := make([]span, 0, len(spans)+2)
		for _, s := range spans {
			next = splitSpan(s, segments, next)
		}
		spans = next
	}

	result := make([]AxisRange, len(spans))
	for i, s := range spans {
		result[i] = AxisRange{Start: toIndex(s.lo), End: toIndex(s.hi)}
	}
	return result
}

func toIndex(v int) gridrange.Index {
	if v == negInf || v == posInf {
		return gridrange.Unbounded
	}
	return gridrange.At(v)
}

// GetModelRangeIndexes returns the model spans covered by the visible span
// [start, end]. A move can split one visible span into several model spans,
// so the result is a list. Unbounded ends stay unbounded.
func GetModelRangeIndexes(start, end gridrange.Index, ops []MoveOperation) []AxisRange {
	return transformAxis(start, end, ops, true, modelSegments)
}

// GetVisibleRangeIndexes returns the visible spans covered by the model span
// [start, end]. It is the inverse of GetModelRangeIndexes.
func GetVisibleRangeIndexes(start, end gridrange.Index, ops []MoveOperation) []AxisRange {
	return transformAxis(start, end, ops, false, visibleSegments)
}

func crossProduct(columns, rows []AxisRange) []gridrange.Range {
	result := make([]gridrange.Range, 0, len(columns)*len(rows))
	for _, c := range columns {
		for _, r := range rows {
			result = append(result, gridrange.New(c.Start, r.Start, c.End, r.End))
		}
	}
	return result
}

// GetModelRange translates a visible range into the model ranges it covers.
func GetModelRange(r gridrange.Range, movedColumns, movedRows []MoveOperation) []gridrange.Range {
	columns := GetModelRangeIndexes(r.StartColumn, r.EndColumn, movedColumns)
	rows := GetModelRangeIndexes(r.StartRow, r.EndRow, movedRows)
	return crossProduct(columns, rows)
}

// GetModelRanges translates every visible range into model ranges.
func GetModelRanges(ranges []gridrange.Range, movedColumns, movedRows []MoveOperation) []gridrange.Range {
	var result []gridrange.Range
	for _, r := range ranges {
		result = append(result, GetModelRange(r, movedColumns, movedRows)...)
	}
	return result
}

// GetVisibleRange translates a model range into the visible ranges it
// covers.
func GetVisibleRange(r gridrange.Range, movedColumns, movedRows []MoveOperation) []gridrange.Range {
	columns := GetVisibleRangeIndexes(r.StartColumn, r.EndColumn, movedColumns)
	rows := GetVisibleRangeIndexes(r.StartRow, r.EndRow, movedRows)
	return crossProduct(columns, rows)
}

// GetVisibleRanges translates every model range into visible ranges.
func GetVisibleRanges(ranges []gridrange.Range, movedColumns, movedRows []MoveOperation) []gridrange.Range {
	var result []gridrange.Range
	for _, r := range ranges {
		result = append(result, GetVisibleRange(r, movedColumns, movedRows)...)
	}
	return result
}

// CompareRanges orders axis ranges by start, then end. An open start sorts
// first and an open end sorts last.
func CompareRanges(a, b AxisRange) int {
	if c := cmp.Compare(a.Start.Or(negInf), b.Start.Or(negInf)); c != 0 {
		return c
	}
	return cmp.Compare(a.End.Or(posInf), b.End.Or(posInf))
}

// MergeSortedRanges joins overlapping or adjacent spans of a slice sorted
// with CompareRanges.
func MergeSortedRanges(ranges []AxisRange) []AxisRange {
	var result []AxisRange
	for _, r := range ranges {
		if n := len(result); n > 0 {
			last := &result[n-1]
			if gridrange.IsAxisRangeTouching(last.Start, last.End, r.Start, r.End) {
				last.End = gridrange.MaxOrUnbounded(last.End, r.End)
				continue
			}
		}
		result = append(result, r)
	}
	return result
}
