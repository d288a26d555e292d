package gridrange

import "strconv"

// Index is one end of a range axis: either a bounded row/column index or
// unbounded (an open end).
type Index struct {
	value   int
	bounded bool
}

// Unbounded is the open end of an axis.
var Unbounded = Index{}

// At returns a bounded index.
func At(i int) Index {
	return Index{value: i, bounded: true}
}

// Value returns the index and whether it is bounded.
func (i Index) Value() (int, bool) {
	return i.value, i.bounded
}

// IsBounded reports whether the index has a value.
func (i Index) IsBounded() bool {
	return i.bounded
}

// MustValue returns the bounded value and panics for an unbounded index.
func (i Index) MustValue() int {
	if !i.bounded {
		panic("gridrange: value of unbounded index")
	}
	return i.value
}

// Or returns the bounded value, or fallback when unbounded.
func (i Index) Or(fallback int) int {
	if !i.bounded {
		return fallback
	}
	return i.value
}

// Add shifts a bounded index by delta. Unbounded stays unbounded.
func (i Index) Add(delta int) Index {
	if !i.bounded {
		return i
	}
	return At(i.value + delta)
}

func (i Index) String() string {
	if !i.bounded {
		return "∞"
	}
	return strconv.Itoa(i.value)
}

// MinOrUnbounded returns the smaller bounded index, or Unbounded if either is
// unbounded.
func MinOrUnbounded(a, b Index) Index {
	if !a.bounded || !b.bounded {
		return Unbounded
	}
	return At(min(a.value, b.value))
}

// MaxOrUnbounded returns the larger bounded index, or Unbounded if either is
// unbounded.
func MaxOrUnbounded(a, b Index) Index {
	if !a.bounded || !b.bounded {
		return Unbounded
	}
	return At(max(a.value, b.value))
}
