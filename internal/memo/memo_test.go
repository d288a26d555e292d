package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheClearsWhenFull(t *testing.T) {
	c := New[int, string](3)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")
	assert.Equal(t, 3, c.Len())

	// Overwriting an existing key does not count as a new entry
	c.Put(3, "C")
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 0, c.Clears())

	c.Put(4, "d")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Clears())

	_, ok := c.Get(1)
	assert.False(t, ok)
	v, ok := c.Get(4)
	assert.True(t, ok)
	assert.Equal(t, "d", v)
}

func TestGetOrCompute(t *testing.T) {
	c := New[string, int](10)
	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	assert.Equal(t, 42, c.GetOrCompute("x", compute))
	assert.Equal(t, 42, c.GetOrCompute("x", compute))
	assert.Equal(t, 1, calls)

	c.Clear()
	assert.Equal(t, 42, c.GetOrCompute("x", compute))
	assert.Equal(t, 2, calls)
}

func TestFunc(t *testing.T) {
	calls := 0
	square := Func(2, func(n int) int {
		calls++
		return n * n
	})

	assert.Equal(t, 4, square(2))
	assert.Equal(t, 4, square(2))
	assert.Equal(t, 9, square(3))
	assert.Equal(t, 2, calls)

	// Third key clears, so 2 is computed again
	assert.Equal(t, 16, square(4))
	assert.Equal(t, 4, square(2))
	assert.Equal(t, 4, calls)
}

func TestMinimumCapacity(t *testing.T) {
	c := New[int, int](0)
	c.Put(1, 1)
	c.Put(2, 2)
	assert.Equal(t, 1, c.Len())
}
