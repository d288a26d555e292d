// Package memo caches the results of pure functions. A cache holds at most a
// fixed number of entries; adding one more clears it wholesale instead of
// evicting single entries, so a burst of new keys cannot make the cache
// churn.
package memo

// Default capacities for the renderer caches.
const (
	DefaultCapacity     = 1000
	StringCacheCapacity = 10000
)

// Cache maps keys to values up to a fixed capacity. It is not safe for
// concurrent use.
type Cache[K comparable, V any] struct {
	capacity int
	entries  map[K]V
	clears   int
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		capacity: max(1, capacity),
		entries:  make(map[K]V),
	}
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Put stores value for key, clearing the cache first when it is full.
func (c *Cache[K, V]) Put(key K, value V) {
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.capacity {
		c.Clear()
	}
	c.entries[key] = value
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := c.entries[key]; ok {
		return v
	}
	v := compute()
	c.Put(key, v)
	return v
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	clear(c.entries)
	c.clears++
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Clears returns how many times the cache was emptied.
func (c *Cache[K, V]) Clears() int {
	return c.clears
}

// Func memoizes a one argument function.
func Func[K comparable, V any](capacity int, fn func(K) V) func(K) V {
	cache := New[K, V](capacity)
	return func(key K) V {
		return cache.GetOrCompute(key, func() V { return fn(key) })
	}
}
