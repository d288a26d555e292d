package layout

// CacheSize is how many calculated sizes and index mappings are kept before
// TrimMap drops the oldest half.
const CacheSize = 10000

type orderedEntry struct {
	value int
	seq   int
}

type orderedKey struct {
	key int
	seq int
}

// OrderedMap is an int map that remembers the order keys were added in, so
// the oldest entries can be trimmed first. Setting an existing key keeps its
// position.
type OrderedMap struct {
	values map[int]orderedEntry
	order  []orderedKey
	seq    int
}

// NewOrderedMap creates an empty map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[int]orderedEntry)}
}

func (m *OrderedMap) Get(key int) (int, bool) {
	e, ok := m.values[key]
	return e.value, ok
}

func (m *OrderedMap) Set(key, value int) {
	if e, ok := m.values[key]; ok {
		e.value = value
		m.values[key] = e
		return
	}
	m.seq++
	m.values[key] = orderedEntry{value: value, seq: m.seq}
	m.order = append(m.order, orderedKey{key: key, seq: m.seq})
}

func (m *OrderedMap) Delete(key int) {
	delete(m.values, key)
}

func (m *OrderedMap) Len() int {
	return len(m.values)
}

func (m *OrderedMap) Clear() {
	clear(m.values)
	m.order = m.order[:0]
}

// TrimMap drops the oldest entries of m until targetSize remain, once m
// holds more than cacheSize.
func TrimMap(m *OrderedMap, cacheSize, targetSize int) {
	if m.Len() <= cacheSize {
		return
	}

	i := 0
	for ; i < len(m.order) && m.Len() > targetSize; i++ {
		k := m.order[i]
		if e, ok := m.values[k.key]; ok && e.seq == k.seq {
			delete(m.values, k.key)
		}
	}

	// Drop the trimmed keys along with ones deleted since they were added
	kept := make([]orderedKey, 0, m.Len())
	for _, k := range m.order[i:] {
		if e, ok := m.values[k.key]; ok && e.seq == k.seq {
			kept = append(kept, k)
		}
	}
	m.order = kept
}
