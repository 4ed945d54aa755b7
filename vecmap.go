package soundstage

// vecMap is a fixed-capacity, insertion-order-preserving mapping from a
// comparable ID to a value. It never grows past the capacity given to
// newVecMap: Insert at capacity fails, letting the caller decide policy
// (Sounds/Parameters/tracks reject; Instances evicts the oldest entry
// itself, via Oldest and Remove, before inserting).
//
// Lookup is O(1) via a map from key to value; a separate key slice records
// insertion order. Remove preserves that order (scans the key slice and
// shifts the tail down, O(n)), which matters
// for Instances where "oldest" must mean "lowest surviving insertion
// index". Collections that don't promise iteration order could use a
// cheaper swap-remove, but a single implementation that always preserves
// order is simpler to reason about and the entity counts here (at most a
// few hundred) make the O(n) shift irrelevant.
type vecMap[K comparable, V any] struct {
	capacity int
	order    []K
	values   map[K]V
}

func newVecMap[K comparable, V any](capacity int) *vecMap[K, V] {
	return &vecMap[K, V]{
		capacity: capacity,
		order:    make([]K, 0, capacity),
		values:   make(map[K]V, capacity),
	}
}

// Len returns the number of entries currently stored.
func (m *vecMap[K, V]) Len() int {
	return len(m.order)
}

// Full reports whether the map is at capacity.
func (m *vecMap[K, V]) Full() bool {
	return len(m.order) >= m.capacity
}

// Insert adds key/value if under capacity, returning false if full or if
// the key already exists.
func (m *vecMap[K, V]) Insert(key K, value V) bool {
	if _, exists := m.values[key]; exists {
		return false
	}
	if m.Full() {
		return false
	}
	m.order = append(m.order, key)
	m.values[key] = value
	return true
}

// Get returns the value for key and whether it was present.
func (m *vecMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Remove deletes key if present, preserving the insertion order of the
// remaining entries. Returns the removed value and whether it was present.
func (m *vecMap[K, V]) Remove(key K) (V, bool) {
	v, ok := m.values[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(m.values, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return v, true
}

// Oldest returns the key inserted least recently and reports whether the
// map is non-empty.
func (m *vecMap[K, V]) Oldest() (K, bool) {
	if len(m.order) == 0 {
		var zero K
		return zero, false
	}
	return m.order[0], true
}

// Keys returns the keys in insertion order. The returned slice is owned by
// the caller and safe to mutate.
func (m *vecMap[K, V]) Keys() []K {
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Each calls fn for every entry in insertion order. fn must not mutate the
// map; callers that need to remove while iterating should collect keys
// from Keys() first.
func (m *vecMap[K, V]) Each(fn func(K, V)) {
	for _, k := range m.order {
		fn(k, m.values[k])
	}
}
