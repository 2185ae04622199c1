package types

// DefaultMap is a map that resolves missing keys to a fixed fallback value
// instead of the value type's zero value. The registry uses it to answer
// label lookups for counterparty addresses that were never registered.
//
// Get never mutates the map, so a DefaultMap that is populated up front is
// safe for concurrent lookups.
type DefaultMap[K comparable, V any] struct {
	data     map[K]V
	fallback V
}

// NewDefaultMap creates an empty DefaultMap whose Get returns fallback for
// keys that were never set.
func NewDefaultMap[K comparable, V any](fallback V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:     make(map[K]V),
		fallback: fallback,
	}
}

// Set associates val with key, replacing any previous value.
func (d DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// Get returns the value stored under key, or the fallback when the key is
// absent. The fallback is not inserted.
func (d DefaultMap[K, V]) Get(key K) V {
	if val, ok := d.data[key]; ok {
		return val
	}
	return d.fallback
}
