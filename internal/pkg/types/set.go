package types

// Set is a hash set of comparable values, used for membership indexes such
// as the registered wallet addresses and the processed signature cache.
//
// The zero value is not usable; construct instances with NewSet. Add
// mutates the set in place, so a Set shared across goroutines must be fully
// populated before it is read concurrently.
type Set[T comparable] map[T]struct{}

// NewSet builds a Set holding the given values. Duplicates collapse into a
// single entry.
func NewSet[T comparable](values ...T) Set[T] {
	set := make(Set[T], len(values))
	set.Add(values...)
	return set
}

// Add inserts the given values into the set. Values already present are
// left untouched.
func (s Set[T]) Add(values ...T) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Contains reports whether v is a member of the set.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}
