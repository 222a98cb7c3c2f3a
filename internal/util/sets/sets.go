// Package sets provides a minimal generic hash set.
package sets

// Set is a hash set for comparable keys.
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with vals.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has reports whether v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// AddNew inserts v and reports whether it was absent before.
func (s Set[T]) AddNew(v T) bool {
	if s.Has(v) {
		return false
	}
	s[v] = struct{}{}
	return true
}
