// Package dedupe tracks keys that were already counted.
//
// Team events award one medal per athlete in the results table; counting a
// team's medals therefore requires collapsing rows that share
// (year, event, team). Set is the first-seen filter used for that.
package dedupe

// Deduper reports whether a key has already been recorded.
type Deduper[K comparable] interface {
	// SeenAndRecord returns true if key was seen before, otherwise records
	// it and returns false.
	SeenAndRecord(key K) bool
	// Unrecord forgets key.
	Unrecord(key K)
	Size() int
}

// Set is an unsynchronised in-memory Deduper. It is built per aggregation
// and discarded afterwards.
type Set[K comparable] struct {
	seen map[K]struct{}
}

// NewSet returns an empty Set sized by the options.
func NewSet[K comparable](opts ...Option) *Set[K] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	capacity := o.capacity
	if capacity < 0 {
		capacity = 0
	}
	return &Set[K]{seen: make(map[K]struct{}, capacity)}
}

// SeenAndRecord implements Deduper.
func (s *Set[K]) SeenAndRecord(key K) bool {
	if _, ok := s.seen[key]; ok {
		return true
	}
	s.seen[key] = struct{}{}
	return false
}

// Unrecord implements Deduper.
func (s *Set[K]) Unrecord(key K) {
	delete(s.seen, key)
}

// Size implements Deduper.
func (s *Set[K]) Size() int {
	return len(s.seen)
}

// Filter keeps the first element for every key, preserving order.
func Filter[T any, K comparable](items []T, key func(T) K, opts ...Option) []T {
	s := NewSet[K](append([]Option{WithCapacity(len(items))}, opts...)...)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if s.SeenAndRecord(key(it)) {
			continue
		}
		out = append(out, it)
	}
	return out
}
