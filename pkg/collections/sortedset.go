package collections

import "sort"

// binarySearchThreshold is the element count above which SortedSet switches
// from a linear scan to a binary search for rank/push/erase. Below it, the
// linear scan wins on cache locality for the small node counts most DAGs
// have; above it, the O(log n) search pays for itself.
const binarySearchThreshold = 100

// SortedSet keeps a slice of ordered values sorted in ascending order by
// inserting each new value at its rank; duplicates are kept (see Push). It
// is a small always-sorted set with cheap membership and ordered
// iteration, rather than a map that would have to be sorted on every read.
type SortedSet[T Ordered] struct {
	data []T
}

// Ordered is any type SortedSet can compare with <.
type Ordered interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64 | ~string
}

// NewSortedSet creates an empty sorted set with the given initial capacity.
func NewSortedSet[T Ordered](capacity int) *SortedSet[T] {
	return &SortedSet[T]{data: make([]T, 0, capacity)}
}

// Len returns the number of values in the set.
func (s *SortedSet[T]) Len() int { return len(s.data) }

// Values returns the underlying sorted slice. Callers must not mutate it.
func (s *SortedSet[T]) Values() []T { return s.data }

// Rank returns the index value occupies, or len(s.data) if it is absent.
func (s *SortedSet[T]) Rank(value T) int {
	if len(s.data) > binarySearchThreshold {
		i := sort.Search(len(s.data), func(i int) bool { return s.data[i] >= value })
		if i < len(s.data) && s.data[i] == value {
			return i
		}
		return len(s.data)
	}
	for i, v := range s.data {
		if v == value {
			return i
		}
	}
	return len(s.data)
}

// Contains reports whether value is present in the set.
func (s *SortedSet[T]) Contains(value T) bool {
	return s.Rank(value) < len(s.data)
}

// Push inserts value at its sorted position. Pushing a value already
// present inserts a second copy, matching the reference container: callers
// that need uniqueness check Contains first.
func (s *SortedSet[T]) Push(value T) {
	var at int
	if len(s.data) > binarySearchThreshold {
		at = sort.Search(len(s.data), func(i int) bool { return s.data[i] >= value })
	} else {
		at = 0
		for at < len(s.data) && s.data[at] < value {
			at++
		}
	}
	s.data = append(s.data, value)
	copy(s.data[at+1:], s.data[at:])
	s.data[at] = value
}

// Erase removes the first occurrence of value, if present.
func (s *SortedSet[T]) Erase(value T) {
	at := s.Rank(value)
	if at < len(s.data) {
		s.EraseRank(at)
	}
}

// EraseRank removes the element at the given index, if in range.
func (s *SortedSet[T]) EraseRank(rank int) {
	if rank < 0 || rank >= len(s.data) {
		return
	}
	s.data = append(s.data[:rank], s.data[rank+1:]...)
}

// Clear empties the set without releasing backing storage.
func (s *SortedSet[T]) Clear() { s.data = s.data[:0] }
