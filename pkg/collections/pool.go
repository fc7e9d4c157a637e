package collections

import "sync"

// SlicePool is a generic sync.Pool-backed pool of slices. aggexec.Executor
// shares one across all its groups to reuse the transient column-pointer scratch it
// assembles on every window emission, instead of allocating a fresh slice
// on every call to reduce.
type SlicePool[T any] struct {
	pool       sync.Pool
	initialCap int
}

// NewSlicePool creates a new slice pool whose freshly-allocated slices
// start with the given capacity.
func NewSlicePool[T any](initialCap int) *SlicePool[T] {
	if initialCap <= 0 {
		initialCap = 16
	}
	return &SlicePool[T]{
		initialCap: initialCap,
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]T, 0, initialCap)
				return &s
			},
		},
	}
}

// Get borrows a zero-length slice from the pool.
func (p *SlicePool[T]) Get() *[]T {
	return p.pool.Get().(*[]T)
}

// Put returns a slice to the pool after truncating it to zero length.
func (p *SlicePool[T]) Put(s *[]T) {
	*s = (*s)[:0]
	p.pool.Put(s)
}

// Stack is a generic LIFO stack. DependsOn uses one to drive its iterative
// depth-first search without recursion, so traversal depth is bounded by
// heap, not goroutine stack, size.
type Stack[T any] struct {
	data []T
}

// NewStack creates a stack with the given initial capacity.
func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{data: make([]T, 0, capacity)}
}

// Push pushes a value onto the stack.
func (s *Stack[T]) Push(v T) {
	s.data = append(s.data, v)
}

// Pop pops a value from the stack. ok is false if the stack was empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	if len(s.data) == 0 {
		return v, false
	}
	v = s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v, true
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() (v T, ok bool) {
	if len(s.data) == 0 {
		return v, false
	}
	return s.data[len(s.data)-1], true
}

// IsEmpty reports whether the stack holds no values.
func (s *Stack[T]) IsEmpty() bool { return len(s.data) == 0 }

// Len returns the number of values on the stack.
func (s *Stack[T]) Len() int { return len(s.data) }

// Clear empties the stack without releasing backing storage.
func (s *Stack[T]) Clear() { s.data = s.data[:0] }
