package collections

// FlatMultiVector is a packed ragged 2D array: a sequence of variable-length
// rows stored contiguously in one backing slice, addressed through a
// parallel (offset, length) index. The DAG stores each node's predecessor
// ids this way instead of []​[]int so that predecessor lookups for every
// node in the graph touch one allocation, not one per node; the
// aggregation executor uses the same layout for its per-aggregator bound
// column lists.
type FlatMultiVector[T any] struct {
	data    []T
	offsets []int // offsets[i] is the start of row i; len(offsets) == number of rows + 1
}

// NewFlatMultiVector creates an empty multivector with the given initial
// total-element capacity.
func NewFlatMultiVector[T any](capacity int) *FlatMultiVector[T] {
	return &FlatMultiVector[T]{
		data:    make([]T, 0, capacity),
		offsets: []int{0},
	}
}

// PushBack appends row as a new row, copying its elements into the shared
// backing slice.
func (f *FlatMultiVector[T]) PushBack(row []T) {
	f.data = append(f.data, row...)
	f.offsets = append(f.offsets, len(f.data))
}

// Size returns the number of rows.
func (f *FlatMultiVector[T]) Size() int { return len(f.offsets) - 1 }

// TotalSize returns the total number of elements across all rows.
func (f *FlatMultiVector[T]) TotalSize() int { return len(f.data) }

// Row returns a view into the i-th row. The view aliases the shared
// backing slice and is valid until the next PushBack or Clear.
func (f *FlatMultiVector[T]) Row(i int) []T {
	if i < 0 || i >= f.Size() {
		panic("collections: flat multivector row index out of range")
	}
	return f.data[f.offsets[i]:f.offsets[i+1]]
}

// RowLen returns the length of the i-th row without materialising a slice.
func (f *FlatMultiVector[T]) RowLen(i int) int {
	if i < 0 || i >= f.Size() {
		panic("collections: flat multivector row index out of range")
	}
	return f.offsets[i+1] - f.offsets[i]
}

// Clear empties the multivector without releasing backing storage.
func (f *FlatMultiVector[T]) Clear() {
	f.data = f.data[:0]
	f.offsets = f.offsets[:1]
}
