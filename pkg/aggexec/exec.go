package aggexec

import (
	"github.com/katalvlaran/dagflow/pkg/aggregator"
	"github.com/katalvlaran/dagflow/pkg/collections"
	"github.com/katalvlaran/dagflow/pkg/history"
	"github.com/katalvlaran/dagflow/pkg/window"
)

// group holds one group's independent state: its column buffers, its own
// window policy instance, its own aggregator instances, and the
// accumulator buffer their outputs land in.
type group[T history.Tick, V history.Float] struct {
	cols        [][]V
	win         window.Window[T, V]
	aggs        []aggregator.Aggregator[V]
	accum       []V
	lastEmitted window.Spec[T]
	hasEmitted  bool
}

// Executor is the aggregation executor: it drives one window policy and a
// fixed set of column-bound aggregators per group, independent of the
// streaming engine. Groups share no mutable state and may be driven
// concurrently provided each goroutine confines itself to a disjoint
// group-id range.
type Executor[T history.Tick, V history.Float] struct {
	numColumns      int
	colBindings     *collections.FlatMultiVector[int]
	outputOffsets   []int
	totalOutputSize int
	groups          []group[T, V]
	ptrsPool        *collections.SlicePool[[]V] // reused column-pointer scratch for reduce
}

// New validates spec and constructs an Executor with NumGroups independent
// groups, each with its own window and aggregator instances.
func New[T history.Tick, V history.Float](spec Spec[T, V]) (*Executor[T, V], error) {
	if spec.NumColumns <= 0 {
		return nil, ErrNoColumns
	}
	if spec.NumGroups <= 0 {
		return nil, ErrNoGroups
	}

	colBindings := collections.NewFlatMultiVector[int](0)
	outputOffsets := make([]int, len(spec.Aggregators))
	totalOutputSize := 0
	for i, b := range spec.Aggregators {
		for _, c := range b.Columns {
			if c < 0 || c >= spec.NumColumns {
				return nil, ErrColumnIndexOutOfRange
			}
		}
		probe := b.New()
		if probe.NumInputs() != len(b.Columns) {
			return nil, ErrAggregatorArityMismatch
		}
		colBindings.PushBack(b.Columns)
		outputOffsets[i] = totalOutputSize
		totalOutputSize += probe.NumOutputs()
	}

	groups := make([]group[T, V], spec.NumGroups)
	for g := range groups {
		groups[g] = newGroup(spec, totalOutputSize)
	}

	maxArity := 0
	for _, b := range spec.Aggregators {
		if len(b.Columns) > maxArity {
			maxArity = len(b.Columns)
		}
	}

	return &Executor[T, V]{
		numColumns:      spec.NumColumns,
		colBindings:     colBindings,
		outputOffsets:   outputOffsets,
		totalOutputSize: totalOutputSize,
		groups:          groups,
		ptrsPool:        collections.NewSlicePool[[]V](maxArity),
	}, nil
}

func newGroup[T history.Tick, V history.Float](spec Spec[T, V], totalOutputSize int) group[T, V] {
	aggs := make([]aggregator.Aggregator[V], len(spec.Aggregators))
	for i, b := range spec.Aggregators {
		aggs[i] = b.New()
	}
	return group[T, V]{
		cols:  make([][]V, spec.NumColumns),
		win:   spec.NewWindow(),
		aggs:  aggs,
		accum: make([]V, totalOutputSize),
	}
}

// NumGroups reports the number of independent groups.
func (e *Executor[T, V]) NumGroups() int { return len(e.groups) }

// NumColumns reports the number of input columns per group.
func (e *Executor[T, V]) NumColumns() int { return e.numColumns }

// TotalOutputSize reports the combined width of every aggregator's output.
func (e *Executor[T, V]) TotalOutputSize() int { return e.totalOutputSize }

// OnData appends row to group's column buffers and advances its window
// policy. When a window boundary is crossed it runs every bound aggregator
// over the just-completed window, evicts the aged-out rows, and returns
// the window's timestamp with ok = true.
func (e *Executor[T, V]) OnData(tick T, row []V, g int) (timestamp T, ok bool) {
	grp := e.mustGroup(g)
	if len(row) != e.numColumns {
		panic("aggexec: row width does not match configured column count")
	}

	for c := 0; c < e.numColumns; c++ {
		grp.cols[c] = append(grp.cols[c], row[c])
	}
	if !grp.win.Process(tick, row) {
		return timestamp, false
	}
	spec := grp.win.Emit()
	e.reduce(grp, spec)
	return spec.Timestamp, true
}

// Flush force-emits group's current partial window, if any rows are
// buffered, running the same reduction and eviction OnData would.
func (e *Executor[T, V]) Flush(g int) (timestamp T, ok bool) {
	grp := e.mustGroup(g)
	if !grp.win.Flush() {
		return timestamp, false
	}
	spec := grp.win.Emit()
	e.reduce(grp, spec)
	return spec.Timestamp, true
}

// reduce runs every bound aggregator over the just-emitted window and
// evicts the rows it covers.
func (e *Executor[T, V]) reduce(grp *group[T, V], spec window.Spec[T]) {
	if spec.Size == 0 {
		grp.lastEmitted = spec
		grp.hasEmitted = true
		return
	}
	// The completed window is always the oldest spec.Size rows still
	// buffered: OnData appends the boundary-crossing row before Process
	// reports the crossing, so that row belongs to the next window and
	// trails the completed one rather than ending it.
	ptrsSlot := e.ptrsPool.Get()
	ptrs := *ptrsSlot
	for j := range grp.aggs {
		idx := e.colBindings.Row(j)
		ptrs = ptrs[:0]
		for _, c := range idx {
			ptrs = append(ptrs, grp.cols[c][0:spec.Size])
		}
		out := grp.accum[e.outputOffsets[j] : e.outputOffsets[j]+grp.aggs[j].NumOutputs()]
		grp.aggs[j].OnData(spec.Size, ptrs, out)
	}
	*ptrsSlot = ptrs
	e.ptrsPool.Put(ptrsSlot)

	grp.lastEmitted = spec
	grp.hasEmitted = true

	if spec.Evict > 0 {
		for c := range grp.cols {
			grp.cols[c] = append(grp.cols[c][:0], grp.cols[c][spec.Evict:]...)
		}
	}
}

// Value copies group's accumulator buffer into out (length must equal
// TotalOutputSize) and returns the group's last-emitted timestamp.
func (e *Executor[T, V]) Value(out []V, g int) T {
	grp := e.mustGroup(g)
	copy(out, grp.accum)
	return grp.lastEmitted.Timestamp
}

// Reset returns every group's window, aggregators, and column buffers to
// their freshly-constructed state.
func (e *Executor[T, V]) Reset() {
	for i := range e.groups {
		grp := &e.groups[i]
		grp.win.Reset()
		for _, a := range grp.aggs {
			a.Reset()
		}
		for c := range grp.cols {
			grp.cols[c] = grp.cols[c][:0]
		}
		var zero window.Spec[T]
		grp.lastEmitted = zero
		grp.hasEmitted = false
	}
}

func (e *Executor[T, V]) mustGroup(g int) *group[T, V] {
	if g < 0 || g >= len(e.groups) {
		panic("aggexec: group id out of range")
	}
	return &e.groups[g]
}
