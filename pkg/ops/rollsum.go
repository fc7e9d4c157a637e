package ops

import "github.com/katalvlaran/dagflow/pkg/history"

// RollSum sums a fixed set of column indices from its single
// predecessor's output, cumulatively across every tick it has seen. It
// never evicts and implements only the base engine.Operator contract:
// registering it as a rolling operator would be a mistake, since it has
// no Inverse to undo a contribution with (Scenario C).
type RollSum[T history.Tick, V history.Float] struct {
	sumIdx []int
	sum    V
}

// NewRollSum creates a cumulative sum over the given column indices of
// its predecessor's output. An empty sumIdx defaults to column 0.
func NewRollSum[T history.Tick, V history.Float](sumIdx []int) *RollSum[T, V] {
	idx := sumIdx
	if len(idx) == 0 {
		idx = []int{0}
	}
	return &RollSum[T, V]{sumIdx: idx}
}

func (r *RollSum[T, V]) NumInputs() int  { return len(r.sumIdx) }
func (r *RollSum[T, V]) NumOutputs() int { return 1 }
func (r *RollSum[T, V]) NumDepends() int { return 1 }

// OnData implements engine.Operator.
func (r *RollSum[T, V]) OnData(_ T, inputs [][]V) {
	data := inputs[0]
	for _, i := range r.sumIdx {
		r.sum += data[i]
	}
}

// Value implements engine.Operator.
func (r *RollSum[T, V]) Value(out []V) { out[0] = r.sum }

// Reset implements engine.Operator.
func (r *RollSum[T, V]) Reset() {
	var zero V
	r.sum = zero
}

// RollingSum sums one predecessor column over a trailing window of
// windowSize ticks. Unlike RollSum it implements engine.RollingOperator:
// the engine calls Inverse to undo a row's contribution once it ages past
// the window, in ascending historical-tick order, and consults Watermark
// to know which rows have expired.
type RollingSum[T Integer, V history.Float] struct {
	colIdx     int
	windowSize T
	sum        V
}

// NewRollingSum creates a rolling sum over predecessor column colIdx with
// a trailing window of windowSize ticks. windowSize must be positive.
func NewRollingSum[T Integer, V history.Float](colIdx int, windowSize T) *RollingSum[T, V] {
	return &RollingSum[T, V]{colIdx: colIdx, windowSize: windowSize}
}

func (r *RollingSum[T, V]) NumInputs() int  { return 1 }
func (r *RollingSum[T, V]) NumOutputs() int { return 1 }
func (r *RollingSum[T, V]) NumDepends() int { return 1 }

// OnData implements engine.Operator.
func (r *RollingSum[T, V]) OnData(_ T, inputs [][]V) {
	r.sum += inputs[0][r.colIdx]
}

// Inverse implements engine.InverseOperator.
func (r *RollingSum[T, V]) Inverse(_ T, removed [][]V) {
	r.sum -= removed[0][r.colIdx]
}

// Watermark implements engine.RollingOperator: rows with tick <= tick -
// windowSize have aged out.
func (r *RollingSum[T, V]) Watermark(tick T) T {
	return tick - r.windowSize
}

// Value implements engine.Operator.
func (r *RollingSum[T, V]) Value(out []V) { out[0] = r.sum }

// Reset implements engine.Operator.
func (r *RollingSum[T, V]) Reset() {
	var zero V
	r.sum = zero
}
