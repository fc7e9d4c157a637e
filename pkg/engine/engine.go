package engine

import (
	"github.com/katalvlaran/dagflow/pkg/dag"
	"github.com/katalvlaran/dagflow/pkg/history"
)

// Engine drives a fixed, topologically-sorted set of operators one row at
// a time. It owns the bounded history rolling operators need to undo their
// own contributions as rows age out, and the per-node output offset table
// that keeps every node's writes to the per-step buffer disjoint.
type Engine[T history.Tick, V history.Float] struct {
	graph        *dag.Graph
	ops          []Operator[T, V]
	outputOffset []int
	outputSize   int

	hist       *history.Ring[T, V]
	watermarks []T

	scratch [][]V // reused input-pointer scratch, cleared and refilled per node
}

// NumNodes reports the number of nodes in the engine, including the root
// input.
func (e *Engine[T, V]) NumNodes() int { return len(e.ops) }

// TotalOutputSize reports the per-step output width.
func (e *Engine[T, V]) TotalOutputSize() int { return e.outputSize }

// NumSteps reports how many steps are currently retained in history.
func (e *Engine[T, V]) NumSteps() int { return e.hist.Size() }

// Step evaluates one row at tick. It fails with InputArityMismatch if
// row's length does not equal the root input's arity, or NonMonotonicTick
// if tick is not strictly greater than the previous step's tick. On
// failure the engine's externally observable state is unchanged.
func (e *Engine[T, V]) Step(tick T, row []V) error {
	if len(e.ops) == 0 {
		return &StepError{Kind: InputArityMismatch}
	}
	if len(row) != e.ops[0].NumOutputs() {
		return &StepError{Kind: InputArityMismatch}
	}
	if e.hist.Size() > 0 && !(e.hist.Back().Tick < tick) {
		return &StepError{Kind: NonMonotonicTick}
	}

	step := e.hist.PushEmpty(tick)
	out := step.Values

	for id := 0; id < len(e.ops); id++ {
		op := e.ops[id]
		preds := e.graph.Predecessors(id)

		if id == 0 {
			op.OnData(tick, [][]V{row})
		} else {
			e.scratch = e.assembleInputs(e.scratch, out, preds)
			op.OnData(tick, e.scratch)
		}
		if rolling, ok := op.(RollingOperator[T, V]); ok {
			e.evictExpired(id, rolling, tick, preds)
		}
		op.Value(out[e.outputOffset[id] : e.outputOffset[id]+op.NumOutputs()])
	}

	e.trimHistory()
	return nil
}

// assembleInputs rebuilds dst as the list of predecessor output slices
// within data, reusing dst's backing array across calls.
func (e *Engine[T, V]) assembleInputs(dst [][]V, data []V, preds []int) [][]V {
	dst = dst[:0]
	for _, p := range preds {
		start := e.outputOffset[p]
		end := start + e.ops[p].NumOutputs()
		dst = append(dst, data[start:end])
	}
	return dst
}

// evictExpired advances a rolling operator's watermark, calling Inverse
// for every historical row that has just aged out, oldest first.
func (e *Engine[T, V]) evictExpired(id int, op RollingOperator[T, V], tick T, preds []int) {
	oldWM := e.watermarks[id]
	newWM := op.Watermark(tick)

	// Exclude the step just pushed; walk oldest to newest among the rest.
	for i := 0; i < e.hist.Size()-1; i++ {
		row := e.hist.At(i)
		if row.Tick > oldWM && row.Tick <= newWM {
			removed := e.assembleInputs(nil, row.Values, preds)
			op.Inverse(row.Tick, removed)
		}
	}
	e.watermarks[id] = newWM
}

// trimHistory pops history rows that have aged out for every rolling
// operator, i.e. whose tick does not exceed the minimum watermark across
// all rolling operators.
func (e *Engine[T, V]) trimHistory() {
	var min T
	has := false
	for id := 1; id < len(e.ops); id++ {
		if _, ok := e.ops[id].(RollingOperator[T, V]); !ok {
			continue
		}
		wm := e.watermarks[id]
		if !has || wm < min {
			min = wm
			has = true
		}
	}
	if !has {
		return
	}
	for e.hist.Size() > 0 && !(e.hist.Front().Tick > min) {
		e.hist.Pop()
	}
}

// LatestOutput returns a copy of the full current-step output vector.
func (e *Engine[T, V]) LatestOutput() []V {
	if e.hist.Empty() {
		return nil
	}
	back := e.hist.Back()
	out := make([]V, len(back.Values))
	copy(out, back.Values)
	return out
}

// NodeOutput returns a copy of the current step's slice for one node.
func (e *Engine[T, V]) NodeOutput(id int) []V {
	if e.hist.Empty() || id < 0 || id >= len(e.ops) {
		return nil
	}
	back := e.hist.Back()
	start := e.outputOffset[id]
	end := start + e.ops[id].NumOutputs()
	out := make([]V, end-start)
	copy(out, back.Values[start:end])
	return out
}

// ClearHistory discards all retained history rows and resets every
// rolling operator's watermark, without touching operator state itself.
func (e *Engine[T, V]) ClearHistory() {
	e.hist.Clear()
	var zero T
	for i := range e.watermarks {
		e.watermarks[i] = zero
	}
}

// StepTicks returns the ticks of every retained history row, oldest first.
func (e *Engine[T, V]) StepTicks() []T { return e.hist.Ticks() }

// ValidateState checks the engine's internal invariants: node/offset/
// watermark table sizes agree, and every node's predecessor count matches
// its declared NumDepends.
func (e *Engine[T, V]) ValidateState() bool {
	if len(e.ops) != e.graph.Size() || len(e.ops) != len(e.watermarks) || len(e.ops) != len(e.outputOffset) {
		return false
	}
	for i := 0; i < len(e.ops); i++ {
		if e.graph.Degree(i) != e.ops[i].NumDepends() {
			return false
		}
	}
	return true
}
