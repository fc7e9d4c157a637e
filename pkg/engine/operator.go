package engine

import "github.com/katalvlaran/dagflow/pkg/history"

// Operator is the contract every DAG node other than the root input
// implements: a fixed arity, an on_data/value evaluation pair, and a reset
// back to the freshly-constructed state. Implementations live outside this
// package (see pkg/ops) and plug into a Builder by id.
type Operator[T history.Tick, V history.Float] interface {
	// NumInputs reports the width of the flattened input this operator
	// expects per predecessor slot; constant over the operator's lifetime.
	NumInputs() int
	// NumOutputs reports how many values Value writes; constant over the
	// operator's lifetime.
	NumOutputs() int
	// NumDepends reports how many predecessors this operator requires;
	// constant over the operator's lifetime and validated by Builder.AddOp
	// against the predecessor id list's length.
	NumDepends() int

	// OnData consumes one timestamped input tuple. inputs[i] is predecessor
	// i's output slice from the current step's buffer; it is valid only for
	// the duration of this call.
	OnData(tick T, inputs [][]V)
	// Value writes the operator's current output into out, whose length
	// equals NumOutputs.
	Value(out []V)
	// Reset returns the operator to its freshly-constructed state.
	Reset()
}

// InverseOperator is the subset of rolling (non-cumulative) operators that
// can undo a previously-applied row when it ages out of their window. The
// engine discovers this capability with a type assertion rather than
// requiring every operator to implement a no-op Inverse.
type InverseOperator[T history.Tick, V history.Float] interface {
	Operator[T, V]
	// Inverse undoes the contribution of one historical row. removed has
	// the same shape as the inputs OnData received for that row's tick.
	Inverse(tick T, removed [][]V)
}

// RollingOperator is an InverseOperator that also exposes its own
// watermark policy: the tick at or before which history rows are
// considered expired for this operator, given the latest observed tick.
// Only operators with a trailing window (as opposed to a cumulative
// accumulator) implement this.
type RollingOperator[T history.Tick, V history.Float] interface {
	InverseOperator[T, V]
	// Watermark returns the new watermark for this operator given the tick
	// just processed. History rows with tick in (oldWatermark, newWatermark]
	// are passed to Inverse, oldest first, before the watermark advances.
	Watermark(tick T) T
}
