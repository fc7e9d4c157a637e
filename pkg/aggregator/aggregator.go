// Package aggregator defines the reducer contract the aggregation executor
// invokes once per emitted window: a stateless-between-windows function
// over a fixed set of input columns.
package aggregator

import "github.com/katalvlaran/dagflow/pkg/history"

// Aggregator reduces a finite column view within one window to a fixed-
// width summary. A single instance is shared across every window a group
// emits; all state needed for one reduction lives in the n rows passed to
// OnData, not in the aggregator itself.
type Aggregator[V history.Float] interface {
	// NumInputs reports how many columns this aggregator is bound to;
	// constant over the aggregator's lifetime.
	NumInputs() int
	// NumOutputs reports how many values OnData writes; constant over the
	// aggregator's lifetime.
	NumOutputs() int
	// OnData reduces n rows of bound columns. cols[i] is the i-th bound
	// column's window view (length n); out has length NumOutputs and must
	// be written completely.
	OnData(n int, cols [][]V, out []V)
	// Reset returns the aggregator to its freshly-constructed state.
	Reset()
}
