package aggexec

import (
	"github.com/katalvlaran/dagflow/pkg/aggregator"
	"github.com/katalvlaran/dagflow/pkg/history"
	"github.com/katalvlaran/dagflow/pkg/window"
)

// WindowFactory produces a fresh window policy instance, cloned from a
// template configuration. The executor calls it once per group so that
// groups never share window state — a prerequisite for driving disjoint
// group-id ranges on separate goroutines.
type WindowFactory[T history.Tick, V history.Float] func() window.Window[T, V]

// AggregatorFactory produces a fresh aggregator instance. Like
// WindowFactory, the executor calls it once per group per binding so
// aggregator state is never shared across groups.
type AggregatorFactory[V history.Float] func() aggregator.Aggregator[V]

// Binding names the input columns one aggregator reduces. Columns must all
// be < Spec.NumColumns, and len(Columns) must equal the aggregator's
// NumInputs.
type Binding[V history.Float] struct {
	Columns []int
	New     AggregatorFactory[V]
}

// Spec is the construction-time configuration for an Executor.
type Spec[T history.Tick, V history.Float] struct {
	NumColumns  int
	NumGroups   int
	NewWindow   WindowFactory[T, V]
	Aggregators []Binding[V]
}
