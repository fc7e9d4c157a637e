// Package history implements the bounded step retention buffer the
// streaming engine uses to keep recent (tick, output-vector) rows around
// for rolling-window operators.
package history

import "cmp"

// Float is the element type a history stores: floating-point data,
// specialised for float64 but open to any floating width.
type Float interface {
	~float32 | ~float64
}

// Tick is any totally ordered, strictly monotonic timestamp type the
// engine can compare and sort by.
type Tick = cmp.Ordered

// Step is one retained (tick, values) row. Values is a borrowed view into
// the ring's backing array: valid only until the next mutating call on the
// Ring that produced it (Push, PushEmpty, Pop, Clear, or a growth-triggering
// Reserve).
type Step[T Tick, V Float] struct {
	Tick   T
	Values []V
}
