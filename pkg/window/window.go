// Package window defines the trailing-window contract that feeds the
// aggregation executor: a policy that inspects (or merely counts) incoming
// rows and periodically announces a window of buffered rows ready for
// reduction.
package window

import "github.com/katalvlaran/dagflow/pkg/history"

// Spec describes one emitted window: the oldest size rows still buffered
// belong to it, and evict of the oldest buffered rows should be dropped
// once the caller is done reading them.
type Spec[T history.Tick] struct {
	Timestamp T
	Size      int
	Evict     int
}

// Window is the contract a window policy implements. The aggregation
// executor owns the actual row buffers; a Window only ever sees the
// current row (for policies that inspect data, like a CUSUM filter) and
// reports when a window boundary has been crossed.
type Window[T history.Tick, V history.Float] interface {
	// Process is called once per incoming row. It returns true iff a
	// window is ready; Emit is only valid to call after a true return.
	Process(tick T, row []V) bool
	// Flush force-emits the current partial window, if any rows are
	// buffered. It returns true iff a window was produced.
	Flush() bool
	// Emit returns the most recently completed window's spec. Valid only
	// immediately after Process or Flush returned true.
	Emit() Spec[T]
	// Reset returns the window to its freshly-constructed state.
	Reset()
}
