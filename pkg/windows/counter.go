package windows

import (
	"github.com/katalvlaran/dagflow/pkg/history"
	"github.com/katalvlaran/dagflow/pkg/window"
)

// Counter emits a window every N rows, regardless of tick spacing; size
// and evict both equal N.
type Counter[T history.Tick, V history.Float] struct {
	windowSize int
	count      int
	lastTick   T
}

// NewCounter creates a counter window policy that emits every windowSize
// rows.
func NewCounter[T history.Tick, V history.Float](windowSize int) *Counter[T, V] {
	return &Counter[T, V]{windowSize: windowSize}
}

// Process implements window.Window.
func (c *Counter[T, V]) Process(tick T, _ []V) bool {
	c.lastTick = tick
	c.count++
	return c.count == c.windowSize
}

// Flush implements window.Window.
func (c *Counter[T, V]) Flush() bool { return c.count > 0 }

// Emit implements window.Window.
func (c *Counter[T, V]) Emit() window.Spec[T] {
	n := c.count
	c.count = 0
	return window.Spec[T]{Timestamp: c.lastTick, Size: n, Evict: n}
}

// Reset implements window.Window.
func (c *Counter[T, V]) Reset() {
	c.count = 0
	var zero T
	c.lastTick = zero
}
