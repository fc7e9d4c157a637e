package windows

import (
	"github.com/katalvlaran/dagflow/pkg/history"
	"github.com/katalvlaran/dagflow/pkg/window"
)

// Tumbling emits a window every windowSize ticks, aligned to integer
// multiples of windowSize since epoch. Windows are left-closed,
// right-open: a row at tick == k*windowSize belongs to window
// [k*windowSize, (k+1)*windowSize), not the previous one. On sparse
// input, skipped intermediate windows are collapsed and never emitted.
type Tumbling[T Integer, V history.Float] struct {
	windowSize T
	nextTick   T
	started    bool

	size             int
	pendingTimestamp T
	pendingSize      int
}

// NewTumbling creates a tumbling window policy of the given size (in tick
// units).
func NewTumbling[T Integer, V history.Float](windowSize T) *Tumbling[T, V] {
	return &Tumbling[T, V]{windowSize: windowSize}
}

func (t *Tumbling[T, V]) alignedNextBoundary(tick T) T {
	remainder := tick % t.windowSize
	if remainder == 0 {
		return tick + t.windowSize
	}
	return tick - remainder + t.windowSize
}

// Process implements window.Window.
func (t *Tumbling[T, V]) Process(tick T, _ []V) bool {
	if !t.started {
		t.nextTick = t.alignedNextBoundary(tick)
		t.started = true
	}
	if tick < t.nextTick {
		t.size++
		return false
	}

	t.pendingTimestamp = t.nextTick
	t.pendingSize = t.size
	for tick >= t.nextTick {
		t.nextTick += t.windowSize
	}
	t.size = 1 // the row that crossed the boundary opens the new window
	return true
}

// Flush implements window.Window.
func (t *Tumbling[T, V]) Flush() bool {
	if t.size == 0 {
		return false
	}
	t.pendingTimestamp = t.nextTick
	t.pendingSize = t.size
	t.nextTick += t.windowSize
	t.size = 0
	return true
}

// Emit implements window.Window.
func (t *Tumbling[T, V]) Emit() window.Spec[T] {
	return window.Spec[T]{Timestamp: t.pendingTimestamp, Size: t.pendingSize, Evict: t.pendingSize}
}

// Reset implements window.Window.
func (t *Tumbling[T, V]) Reset() {
	var zero T
	t.nextTick = zero
	t.started = false
	t.size = 0
	t.pendingSize = 0
	t.pendingTimestamp = zero
}
