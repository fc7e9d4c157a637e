package windows

import (
	"math"

	"github.com/katalvlaran/dagflow/pkg/history"
	"github.com/katalvlaran/dagflow/pkg/window"
)

// CUSUM is a change-point-detection window policy: it inspects one column
// of the incoming row and accumulates the cumulative sum of its log
// differences. When either the positive or the negative accumulator
// crosses the threshold, a window is emitted covering every row seen
// since the last emission, and both accumulators reset — a practical
// adaptation of López de Prado's CUSUM filter for non-overlapping event
// windows rather than single breach points.
type CUSUM[T history.Tick, V history.Float] struct {
	threshold    V
	inspectIndex int

	laggedLog          V
	cusumPos, cusumNeg V
	count              int
	initialised        bool
	lastTick           T
}

// NewCUSUM creates a CUSUM filter with the given log threshold, inspecting
// column inspectIndex of each incoming row.
func NewCUSUM[T history.Tick, V history.Float](threshold V, inspectIndex int) *CUSUM[T, V] {
	return &CUSUM[T, V]{threshold: threshold, inspectIndex: inspectIndex}
}

// Process implements window.Window.
func (c *CUSUM[T, V]) Process(tick T, row []V) bool {
	c.lastTick = tick
	c.count++

	currLog := V(math.Log(float64(row[c.inspectIndex])))
	if !c.initialised {
		c.laggedLog = currLog
		c.initialised = true
		return false
	}

	gain := currLog - c.laggedLog
	c.laggedLog = currLog
	if c.cusumPos+gain > 0 {
		c.cusumPos += gain
	} else {
		c.cusumPos = 0
	}
	if c.cusumNeg+gain < 0 {
		c.cusumNeg += gain
	} else {
		c.cusumNeg = 0
	}

	return c.cusumPos > c.threshold || c.cusumNeg < -c.threshold
}

// Flush implements window.Window.
func (c *CUSUM[T, V]) Flush() bool { return c.count > 0 }

// Emit implements window.Window.
func (c *CUSUM[T, V]) Emit() window.Spec[T] {
	n := c.count
	c.count = 0
	c.cusumPos = 0
	c.cusumNeg = 0
	return window.Spec[T]{Timestamp: c.lastTick, Size: n, Evict: n}
}

// Reset implements window.Window.
func (c *CUSUM[T, V]) Reset() {
	c.count = 0
	c.cusumPos = 0
	c.cusumNeg = 0
	c.initialised = false
	var zero T
	c.lastTick = zero
}
