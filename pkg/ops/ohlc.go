package ops

import "github.com/katalvlaran/dagflow/pkg/history"

// OHLC reduces one column of its predecessor's output into an
// open/high/low/close quadruple over successive tumbling windows of
// windowSize ticks. Unlike RollingSum it needs no Inverse: a window never
// shrinks, it flips wholesale once a tick crosses into the next bucket,
// and the flip itself carries the completed window's values out on the
// crossing tick before the new window starts accumulating.
type OHLC[T Integer, V history.Float] struct {
	priceIdx   int
	windowSize T

	started     bool
	windowStart T

	curOpen, curHigh, curLow, curClose V
	out                                [4]V
}

// NewOHLC creates an OHLC operator over the given predecessor column,
// bucketed into windows of windowSize ticks.
func NewOHLC[T Integer, V history.Float](priceIdx int, windowSize T) *OHLC[T, V] {
	return &OHLC[T, V]{priceIdx: priceIdx, windowSize: windowSize}
}

func (o *OHLC[T, V]) floorAlign(tick T) T {
	rem := tick % o.windowSize
	if rem < 0 {
		rem += o.windowSize
	}
	return tick - rem
}

func (o *OHLC[T, V]) NumInputs() int  { return 1 }
func (o *OHLC[T, V]) NumOutputs() int { return 4 }
func (o *OHLC[T, V]) NumDepends() int { return 1 }

// OnData implements engine.Operator.
func (o *OHLC[T, V]) OnData(tick T, inputs [][]V) {
	price := inputs[0][o.priceIdx]
	boundary := o.floorAlign(tick)

	switch {
	case !o.started:
		o.curOpen, o.curHigh, o.curLow, o.curClose = price, price, price, price
		o.windowStart = boundary
		o.started = true
		o.snapshot()
	case boundary != o.windowStart:
		// Crossing into a new window: report the window that just
		// finished, then start the new one with this tick's price.
		o.snapshot()
		o.curOpen, o.curHigh, o.curLow, o.curClose = price, price, price, price
		o.windowStart = boundary
	default:
		if price > o.curHigh {
			o.curHigh = price
		}
		if price < o.curLow {
			o.curLow = price
		}
		o.curClose = price
		o.snapshot()
	}
}

func (o *OHLC[T, V]) snapshot() {
	o.out[0], o.out[1], o.out[2], o.out[3] = o.curOpen, o.curHigh, o.curLow, o.curClose
}

// Value implements engine.Operator.
func (o *OHLC[T, V]) Value(out []V) {
	out[0], out[1], out[2], out[3] = o.out[0], o.out[1], o.out[2], o.out[3]
}

// Reset implements engine.Operator.
func (o *OHLC[T, V]) Reset() {
	var zero V
	var zeroT T
	o.started = false
	o.windowStart = zeroT
	o.curOpen, o.curHigh, o.curLow, o.curClose = zero, zero, zero, zero
	o.out = [4]V{}
}
