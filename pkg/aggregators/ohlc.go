package aggregators

import "github.com/katalvlaran/dagflow/pkg/history"

// OHLC reduces one bound price column to its open, high, low, and close
// over the window, in that output order.
type OHLC[V history.Float] struct{}

// NewOHLC creates a single-column OHLC aggregator.
func NewOHLC[V history.Float]() *OHLC[V] { return &OHLC[V]{} }

func (o *OHLC[V]) NumInputs() int  { return 1 }
func (o *OHLC[V]) NumOutputs() int { return 4 }

// OnData implements aggregator.Aggregator.
func (o *OHLC[V]) OnData(n int, cols [][]V, out []V) {
	col := cols[0]
	open, high, low, close := col[0], col[0], col[0], col[0]
	for i := 1; i < n; i++ {
		if col[i] > high {
			high = col[i]
		}
		if col[i] < low {
			low = col[i]
		}
		close = col[i]
	}
	out[0], out[1], out[2], out[3] = open, high, low, close
}

func (o *OHLC[V]) Reset() {}
