// Package aggregators provides reference aggregators for pkg/aggexec: a
// plain column sum and an OHLC (open/high/low/close) reducer.
package aggregators

import "github.com/katalvlaran/dagflow/pkg/history"

// Sum reduces one bound column to its sum over the window.
type Sum[V history.Float] struct{}

// NewSum creates a single-column sum aggregator.
func NewSum[V history.Float]() *Sum[V] { return &Sum[V]{} }

func (s *Sum[V]) NumInputs() int  { return 1 }
func (s *Sum[V]) NumOutputs() int { return 1 }

// OnData implements aggregator.Aggregator.
func (s *Sum[V]) OnData(n int, cols [][]V, out []V) {
	var total V
	for i := 0; i < n; i++ {
		total += cols[0][i]
	}
	out[0] = total
}

func (s *Sum[V]) Reset() {}
