package aggregators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum_OnData(t *testing.T) {
	s := NewSum[float64]()
	out := make([]float64, 1)
	s.OnData(3, [][]float64{{1, 2, 3}}, out)
	assert.Equal(t, []float64{6}, out)
}

func TestOHLC_OnData(t *testing.T) {
	// Scenario A's first window: prices 1,2 over [0,3).
	o := NewOHLC[float64]()
	out := make([]float64, 4)
	o.OnData(2, [][]float64{{1, 2}}, out)
	assert.Equal(t, []float64{1, 2, 1, 2}, out)
}

func TestOHLC_SingleValueWindow(t *testing.T) {
	o := NewOHLC[float64]()
	out := make([]float64, 4)
	o.OnData(1, [][]float64{{42}}, out)
	assert.Equal(t, []float64{42, 42, 42, 42}, out)
}
