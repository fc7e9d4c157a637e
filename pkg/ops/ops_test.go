package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollSum_CumulativeAccumulates(t *testing.T) {
	// Scenario C: cumulative sum over columns [0,1].
	r := NewRollSum[int, float64]([]int{0, 1})

	r.OnData(1, [][]float64{{10, 20}})
	r.OnData(2, [][]float64{{5, 15}})

	out := make([]float64, 1)
	r.Value(out)
	assert.Equal(t, float64(50), out[0])
}

func TestRollSum_HasNoInverseContract(t *testing.T) {
	r := NewRollSum[int, float64]([]int{0})
	var op interface{} = r
	_, ok := op.(interface{ Inverse(int, [][]float64) })
	assert.False(t, ok, "RollSum must not implement Inverse: it is cumulative-only")
}

func TestRollingSum_EvictsViaInverse(t *testing.T) {
	r := NewRollingSum[int, float64](0, 2)

	r.OnData(1, [][]float64{{10}})
	r.OnData(2, [][]float64{{20}})
	r.OnData(3, [][]float64{{30}})
	r.Inverse(1, [][]float64{{10}}) // row aged out of window (Watermark(3)=1, 3]

	out := make([]float64, 1)
	r.Value(out)
	assert.Equal(t, float64(50), out[0])
	assert.Equal(t, 1, r.Watermark(3))
}

func TestOHLC_ScenarioD_EmitsCompletedWindowOnCrossing(t *testing.T) {
	o := NewOHLC[int, float64](0, 10)

	o.OnData(5, [][]float64{{100}})
	o.OnData(7, [][]float64{{110}})
	o.OnData(8, [][]float64{{90}})
	o.OnData(10, [][]float64{{105}}) // crosses into window [10,20)

	out := make([]float64, 4)
	o.Value(out)
	assert.Equal(t, []float64{100, 110, 90, 90}, out)
}

func TestOHLC_AccumulatesWithinWindow(t *testing.T) {
	o := NewOHLC[int, float64](0, 10)

	o.OnData(5, [][]float64{{100}})
	out := make([]float64, 4)
	o.Value(out)
	assert.Equal(t, []float64{100, 100, 100, 100}, out)

	o.OnData(7, [][]float64{{110}})
	o.Value(out)
	assert.Equal(t, []float64{100, 110, 100, 110}, out)
}

func TestOHLC_Reset(t *testing.T) {
	o := NewOHLC[int, float64](0, 10)
	o.OnData(5, [][]float64{{100}})
	o.Reset()

	out := make([]float64, 4)
	o.OnData(3, [][]float64{{7}})
	o.Value(out)
	assert.Equal(t, []float64{7, 7, 7, 7}, out)
}
