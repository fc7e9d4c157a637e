package aggexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dagflow/pkg/aggregator"
	"github.com/katalvlaran/dagflow/pkg/aggregators"
	"github.com/katalvlaran/dagflow/pkg/window"
	"github.com/katalvlaran/dagflow/pkg/windows"
)

func TestExecutor_ScenarioA_OHLCTumbling(t *testing.T) {
	spec := Spec[int, float64]{
		NumColumns: 1,
		NumGroups:  1,
		NewWindow:  func() window.Window[int, float64] { return windows.NewTumbling[int, float64](3) },
		Aggregators: []Binding[float64]{
			{Columns: []int{0}, New: func() aggregator.Aggregator[float64] { return aggregators.NewOHLC[float64]() }},
		},
	}
	e, err := New(spec)
	require.NoError(t, err)

	prices := map[int]float64{1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 7: 7, 8: 8}
	var timestamps []int
	for tick := 1; tick <= 8; tick++ {
		ts, ok := e.OnData(tick, []float64{prices[tick]}, 0)
		if ok {
			timestamps = append(timestamps, ts)
		}
	}
	require.Len(t, timestamps, 2)
	assert.Equal(t, 3, timestamps[0])
	assert.Equal(t, 6, timestamps[1])

	out := make([]float64, 4)
	e.Value(out, 0)
	assert.Equal(t, []float64{3, 5, 3, 5}, out) // window [3,6): open=3 high=5 low=3 close=5

	ts, ok := e.Flush(0)
	require.True(t, ok)
	assert.Equal(t, 9, ts)
	e.Value(out, 0)
	assert.Equal(t, []float64{6, 8, 6, 8}, out)
}

func TestExecutor_ScenarioB_CounterSum(t *testing.T) {
	spec := Spec[int, float64]{
		NumColumns: 1,
		NumGroups:  1,
		NewWindow:  func() window.Window[int, float64] { return windows.NewCounter[int, float64](3) },
		Aggregators: []Binding[float64]{
			{Columns: []int{0}, New: func() aggregator.Aggregator[float64] { return aggregators.NewSum[float64]() }},
		},
	}
	e, err := New(spec)
	require.NoError(t, err)

	var sums []float64
	for tick := 1; tick <= 7; tick++ {
		if _, ok := e.OnData(tick, []float64{float64(tick)}, 0); ok {
			out := make([]float64, 1)
			e.Value(out, 0)
			sums = append(sums, out[0])
		}
	}
	require.Len(t, sums, 2)
	assert.Equal(t, float64(6), sums[0])
	assert.Equal(t, float64(15), sums[1])

	_, ok := e.Flush(0)
	require.True(t, ok)
	out := make([]float64, 1)
	e.Value(out, 0)
	assert.Equal(t, float64(7), out[0])
}

func TestExecutor_ColumnBuffersStayEqualLength(t *testing.T) {
	// Invariant 5: all C column buffers have identical length at every
	// observable moment.
	spec := Spec[int, float64]{
		NumColumns: 2,
		NumGroups:  1,
		NewWindow:  func() window.Window[int, float64] { return windows.NewCounter[int, float64](2) },
		Aggregators: []Binding[float64]{
			{Columns: []int{0}, New: func() aggregator.Aggregator[float64] { return aggregators.NewSum[float64]() }},
			{Columns: []int{1}, New: func() aggregator.Aggregator[float64] { return aggregators.NewSum[float64]() }},
		},
	}
	e, err := New(spec)
	require.NoError(t, err)

	for tick := 1; tick <= 5; tick++ {
		e.OnData(tick, []float64{float64(tick), float64(tick * 10)}, 0)
	}
	assert.Len(t, e.groups[0].cols[0], len(e.groups[0].cols[1]))
}

func TestExecutor_InvalidColumnIndexRejected(t *testing.T) {
	spec := Spec[int, float64]{
		NumColumns: 1,
		NumGroups:  1,
		NewWindow:  func() window.Window[int, float64] { return windows.NewCounter[int, float64](2) },
		Aggregators: []Binding[float64]{
			{Columns: []int{5}, New: func() aggregator.Aggregator[float64] { return aggregators.NewSum[float64]() }},
		},
	}
	_, err := New(spec)
	assert.ErrorIs(t, err, ErrColumnIndexOutOfRange)
}

func TestExecutor_ArityMismatchRejected(t *testing.T) {
	spec := Spec[int, float64]{
		NumColumns: 2,
		NumGroups:  1,
		NewWindow:  func() window.Window[int, float64] { return windows.NewCounter[int, float64](2) },
		Aggregators: []Binding[float64]{
			{Columns: []int{0, 1}, New: func() aggregator.Aggregator[float64] { return aggregators.NewSum[float64]() }},
		},
	}
	_, err := New(spec)
	assert.ErrorIs(t, err, ErrAggregatorArityMismatch)
}

func TestExecutor_GroupsAreIndependent(t *testing.T) {
	spec := Spec[int, float64]{
		NumColumns: 1,
		NumGroups:  2,
		NewWindow:  func() window.Window[int, float64] { return windows.NewCounter[int, float64](2) },
		Aggregators: []Binding[float64]{
			{Columns: []int{0}, New: func() aggregator.Aggregator[float64] { return aggregators.NewSum[float64]() }},
		},
	}
	e, err := New(spec)
	require.NoError(t, err)

	e.OnData(1, []float64{100}, 0)
	e.OnData(1, []float64{1}, 1)
	e.OnData(2, []float64{2}, 1)

	out := make([]float64, 1)
	e.Value(out, 1)
	assert.Equal(t, float64(3), out[0], "group 1 must not see group 0's rows")
}
