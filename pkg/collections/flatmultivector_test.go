package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatMultiVector_PushBackAndRow(t *testing.T) {
	f := NewFlatMultiVector[int](0)
	f.PushBack([]int{1, 2, 3})
	f.PushBack([]int{4, 5})
	f.PushBack([]int{6})

	require.Equal(t, 3, f.Size())
	assert.Equal(t, 6, f.TotalSize())
	assert.Equal(t, []int{1, 2, 3}, f.Row(0))
	assert.Equal(t, []int{4, 5}, f.Row(1))
	assert.Equal(t, []int{6}, f.Row(2))
	assert.Equal(t, 2, f.RowLen(1))
}

func TestFlatMultiVector_EmptyRow(t *testing.T) {
	f := NewFlatMultiVector[int](0)
	f.PushBack(nil)
	f.PushBack([]int{1})
	require.Equal(t, 2, f.Size())
	assert.Len(t, f.Row(0), 0)
	assert.Equal(t, []int{1}, f.Row(1))
}

func TestFlatMultiVector_Clear(t *testing.T) {
	f := NewFlatMultiVector[int](0)
	f.PushBack([]int{1, 2})
	f.Clear()
	assert.Equal(t, 0, f.Size())
	assert.Equal(t, 0, f.TotalSize())
	f.PushBack([]int{3})
	assert.Equal(t, []int{3}, f.Row(0))
}

func TestFlatMultiVector_RowPanicsOutOfRange(t *testing.T) {
	f := NewFlatMultiVector[int](0)
	f.PushBack([]int{1})
	assert.Panics(t, func() { f.Row(1) })
	assert.Panics(t, func() { f.Row(-1) })
}
