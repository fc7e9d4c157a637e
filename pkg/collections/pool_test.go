package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlicePool_GetPutRoundTrip(t *testing.T) {
	pool := NewSlicePool[int](256)

	s := pool.Get()
	require.NotNil(t, s)
	assert.GreaterOrEqual(t, cap(*s), 256)

	*s = append(*s, 1, 2, 3)
	assert.Len(t, *s, 3)

	pool.Put(s)

	s2 := pool.Get()
	assert.Len(t, *s2, 0)
}

func TestStack_PushPeekPop(t *testing.T) {
	s := NewStack[int](10)
	assert.True(t, s.IsEmpty())

	s.Push(1)
	s.Push(2)
	s.Push(3)
	require.Equal(t, 3, s.Len())

	v, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, s.Len(), "Peek must not modify the stack")

	for _, want := range []int{3, 2, 1} {
		v, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	_, ok = s.Pop()
	assert.False(t, ok, "Pop from an empty stack reports false")
	assert.True(t, s.IsEmpty())
}

func TestStack_Clear(t *testing.T) {
	s := NewStack[int](4)
	s.Push(1)
	s.Push(2)
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
}

func BenchmarkStack_PushPop(b *testing.B) {
	s := NewStack[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Push(i)
		s.Pop()
	}
}
