package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitset_SetClearTest(t *testing.T) {
	b := NewBitset(8)
	assert.False(t, b.Test(3))
	b.Set(3)
	assert.True(t, b.Test(3))
	b.Clear(3)
	assert.False(t, b.Test(3))
}

func TestBitset_GrowsBeyondInitialSize(t *testing.T) {
	b := NewBitset(4)
	b.Set(200)
	assert.True(t, b.Test(200))
	assert.Equal(t, 1, b.Count())
}

func TestVersionedBitset_ResetIsGenerationBump(t *testing.T) {
	v := NewVersionedBitset(4)
	v.Set(1)
	v.Set(2)
	assert.True(t, v.Test(1))
	v.Reset()
	assert.False(t, v.Test(1))
	assert.False(t, v.Test(2))
	v.Set(1)
	assert.True(t, v.Test(1))
}
