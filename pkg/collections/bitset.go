// Package collections provides the small ordered-set and packed-array
// containers the DAG and aggregation executor build on: a bitset for
// O(1)-per-test membership during graph traversal, a sorted vector, and a
// flat (ragged) multivector for per-row dependency/column spans.
package collections

import "math/bits"

// Bitset is a memory-efficient boolean set using bit manipulation: 1 bit
// per element instead of 1 byte ([]bool) or 8+ bytes (map[int]bool). The
// DAG uses it to mark "has a dependent" while computing leaves, and to
// track visited nodes during a depends-on traversal.
type Bitset struct {
	bits []uint64
	size int
}

// NewBitset creates a bitset sized for at least size elements.
func NewBitset(size int) *Bitset {
	if size <= 0 {
		size = 64
	}
	return &Bitset{bits: make([]uint64, (size+63)/64), size: size}
}

// Set sets the bit at index i, growing the set if i is out of range.
func (b *Bitset) Set(i int) {
	if i < 0 {
		return
	}
	wordIdx := i / 64
	if wordIdx >= len(b.bits) {
		b.grow(i + 1)
	}
	b.bits[wordIdx] |= 1 << uint(i%64)
	if i >= b.size {
		b.size = i + 1
	}
}

// Clear clears the bit at index i.
func (b *Bitset) Clear(i int) {
	if i < 0 || i/64 >= len(b.bits) {
		return
	}
	b.bits[i/64] &^= 1 << uint(i%64)
}

// Test reports whether the bit at index i is set.
func (b *Bitset) Test(i int) bool {
	if i < 0 || i/64 >= len(b.bits) {
		return false
	}
	return b.bits[i/64]&(1<<uint(i%64)) != 0
}

// ClearAll zeroes every bit without shrinking the backing storage.
func (b *Bitset) ClearAll() {
	for i := range b.bits {
		b.bits[i] = 0
	}
}

// Count returns the population count (number of set bits).
func (b *Bitset) Count() int {
	count := 0
	for _, word := range b.bits {
		count += bits.OnesCount64(word)
	}
	return count
}

// Size returns the logical size of the bitset.
func (b *Bitset) Size() int { return b.size }

func (b *Bitset) grow(newSize int) {
	numWords := (newSize + 63) / 64
	if numWords <= len(b.bits) {
		return
	}
	newCap := len(b.bits) * 2
	if newCap < numWords {
		newCap = numWords
	}
	newBits := make([]uint64, newCap)
	copy(newBits, b.bits)
	b.bits = newBits
}

// VersionedBitset "clears" in O(1) by bumping a generation counter instead
// of zeroing memory, which matters for depends_on: a DAG with many nodes
// may be queried repeatedly, and each query needs a fresh visited set.
type VersionedBitset struct {
	versions []uint32
	current  uint32
}

// NewVersionedBitset creates a versioned bitset sized for at least size
// elements.
func NewVersionedBitset(size int) *VersionedBitset {
	if size <= 0 {
		size = 64
	}
	return &VersionedBitset{versions: make([]uint32, size), current: 1}
}

// Set marks index i visited in the current generation.
func (v *VersionedBitset) Set(i int) {
	if i < 0 {
		return
	}
	if i >= len(v.versions) {
		v.grow(i + 1)
	}
	v.versions[i] = v.current
}

// Test reports whether index i was marked in the current generation.
func (v *VersionedBitset) Test(i int) bool {
	if i < 0 || i >= len(v.versions) {
		return false
	}
	return v.versions[i] == v.current
}

// Reset starts a fresh generation in O(1), amortised; only wraps to an
// O(n) clear on uint32 overflow, i.e. once every 2^32-1 resets.
func (v *VersionedBitset) Reset() {
	v.current++
	if v.current == 0 {
		for i := range v.versions {
			v.versions[i] = 0
		}
		v.current = 1
	}
}

func (v *VersionedBitset) grow(newSize int) {
	if newSize <= len(v.versions) {
		return
	}
	newCap := len(v.versions) * 2
	if newCap < newSize {
		newCap = newSize
	}
	newVersions := make([]uint32, newCap)
	copy(newVersions, v.versions)
	v.versions = newVersions
}
