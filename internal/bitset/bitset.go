// Package bitset implements a dynamically-sized bitset used by the match
// table core to track which slots in its entry vector are currently live.
//
// It follows the same word-at-a-time traversal trick as
// github.com/yanet-platform/yanet2's common/go/bitset.TinyBitset, but is
// sized at construction time instead of carrying a fixed 1024-bit array, so
// that a match table's capacity is not bounded by the bitset's backing
// storage.
package bitset

import (
	"fmt"
	"iter"
	"math/bits"
)

// Set is a bitset over the range [0, n) for some n fixed at construction.
type Set struct {
	words []uint64
	n     int
}

// New returns a new Set able to hold indices in [0, n).
func New(n int) Set {
	if n < 0 {
		panic("bitset: negative size")
	}
	return Set{words: make([]uint64, (n+63)/64), n: n}
}

// Len returns the size passed to New.
func (s *Set) Len() int {
	return s.n
}

func (s *Set) checkRange(idx int) {
	if idx < 0 || idx >= s.n {
		panic(fmt.Sprintf("bitset: index %d out of range [0, %d)", idx, s.n))
	}
}

// Insert sets the bit at idx.
func (s *Set) Insert(idx int) {
	s.checkRange(idx)
	s.words[idx/64] |= 1 << (uint(idx) % 64)
}

// Clear unsets the bit at idx.
func (s *Set) Clear(idx int) {
	s.checkRange(idx)
	s.words[idx/64] &^= 1 << (uint(idx) % 64)
}

// Test reports whether the bit at idx is set.
func (s *Set) Test(idx int) bool {
	s.checkRange(idx)
	return s.words[idx/64]&(1<<(uint(idx)%64)) != 0
}

// Count returns the number of bits set.
func (s *Set) Count() int {
	count := 0
	for _, w := range s.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Traverse calls fn for every set bit, from the least significant index to
// the most significant, stopping early if fn returns false.
func (s *Set) Traverse(fn func(int) bool) {
	for wordIdx, word := range s.words {
		for word != 0 {
			r := bits.TrailingZeros64(word)
			// Clears only the lowest set bit: word & -word isolates it and
			// the XOR removes it.
			t := word & -word
			word ^= t

			if !fn(64*wordIdx + r) {
				return
			}
		}
	}
}

// Iter returns an iterator over the set bits in ascending order.
func (s *Set) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		s.Traverse(yield)
	}
}
