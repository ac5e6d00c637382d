package matchtable

import (
	"iter"

	"github.com/yanet-platform/matchtable/internal/bitset"
)

// handleAllocator reserves and retires dense small-integer slot indices. It
// keeps a free-list for O(1) acquire and a liveness bitset both for O(1)
// isLive queries and for a stable ascending iteration order, which the
// ternary scan relies on for its tie-break contract.
type handleAllocator struct {
	capacity int
	live     bitset.Set
	freed    []int // LIFO stack of released slots, reused before growing nextFresh.
	nextFresh int
	numLive   int
}

func newHandleAllocator(capacity int) *handleAllocator {
	return &handleAllocator{
		capacity: capacity,
		live:     bitset.New(capacity),
	}
}

// acquire reserves a free slot id, or returns ErrTableFull if every slot in
// [0, capacity) is reserved.
func (a *handleAllocator) acquire() (int, error) {
	var slot int
	if n := len(a.freed); n > 0 {
		slot = a.freed[n-1]
		a.freed = a.freed[:n-1]
	} else if a.nextFresh < a.capacity {
		slot = a.nextFresh
		a.nextFresh++
	} else {
		return 0, ErrTableFull
	}

	if a.live.Test(slot) {
		// Should be unreachable: a slot just taken from the free stack or
		// from the untouched tail cannot already be marked live.
		return 0, ErrInternal
	}
	a.live.Insert(slot)
	a.numLive++
	return slot, nil
}

// release frees a reserved slot. Returns ErrInvalidHandle if the slot was
// not reserved.
func (a *handleAllocator) release(slot int) error {
	if slot < 0 || slot >= a.capacity || !a.live.Test(slot) {
		return ErrInvalidHandle
	}
	a.live.Clear(slot)
	a.freed = append(a.freed, slot)
	a.numLive--
	return nil
}

// isLive reports whether slot is currently reserved.
func (a *handleAllocator) isLive(slot int) bool {
	if slot < 0 || slot >= a.capacity {
		return false
	}
	return a.live.Test(slot)
}

// liveSlots iterates all currently live slot ids in ascending order. The
// order is stable across calls between mutations, which TernaryScan depends
// on for deterministic tie-breaking.
func (a *handleAllocator) liveSlots() iter.Seq[int] {
	return a.live.Iter()
}

func (a *handleAllocator) len() int {
	return a.numLive
}
