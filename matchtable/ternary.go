package matchtable

import (
	"fmt"
	"io"
)

// TernaryTable is a priority-ordered, masked-equality linear scan over
// live slots.
type TernaryTable[V Dumper] struct {
	base[V]
}

// NewTernaryTable constructs a ternary table with a fixed capacity and key
// width.
func NewTernaryTable[V Dumper](capacity, nbytesKey int) *TernaryTable[V] {
	return &TernaryTable[V]{
		base: newBase[V](capacity, nbytesKey),
	}
}

// AddEntry canonicalizes params into a key and mask and inserts value at a
// new slot with the given priority; higher priority wins at lookup time.
func (t *TernaryTable[V]) AddEntry(params []MatchKeyParam, value V, priority int) (Handle, error) {
	built, err := buildKey(VariantTernary, t.nbytesKey, params)
	if err != nil {
		return 0, err
	}
	_, h, err := t.acquireSlot(built.key, built.mask, 0, priority, value)
	if err != nil {
		return 0, err
	}
	return h, nil
}

// DeleteEntry removes the entry identified by h. Ternary carries no
// separate index structure, so there is nothing to clear beyond the slot
// itself.
func (t *TernaryTable[V]) DeleteEntry(h Handle) error {
	slot, err := t.checkHandle(h)
	if err != nil {
		return err
	}
	t.beginDelete(slot)
	return t.releaseSlot(slot)
}

// LookupKey performs a linear scan: an entry matches iff every byte of
// key, masked by the entry's mask, equals the entry's key. Among matches,
// the strictly highest priority wins; on a priority tie, the first entry
// encountered while iterating live slots in ascending order wins. This
// ascending order is a hard contract of handleAllocator.liveSlots, so the
// tie-break is fully deterministic given a fixed sequence of adds and
// deletes.
func (t *TernaryTable[V]) LookupKey(key []byte) (Handle, *V, bool) {
	var (
		bestSlot     int
		bestPriority int
		found        bool
	)

	for slot := range t.alloc.liveSlots() {
		e := &t.entries[slot]
		if found && e.priority <= bestPriority {
			continue
		}
		if !matchMasked(key, e.key, e.mask) {
			continue
		}
		bestSlot, bestPriority, found = slot, e.priority, true
	}

	if !found {
		return 0, nil, false
	}
	e := &t.entries[bestSlot]
	return NewHandle(e.version, bestSlot), &e.value, true
}

func matchMasked(key, entryKey, mask []byte) bool {
	for i := range entryKey {
		if entryKey[i] != key[i]&mask[i] {
			return false
		}
	}
	return true
}

// Lookup clears scratch, fills it via buildKey, then dispatches to
// LookupKey.
func (t *TernaryTable[V]) Lookup(scratch []byte, buildKey func(dst []byte)) (Handle, *V, bool) {
	clear(scratch)
	buildKey(scratch)
	return t.LookupKey(scratch)
}

// Dump renders every live entry as "slot: key &&& mask => value".
func (t *TernaryTable[V]) Dump(w io.Writer, filter DumpFilter) error {
	for slot := range t.alloc.liveSlots() {
		e := &t.entries[slot]
		if filter != nil && !filter.Match(e.key) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d: %x &&& %x => %s\n", slot, e.key, e.mask, e.value.Dump()); err != nil {
			return err
		}
	}
	return nil
}
