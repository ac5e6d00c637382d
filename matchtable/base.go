package matchtable

import "fmt"

// base holds the state common to every match discipline: entry storage by
// slot, the public handle codec, and size/capacity bookkeeping shared by
// ExactTable, LPMTable and TernaryTable. Each variant embeds a base and adds
// its own index structure (map, trie, or none) plus variant-specific
// AddEntry/DeleteEntry logic.
type base[V Dumper] struct {
	alloc     *handleAllocator
	entries   []entry[V]
	nbytesKey int
}

func newBase[V Dumper](capacity, nbytesKey int) base[V] {
	if capacity <= 0 {
		panic("matchtable: capacity must be positive")
	}
	if nbytesKey <= 0 {
		panic("matchtable: nbytes_key must be positive")
	}
	return base[V]{
		alloc:     newHandleAllocator(capacity),
		entries:   make([]entry[V], capacity),
		nbytesKey: nbytesKey,
	}
}

// checkHandle decodes the slot, verifies the version matches, and verifies
// the slot is live. A slot outside the table, or a slot that is not live at
// the handle's version, yields ErrInvalidHandle; a handle whose version the
// slot has moved past (its entry was deleted, whether or not the slot has
// been reused since) yields ErrExpiredHandle. It is applied uniformly by
// every mutating or reading operation on every variant; match_units.cpp's
// Ternary match unit checks a different handle arity in ModifyEntry than in
// DeleteEntry/GetValue, an inconsistency this shared implementation cannot
// reproduce.
func (b *base[V]) checkHandle(h Handle) (int, error) {
	slot := h.Slot()
	if slot < 0 || slot >= len(b.entries) {
		return 0, ErrInvalidHandle
	}
	if b.entries[slot].version != h.Version() {
		return 0, ErrExpiredHandle
	}
	if !b.alloc.isLive(slot) {
		return 0, ErrInvalidHandle
	}
	return slot, nil
}

// ValidHandle reports whether h's slot is live and its version matches.
func (b *base[V]) ValidHandle(h Handle) bool {
	_, err := b.checkHandle(h)
	return err == nil
}

// GetValue returns a pointer to h's associated value, valid until the next
// mutation of this table.
func (b *base[V]) GetValue(h Handle) (*V, error) {
	slot, err := b.checkHandle(h)
	if err != nil {
		return nil, err
	}
	return &b.entries[slot].value, nil
}

// ModifyEntry replaces h's associated value in place. Key, mask and
// priority are left untouched; version does not change.
func (b *base[V]) ModifyEntry(h Handle, value V) error {
	slot, err := b.checkHandle(h)
	if err != nil {
		return err
	}
	b.entries[slot].value = value
	return nil
}

// NumEntries returns the number of live entries.
func (b *base[V]) NumEntries() int {
	return b.alloc.len()
}

// Capacity returns the fixed capacity passed at construction.
func (b *base[V]) Capacity() int {
	return len(b.entries)
}

// acquireSlot reserves a slot and populates its entry, returning the public
// handle for it. The entry's version is whatever it was left at by the
// previous occupant (0 if this slot has never been used), so that a
// delete-then-reinsert on the same slot always yields a strictly greater
// version.
func (b *base[V]) acquireSlot(key, mask []byte, prefixLength, priority int, value V) (int, Handle, error) {
	slot, err := b.alloc.acquire()
	if err != nil {
		return 0, 0, err
	}

	e := &b.entries[slot]
	e.key = key
	e.mask = mask
	e.prefixLength = prefixLength
	e.priority = priority
	e.value = value

	return slot, NewHandle(e.version, slot), nil
}

// beginDelete bumps the slot's version. The order matters: version bumps
// first, then the caller clears any index entry, then releaseSlot frees the
// slot for reuse.
func (b *base[V]) beginDelete(slot int) {
	b.entries[slot].version++
}

func (b *base[V]) releaseSlot(slot int) error {
	if err := b.alloc.release(slot); err != nil {
		return fmt.Errorf("%w: allocator refused to release slot %d it reported live", ErrInternal, slot)
	}
	return nil
}
