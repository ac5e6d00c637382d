package matchtable

import (
	"fmt"
	"io"
)

// ExactTable is a hash-keyed exact-match lookup table.
type ExactTable[V Dumper] struct {
	base[V]
	index map[string]int // canonical key -> slot
}

// NewExactTable constructs an exact-match table with a fixed capacity and
// key width.
func NewExactTable[V Dumper](capacity, nbytesKey int) *ExactTable[V] {
	return &ExactTable[V]{
		base:  newBase[V](capacity, nbytesKey),
		index: make(map[string]int, capacity),
	}
}

// AddEntry canonicalizes params into a key, then inserts value at a new
// slot. Priority is accepted for interface symmetry with LPMTable and
// TernaryTable but ignored: exact match has no notion of priority.
//
// A key that collides with a live entry is rejected with
// ErrDuplicateEntry rather than overwriting the map entry and leaking the
// previous slot.
func (t *ExactTable[V]) AddEntry(params []MatchKeyParam, value V, priority int) (Handle, error) {
	built, err := buildKey(VariantExact, t.nbytesKey, params)
	if err != nil {
		return 0, err
	}

	ks := string(built.key)
	if _, exists := t.index[ks]; exists {
		return 0, fmt.Errorf("%w: key already present", ErrDuplicateEntry)
	}

	slot, h, err := t.acquireSlot(built.key, nil, 0, 0, value)
	if err != nil {
		return 0, err
	}
	t.index[ks] = slot
	return h, nil
}

// DeleteEntry removes the entry identified by h.
func (t *ExactTable[V]) DeleteEntry(h Handle) error {
	slot, err := t.checkHandle(h)
	if err != nil {
		return err
	}
	key := t.entries[slot].key
	t.beginDelete(slot)
	delete(t.index, string(key))
	return t.releaseSlot(slot)
}

// LookupKey performs the single map lookup. key must be exactly nbytesKey
// bytes; the caller (Lookup, or a test) is responsible for building it via
// the same canonicalization rules AddEntry uses.
func (t *ExactTable[V]) LookupKey(key []byte) (Handle, *V, bool) {
	slot, ok := t.index[string(key)]
	if !ok {
		return 0, nil, false
	}
	e := &t.entries[slot]
	return NewHandle(e.version, slot), &e.value, true
}

// Lookup clears scratch, asks buildKey to fill it from the packet's
// header-value view, then dispatches to LookupKey. scratch must be exactly
// nbytesKey bytes and may be reused across calls by the caller to avoid
// allocating on the hot path.
func (t *ExactTable[V]) Lookup(scratch []byte, buildKey func(dst []byte)) (Handle, *V, bool) {
	clear(scratch)
	buildKey(scratch)
	return t.LookupKey(scratch)
}

// Dump renders every live entry as "slot: key => value", matching the
// dump format in match_units.cpp. If filter is non-nil, only entries whose
// hex-rendered key matches it are emitted.
func (t *ExactTable[V]) Dump(w io.Writer, filter DumpFilter) error {
	for slot := range t.alloc.liveSlots() {
		e := &t.entries[slot]
		if filter != nil && !filter.Match(e.key) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d: %x => %s\n", slot, e.key, e.value.Dump()); err != nil {
			return err
		}
	}
	return nil
}
