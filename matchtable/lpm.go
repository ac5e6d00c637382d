package matchtable

import (
	"fmt"
	"io"
)

// lpmNode is one node of the bitwise trie. children[0]/children[1] are the
// next bit's subtrees; hasSlot marks that a (key, prefix_length) entry
// terminates exactly here.
type lpmNode struct {
	children [2]*lpmNode
	hasSlot  bool
	slot     int
}

// lpmTrie is keyed by (key bytes, prefix length in bits). Insertion and
// deletion walk prefixLength bits from the root; lookup walks the full key
// width, remembering the most recently seen binding so that it can return
// the longest match.
type lpmTrie struct {
	root lpmNode
}

func bitAt(key []byte, i int) int {
	return int(key[i/8]>>(7-uint(i%8))) & 1
}

// insert places slot at the node reached by walking the high-order
// prefixLength bits of key, creating intermediate nodes as needed.
func (t *lpmTrie) insert(key []byte, prefixLength int, slot int) {
	n := &t.root
	for i := 0; i < prefixLength; i++ {
		b := bitAt(key, i)
		if n.children[b] == nil {
			n.children[b] = &lpmNode{}
		}
		n = n.children[b]
	}
	n.hasSlot = true
	n.slot = slot
}

// delete removes the binding at (key, prefixLength). It is asserted to
// succeed on a consistent trie; a caller passing a (key, prefixLength) pair
// that was never inserted is a programming error.
func (t *lpmTrie) delete(key []byte, prefixLength int) bool {
	n := &t.root
	for i := 0; i < prefixLength; i++ {
		b := bitAt(key, i)
		if n.children[b] == nil {
			return false
		}
		n = n.children[b]
	}
	if !n.hasSlot {
		return false
	}
	n.hasSlot = false
	return true
}

// lookup walks fullKey bit by bit from the root, remembering the most
// recent node that carries a binding. When the walk falls off the trie (or
// exhausts the key), the most recent binding wins; no binding at all means
// no match.
func (t *lpmTrie) lookup(fullKey []byte) (int, bool) {
	n := &t.root
	bestSlot := 0
	found := false
	if n.hasSlot {
		bestSlot, found = n.slot, true
	}

	totalBits := 8 * len(fullKey)
	for i := 0; i < totalBits; i++ {
		b := bitAt(fullKey, i)
		n = n.children[b]
		if n == nil {
			break
		}
		if n.hasSlot {
			bestSlot, found = n.slot, true
		}
	}
	return bestSlot, found
}

// LPMTable is a bitwise trie for longest-prefix-match lookup.
type LPMTable[V Dumper] struct {
	base[V]
	trie lpmTrie
}

// NewLPMTable constructs an LPM table with a fixed capacity and key width.
func NewLPMTable[V Dumper](capacity, nbytesKey int) *LPMTable[V] {
	return &LPMTable[V]{
		base: newBase[V](capacity, nbytesKey),
	}
}

// AddEntry canonicalizes params (requiring exactly one LPM parameter) and
// inserts value at a new slot. Priority is ignored: LPM resolves ties by
// prefix length, not by an explicit priority.
func (t *LPMTable[V]) AddEntry(params []MatchKeyParam, value V, priority int) (Handle, error) {
	built, err := buildKey(VariantLPM, t.nbytesKey, params)
	if err != nil {
		return 0, err
	}

	slot, h, err := t.acquireSlot(built.key, nil, built.prefixLength, 0, value)
	if err != nil {
		return 0, err
	}
	t.trie.insert(built.key, built.prefixLength, slot)
	return h, nil
}

// DeleteEntry removes the entry identified by h.
func (t *LPMTable[V]) DeleteEntry(h Handle) error {
	slot, err := t.checkHandle(h)
	if err != nil {
		return err
	}
	e := &t.entries[slot]
	t.beginDelete(slot)
	if !t.trie.delete(e.key, e.prefixLength) {
		return fmt.Errorf("%w: trie had no binding for live slot %d", ErrInternal, slot)
	}
	return t.releaseSlot(slot)
}

// LookupKey walks the trie for the longest prefix matching key.
func (t *LPMTable[V]) LookupKey(key []byte) (Handle, *V, bool) {
	slot, ok := t.trie.lookup(key)
	if !ok {
		return 0, nil, false
	}
	e := &t.entries[slot]
	return NewHandle(e.version, slot), &e.value, true
}

// Lookup clears scratch, fills it via buildKey, then dispatches to
// LookupKey.
func (t *LPMTable[V]) Lookup(scratch []byte, buildKey func(dst []byte)) (Handle, *V, bool) {
	clear(scratch)
	buildKey(scratch)
	return t.LookupKey(scratch)
}

// Dump renders every live entry as "slot: key/prefix_length => value".
func (t *LPMTable[V]) Dump(w io.Writer, filter DumpFilter) error {
	for slot := range t.alloc.liveSlots() {
		e := &t.entries[slot]
		if filter != nil && !filter.Match(e.key) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d: %x/%d => %s\n", slot, e.key, e.prefixLength, e.value.Dump()); err != nil {
			return err
		}
	}
	return nil
}
