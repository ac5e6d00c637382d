package matchtable

import "io"

// Table is the common surface of ExactTable, LPMTable and TernaryTable: the
// dispatch/lookup pipeline plus the control-plane operations, abstracted
// over the concrete index structure each variant uses internally (map,
// trie, or linear scan).
//
// Lookup performs three steps: it clears scratch, invokes the
// caller-supplied build_key-style callback to fill it from a packet's
// header-value view, and dispatches to LookupKey. scratch must be exactly
// the table's key width and may be reused across calls — it is
// scratch-local to the caller, not owned by the table.
//
// LookupKey takes an already-canonicalized key and dispatches directly,
// bypassing key construction; it is the seam property tests exercise
// against the key-building rules' output.
type Table[V Dumper] interface {
	AddEntry(params []MatchKeyParam, value V, priority int) (Handle, error)
	DeleteEntry(h Handle) error
	ModifyEntry(h Handle, value V) error
	GetValue(h Handle) (*V, error)
	ValidHandle(h Handle) bool
	NumEntries() int
	Capacity() int
	LookupKey(key []byte) (Handle, *V, bool)
	Lookup(scratch []byte, buildKey func(dst []byte)) (Handle, *V, bool)
	Dump(w io.Writer, filter DumpFilter) error
}

var (
	_ Table[dumperString] = (*ExactTable[dumperString])(nil)
	_ Table[dumperString] = (*LPMTable[dumperString])(nil)
	_ Table[dumperString] = (*TernaryTable[dumperString])(nil)
)

// dumperString is a trivial Dumper used only to statically check that the
// three variants satisfy Table above; it is not exported.
type dumperString string

func (s dumperString) Dump() string { return string(s) }
