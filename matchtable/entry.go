package matchtable

// Dumper is the capability every associated value V must provide so that
// Dump can render it for diagnostics. It stands in for the template
// parameter V of match_units.cpp's V::dump(stream).
type Dumper interface {
	Dump() string
}

// entry is one slot's worth of storage, shared in shape across all three
// match-unit variants. Fields unused by a given variant are left zero
// (e.g. mask is unused by Exact and LPM).
type entry[V Dumper] struct {
	key          []byte
	mask         []byte
	prefixLength int
	priority     int
	value        V
	version      uint32
}
