package matchtable

import (
	"fmt"

	"github.com/gobwas/glob"
)

// DumpFilter narrows a table Dump to entries whose hex-rendered key
// matches. It is optional: passing nil to Dump emits every live entry.
type DumpFilter interface {
	Match(key []byte) bool
}

// GlobFilter is a DumpFilter backed by a shell-style glob pattern matched
// against the entry key rendered as lowercase hex, e.g. "c0a8*" matches
// every key starting with 0xC0 0xA8.
type GlobFilter struct {
	g glob.Glob
}

// NewGlobFilter compiles pattern into a GlobFilter.
func NewGlobFilter(pattern string) (*GlobFilter, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("matchtable: invalid dump filter pattern %q: %w", pattern, err)
	}
	return &GlobFilter{g: g}, nil
}

// Match implements DumpFilter.
func (f *GlobFilter) Match(key []byte) bool {
	return f.g.Match(fmt.Sprintf("%x", key))
}
