// Package config loads the YAML configuration for cmd/matchtable-demo,
// following the DefaultConfig()+yaml.Unmarshal pattern used by
// controlplane/pkg/yncp/cfg.go.
package config

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"gopkg.in/yaml.v3"

	"github.com/yanet-platform/matchtable/internal/logging"
)

// Variant names one of the three match disciplines in the YAML config.
type Variant string

const (
	VariantExact   Variant = "exact"
	VariantLPM     Variant = "lpm"
	VariantTernary Variant = "ternary"
)

// TableConfig describes one match table, generalizing the KeySize/Capacity
// shape of a single route table's config across all three variants.
type TableConfig struct {
	// Name identifies this table in demo output.
	Name string `yaml:"name"`
	// Variant selects the matching discipline.
	Variant Variant `yaml:"variant"`
	// KeySize is the fixed key width in bytes.
	KeySize uint16 `yaml:"key_size"`
	// Capacity is the fixed number of slots. If zero, it is derived from
	// MemoryLimit via CapacityForMemory.
	Capacity int `yaml:"capacity"`
	// MemoryLimit is an alternate way to size the table: the maximum
	// amount of memory its entries may occupy.
	MemoryLimit datasize.ByteSize `yaml:"memory_limit"`
}

// Config is the top-level configuration for cmd/matchtable-demo.
type Config struct {
	Logging logging.Config `yaml:"logging"`
	Tables  []TableConfig   `yaml:"tables"`
}

// DefaultConfig returns a Config with one empty exact table and info-level
// logging.
func DefaultConfig() *Config {
	return &Config{
		Logging: *logging.DefaultConfig(),
		Tables: []TableConfig{
			{Name: "default", Variant: VariantExact, KeySize: 4, Capacity: 1024},
		},
	}
}

// LoadConfig reads and parses the YAML configuration at path.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to deserialize config: %w", err)
	}

	return cfg, nil
}

// perEntryOverhead estimates the bytes a single slot costs beyond its raw
// key (mask, bookkeeping), used by CapacityForMemory. It is deliberately
// conservative; this is a sizing hint for the demo CLI, not a hard
// guarantee the core library enforces.
const perEntryOverhead = 64

// CapacityForMemory derives a slot count from a memory budget and a key
// width, the same role datasize.ByteSize plays for
// modules/route/controlplane/cfg.go's MemoryRequirements field.
func CapacityForMemory(limit datasize.ByteSize, keySize uint16) int {
	perEntry := uint64(keySize) + perEntryOverhead
	if perEntry == 0 {
		return 0
	}
	capacity := limit.Bytes() / perEntry
	if capacity > uint64(^uint32(0)>>1) {
		capacity = uint64(^uint32(0) >> 1)
	}
	return int(capacity)
}
