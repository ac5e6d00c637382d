package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityForMemory(t *testing.T) {
	got := CapacityForMemory(1*datasize.MB, 4)
	assert.Greater(t, got, 0)
	assert.Less(t, got, 1<<20)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matchtable.yaml")
	contents := `
logging:
  level: debug
tables:
  - name: acl
    variant: ternary
    key_size: 8
    capacity: 256
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "acl", cfg.Tables[0].Name)
	assert.Equal(t, VariantTernary, cfg.Tables[0].Variant)
	assert.Equal(t, 256, cfg.Tables[0].Capacity)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/matchtable.yaml")
	assert.Error(t, err)
}
