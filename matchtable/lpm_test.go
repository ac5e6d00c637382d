package matchtable

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLPMLongestMatch(t *testing.T) {
	tbl := NewLPMTable[testValue](4, 4)

	_, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamLPM, Key: []byte{0xC0, 0xA8, 0x00, 0x00}, PrefixLength: 16},
	}, "v1", 0)
	require.NoError(t, err)

	_, err = tbl.AddEntry([]MatchKeyParam{
		{Type: ParamLPM, Key: []byte{0xC0, 0xA8, 0x01, 0x00}, PrefixLength: 24},
	}, "v2", 0)
	require.NoError(t, err)

	_, v, ok := tbl.LookupKey([]byte{0xC0, 0xA8, 0x01, 0x05})
	require.True(t, ok)
	assert.Equal(t, testValue("v2"), *v)

	_, v, ok = tbl.LookupKey([]byte{0xC0, 0xA9, 0x00, 0x00})
	require.True(t, ok)
	assert.Equal(t, testValue("v1"), *v)

	_, _, ok = tbl.LookupKey([]byte{0xC1, 0x00, 0x00, 0x00})
	assert.False(t, ok)
}

func TestLPMExactAndValidPrefixBitsAreFixed(t *testing.T) {
	tbl := NewLPMTable[testValue](4, 4)
	_, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamValid, Key: []byte{0x01}},
		{Type: ParamExact, Key: []byte{0xAA}},
		{Type: ParamLPM, Key: []byte{0x00, 0x00}, PrefixLength: 4},
	}, "v", 0)
	require.NoError(t, err)

	_, _, ok := tbl.LookupKey([]byte{0x01, 0xAB, 0x00, 0x00})
	assert.False(t, ok, "VALID/EXACT bits must be matched bit-for-bit")

	_, v, ok := tbl.LookupKey([]byte{0x01, 0xAA, 0x0F, 0xFF})
	require.True(t, ok)
	assert.Equal(t, testValue("v"), *v)
}

func TestLPMDeleteThenLookupMiss(t *testing.T) {
	tbl := NewLPMTable[testValue](4, 4)
	h, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamLPM, Key: []byte{0x0A, 0x00, 0x00, 0x00}, PrefixLength: 8},
	}, "v", 0)
	require.NoError(t, err)

	require.NoError(t, tbl.DeleteEntry(h))
	_, _, ok := tbl.LookupKey([]byte{0x0A, 0x01, 0x02, 0x03})
	assert.False(t, ok)
}

func TestLPMBadMatchKeyMissingLPMParam(t *testing.T) {
	tbl := NewLPMTable[testValue](4, 4)
	_, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamExact, Key: []byte{0x01, 0x02, 0x03, 0x04}},
	}, "v", 0)
	assert.ErrorIs(t, err, ErrBadMatchKey)
}

func TestLPMDump(t *testing.T) {
	tbl := NewLPMTable[testValue](4, 2)
	_, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamLPM, Key: []byte{0xC0, 0xA8}, PrefixLength: 16},
	}, "v1", 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.Dump(&buf, nil))
	assert.Contains(t, buf.String(), "c0a8/16 => v1")
}
