package matchtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTernaryPriority(t *testing.T) {
	tbl := NewTernaryTable[testValue](4, 2)

	_, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamTernary, Key: []byte{0x12, 0x00}, Mask: []byte{0xff, 0x00}},
	}, "vA", 10)
	require.NoError(t, err)

	hB, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamTernary, Key: []byte{0x12, 0x34}, Mask: []byte{0xff, 0xff}},
	}, "vB", 5)
	require.NoError(t, err)

	_, v, ok := tbl.LookupKey([]byte{0x12, 0x34})
	require.True(t, ok)
	assert.Equal(t, testValue("vA"), *v)

	require.NoError(t, tbl.ModifyEntry(hB, "vB")) // idempotent, no-op rewrite
	require.NoError(t, tbl.DeleteEntry(hB))
	hB, err = tbl.AddEntry([]MatchKeyParam{
		{Type: ParamTernary, Key: []byte{0x12, 0x34}, Mask: []byte{0xff, 0xff}},
	}, "vB", 20)
	require.NoError(t, err)

	_, v, ok = tbl.LookupKey([]byte{0x12, 0x34})
	require.True(t, ok)
	assert.Equal(t, testValue("vB"), *v)
	assert.NotZero(t, hB)
}

func TestTernaryTieBreaksFirstEncountered(t *testing.T) {
	tbl := NewTernaryTable[testValue](4, 1)

	_, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamTernary, Key: []byte{0x00}, Mask: []byte{0x00}},
	}, "first", 5)
	require.NoError(t, err)

	_, err = tbl.AddEntry([]MatchKeyParam{
		{Type: ParamTernary, Key: []byte{0x00}, Mask: []byte{0x00}},
	}, "second", 5)
	require.NoError(t, err)

	_, v, ok := tbl.LookupKey([]byte{0xFF})
	require.True(t, ok)
	assert.Equal(t, testValue("first"), *v)
}

func TestTernaryZeroPriorityCanMatch(t *testing.T) {
	tbl := NewTernaryTable[testValue](2, 1)
	_, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamTernary, Key: []byte{0x00}, Mask: []byte{0x00}},
	}, "only", 0)
	require.NoError(t, err)

	_, v, ok := tbl.LookupKey([]byte{0xFF})
	require.True(t, ok)
	assert.Equal(t, testValue("only"), *v)
}

func TestTernaryNoMatch(t *testing.T) {
	tbl := NewTernaryTable[testValue](2, 1)
	_, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamTernary, Key: []byte{0x12}, Mask: []byte{0xff}},
	}, "v", 1)
	require.NoError(t, err)

	_, _, ok := tbl.LookupKey([]byte{0x13})
	assert.False(t, ok)
}

func TestTernaryModifyUsesSlotLevelCheck(t *testing.T) {
	// Regression test: ModifyEntry must behave identically to Exact/LPM's
	// ModifyEntry and reject an expired handle, even though
	// match_units.cpp's Ternary ModifyEntry inconsistently used a
	// different handle-arity check than DeleteEntry/GetValue.
	tbl := NewTernaryTable[testValue](2, 1)
	h, err := tbl.AddEntry([]MatchKeyParam{
		{Type: ParamTernary, Key: []byte{0x12}, Mask: []byte{0xff}},
	}, "v", 1)
	require.NoError(t, err)

	require.NoError(t, tbl.DeleteEntry(h))
	err = tbl.ModifyEntry(h, "new")
	assert.ErrorIs(t, err, ErrExpiredHandle)
}
