package matchtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleRoundTrip(t *testing.T) {
	cases := []struct {
		version uint32
		slot    int
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{42, 17},
		{0xffffffff, 0xfffffffe},
	}

	for _, c := range cases {
		h := NewHandle(c.version, c.slot)
		assert.Equal(t, c.version, h.Version())
		assert.Equal(t, c.slot, h.Slot())
	}
}

func TestHandleSlotUsesBitwiseMask(t *testing.T) {
	// Regression test for the HANDLE_INTERNAL logical-AND bug in the
	// source this package is ported from: Slot must return the low 32
	// bits exactly, not a boolean collapsed to 0/1.
	h := NewHandle(1, 12345)
	assert.Equal(t, 12345, h.Slot())
}
