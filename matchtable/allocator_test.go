package matchtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorAcquireRelease(t *testing.T) {
	a := newHandleAllocator(2)

	s0, err := a.acquire()
	require.NoError(t, err)
	s1, err := a.acquire()
	require.NoError(t, err)
	assert.NotEqual(t, s0, s1)

	_, err = a.acquire()
	assert.ErrorIs(t, err, ErrTableFull)

	require.NoError(t, a.release(s0))
	s2, err := a.acquire()
	require.NoError(t, err)
	assert.Equal(t, s0, s2)
}

func TestAllocatorReleaseUnreserved(t *testing.T) {
	a := newHandleAllocator(4)
	assert.ErrorIs(t, a.release(0), ErrInvalidHandle)
	assert.ErrorIs(t, a.release(99), ErrInvalidHandle)
}

func TestAllocatorIsLive(t *testing.T) {
	a := newHandleAllocator(4)
	slot, err := a.acquire()
	require.NoError(t, err)

	assert.True(t, a.isLive(slot))
	require.NoError(t, a.release(slot))
	assert.False(t, a.isLive(slot))
	assert.False(t, a.isLive(-1))
	assert.False(t, a.isLive(4))
}

func TestAllocatorLiveSlotsAscending(t *testing.T) {
	a := newHandleAllocator(8)
	for i := 0; i < 5; i++ {
		_, err := a.acquire()
		require.NoError(t, err)
	}
	require.NoError(t, a.release(2))

	var got []int
	for s := range a.liveSlots() {
		got = append(got, s)
	}
	assert.Equal(t, []int{0, 1, 3, 4}, got)
	assert.Equal(t, 4, a.len())
}
