package allocate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	var steps []uint64
	block, err := Allocate(context.Background(), 10<<20, 4<<20, func(n uint64) { steps = append(steps, n) })
	require.NoError(t, err)

	assert.Equal(t, uint64(10<<20), block.Size())
	assert.Equal(t, []uint64{4 << 20, 8 << 20, 10 << 20}, steps)
	assert.Len(t, block.chunks, 3)
}

func TestAllocateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	block, err := Allocate(ctx, 10<<20, 1<<20, func(n uint64) {
		if n >= 3<<20 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(3<<20), block.Size())
}

func TestAllocateZeroChunk(t *testing.T) {
	_, err := Allocate(context.Background(), 1, 0, nil)
	assert.Error(t, err)
}
