package allocate

import (
	"context"
	"fmt"
	"os"
)

// Block is memory held resident until it is released by the garbage collector
type Block struct {
	chunks [][]byte
	size   uint64
}

// Size returns the number of bytes held
func (b *Block) Size() uint64 {
	return b.size
}

// Allocate reserves total bytes in chunks of at most chunkSize and writes to every page,
// so the memory is actually committed and puts pressure on the system.
// On cancellation it returns what was allocated so far along with the context error.
func Allocate(ctx context.Context, total, chunkSize uint64, progress func(allocated uint64)) (*Block, error) {
	if chunkSize == 0 {
		return nil, fmt.Errorf("chunk size must be positive")
	}

	pageSize := os.Getpagesize()
	block := &Block{}

	for block.size < total {
		if err := ctx.Err(); err != nil {
			return block, err
		}

		n := min(chunkSize, total-block.size)
		chunk := make([]byte, n)
		for i := 0; i < len(chunk); i += pageSize {
			chunk[i] = 1
		}

		block.chunks = append(block.chunks, chunk)
		block.size += n
		if progress != nil {
			progress(block.size)
		}
	}

	return block, nil
}
