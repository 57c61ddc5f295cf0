package memds

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestHeapAllocator(t *testing.T) {
	alloc := HeapAllocator[int]{}

	t.Run("blocks are exactly as long as requested", func(t *testing.T) {
		block, err := alloc.Allocate(4)
		if !assert.NoError(t, err) {
			return
		}
		assert.Len(t, block, 4)
		assert.Equal(t, 4, cap(block))
	})

	t.Run("negative capacity", func(t *testing.T) {
		_, err := alloc.Allocate(-1)
		assert.ErrorIs(t, err, ErrNegativeCapacity)

		_, err = alloc.Reallocate(nil, -1)
		assert.ErrorIs(t, err, ErrNegativeCapacity)
	})

	t.Run("growing reallocation preserves the elements", func(t *testing.T) {
		block, err := alloc.Allocate(3)
		if !assert.NoError(t, err) {
			return
		}
		block[0], block[1], block[2] = 1, 2, 3

		newBlock, err := alloc.Reallocate(block, 6)
		if !assert.NoError(t, err) {
			return
		}
		assert.Len(t, newBlock, 6)
		assert.Equal(t, []int{1, 2, 3}, newBlock[:3])
	})

	t.Run("shrinking reallocation keeps the prefix", func(t *testing.T) {
		block, err := alloc.Allocate(3)
		if !assert.NoError(t, err) {
			return
		}
		block[0], block[1], block[2] = 1, 2, 3

		newBlock, err := alloc.Reallocate(block, 2)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, []int{1, 2}, newBlock)
	})

	t.Run("reallocating a nil block behaves like an allocation", func(t *testing.T) {
		block, err := alloc.Reallocate(nil, 4)
		if !assert.NoError(t, err) {
			return
		}
		assert.Len(t, block, 4)
	})
}

func TestLoggingAllocator(t *testing.T) {
	buf := bytes.Buffer{}
	logger := zerolog.New(&buf)
	alloc := WrapWithLogging[int](HeapAllocator[int]{}, logger)

	block, err := alloc.Allocate(4)
	if !assert.NoError(t, err) {
		return
	}
	assert.Contains(t, buf.String(), "allocate block")
	assert.Contains(t, buf.String(), `"capacity":4`)

	buf.Reset()
	block, err = alloc.Reallocate(block, 8)
	if !assert.NoError(t, err) {
		return
	}
	assert.Contains(t, buf.String(), "reallocate block")
	assert.Contains(t, buf.String(), `"prevCapacity":4`)
	assert.Contains(t, buf.String(), `"capacity":8`)

	buf.Reset()
	alloc.Free(block)
	assert.Contains(t, buf.String(), "free block")

	t.Run("failures are logged and propagated", func(t *testing.T) {
		buf := bytes.Buffer{}
		alloc := WrapWithLogging[int](&failAfterAllocator[int]{}, zerolog.New(&buf))

		_, err := alloc.Allocate(4)
		assert.ErrorIs(t, err, ErrOutOfMemory)
		assert.Contains(t, buf.String(), "allocation failed")
	})
}
