package memds

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrOutOfMemory      = errors.New("out of memory")
	ErrNegativeCapacity = errors.New("negative capacity")
)

// An Allocator hands out the backing regions of the containers in this
// package. Blocks are slices whose length always equals their capacity; a
// block's address is stable until the block is passed back to Reallocate or
// Free.
//
// Implementations are not required to return zeroed memory: callers clear the
// slots they expose.
type Allocator[T any] interface {
	// Allocate returns a block of exactly capacity slots.
	Allocate(capacity int) ([]T, error)

	// Reallocate returns a block of exactly capacity slots whose first
	// min(len(block), capacity) slots hold the elements of block. The given
	// block is released and must not be used afterwards. A nil block behaves
	// like Allocate.
	Reallocate(block []T, capacity int) ([]T, error)

	// Free releases a block obtained from Allocate or Reallocate.
	Free(block []T)
}

// HeapAllocator allocates blocks from the Go heap and lets the garbage
// collector reclaim them.
type HeapAllocator[T any] struct{}

func (HeapAllocator[T]) Allocate(capacity int) ([]T, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCapacity, capacity)
	}
	return make([]T, capacity), nil
}

func (HeapAllocator[T]) Reallocate(block []T, capacity int) ([]T, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCapacity, capacity)
	}

	newBlock := make([]T, capacity)
	copy(newBlock, block)
	return newBlock, nil
}

func (HeapAllocator[T]) Free(block []T) {
	//the garbage collector reclaims the block once it is unreferenced
}

// A LoggingAllocator wraps another allocator and writes one debug event per
// operation, it is intended for tracing the allocation behavior of a
// container.
type LoggingAllocator[T any] struct {
	wrapped Allocator[T]
	logger  zerolog.Logger
}

func WrapWithLogging[T any](wrapped Allocator[T], logger zerolog.Logger) *LoggingAllocator[T] {
	return &LoggingAllocator[T]{
		wrapped: wrapped,
		logger:  logger,
	}
}

func (a *LoggingAllocator[T]) Allocate(capacity int) ([]T, error) {
	block, err := a.wrapped.Allocate(capacity)
	if err != nil {
		a.logger.Debug().Err(err).Int("capacity", capacity).Msg("allocation failed")
		return nil, err
	}

	a.logger.Debug().Int("capacity", capacity).Msg("allocate block")
	return block, nil
}

func (a *LoggingAllocator[T]) Reallocate(block []T, capacity int) ([]T, error) {
	prevCapacity := len(block)

	newBlock, err := a.wrapped.Reallocate(block, capacity)
	if err != nil {
		a.logger.Debug().Err(err).Int("capacity", capacity).Msg("reallocation failed")
		return nil, err
	}

	a.logger.Debug().Int("prevCapacity", prevCapacity).Int("capacity", capacity).Msg("reallocate block")
	return newBlock, nil
}

func (a *LoggingAllocator[T]) Free(block []T) {
	a.wrapped.Free(block)
	a.logger.Debug().Int("capacity", len(block)).Msg("free block")
}
