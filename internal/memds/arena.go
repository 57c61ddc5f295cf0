package memds

import (
	"errors"
	"fmt"
)

const DEFAULT_ARENA_SEGMENT_LENGTH = 4096

var (
	ErrInvalidSegmentLength = errors.New("segment length should be a positive number")
	ErrInvalidArenaBudget   = errors.New("arena budget should be a positive number")
)

// An ArenaAllocator carves blocks out of large segments and frees everything
// at once: Free on an individual block is a no-op and memory is reclaimed by
// FreeAll. Blocks larger than the segment length get a dedicated segment.
//
// An optional slot budget caps the total number of slots handed out between
// two FreeAll calls; allocations past the budget fail with ErrOutOfMemory.
type ArenaAllocator[T any] struct {
	segments      []*arenaSegment[T]
	segmentLength int
	budget        int //0 if unlimited
	allocated     int //slots handed out, only FreeAll decreases it
}

type arenaSegment[T any] struct {
	slots []T
	used  int
}

// NewArenaAllocator creates an arena whose segments hold segmentLength slots
// each. It panics with ErrInvalidSegmentLength if segmentLength is not
// positive.
func NewArenaAllocator[T any](segmentLength int) *ArenaAllocator[T] {
	if segmentLength <= 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidSegmentLength, segmentLength))
	}

	return &ArenaAllocator[T]{segmentLength: segmentLength}
}

// NewBoundedArenaAllocator creates an arena that refuses to hand out more
// than budget slots in total before the next FreeAll. It panics with
// ErrInvalidArenaBudget if budget is not positive.
func NewBoundedArenaAllocator[T any](segmentLength, budget int) *ArenaAllocator[T] {
	if budget <= 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidArenaBudget, budget))
	}

	arena := NewArenaAllocator[T](segmentLength)
	arena.budget = budget
	return arena
}

func (a *ArenaAllocator[T]) Allocate(capacity int) ([]T, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCapacity, capacity)
	}
	if capacity == 0 {
		return []T{}, nil
	}
	if a.budget > 0 && capacity > a.budget-a.allocated {
		return nil, fmt.Errorf("%w: arena budget of %d slots exhausted", ErrOutOfMemory, a.budget)
	}

	segment := a.segmentWithRoom(capacity)

	block := segment.slots[segment.used : segment.used+capacity : segment.used+capacity]
	segment.used += capacity
	a.allocated += capacity
	return block, nil
}

// Reallocate always moves: the old block stays in place inside its segment
// and is only reclaimed by the next FreeAll.
func (a *ArenaAllocator[T]) Reallocate(block []T, capacity int) ([]T, error) {
	newBlock, err := a.Allocate(capacity)
	if err != nil {
		return nil, err
	}

	copy(newBlock, block)
	return newBlock, nil
}

// Free is a no-op, arena memory is reclaimed by FreeAll.
func (a *ArenaAllocator[T]) Free(block []T) {
}

// FreeAll makes every slot of every segment available again; blocks handed
// out before the call must not be used afterwards. The slots are cleared so
// that the values they held can be collected.
func (a *ArenaAllocator[T]) FreeAll() {
	for _, segment := range a.segments {
		clear(segment.slots)
		segment.used = 0
	}
	a.allocated = 0
}

// AllocatedSlotCount returns the total number of slots handed out since the
// last FreeAll.
func (a *ArenaAllocator[T]) AllocatedSlotCount() int {
	return a.allocated
}

// SegmentCount returns the number of segments owned by the arena, freed
// segments included.
func (a *ArenaAllocator[T]) SegmentCount() int {
	return len(a.segments)
}

func (a *ArenaAllocator[T]) segmentWithRoom(capacity int) *arenaSegment[T] {
	for _, segment := range a.segments {
		if len(segment.slots)-segment.used >= capacity {
			return segment
		}
	}

	length := a.segmentLength
	if capacity > length {
		//oversized block, dedicated segment
		length = capacity
	}

	segment := &arenaSegment[T]{slots: make([]T, length)}
	a.segments = append(a.segments, segment)
	return segment
}
