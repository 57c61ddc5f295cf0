package memds

import (
	"errors"
	"fmt"
	"math"

	"github.com/veloxlang/velox-runtime/internal/utils"
)

const (
	// DEFAULT_CAPACITY is the capacity allocated by the first growth of an
	// array that has no storage yet.
	DEFAULT_CAPACITY = 16

	// CAPACITY_GROWTH_FACTOR is the multiplier applied to the capacity when an
	// array grows.
	CAPACITY_GROWTH_FACTOR = 2

	// MAX_ARRAY_LENGTH is the maximum length and capacity of a GrowableArray;
	// the addressable index space is a signed 32-bit integer.
	MAX_ARRAY_LENGTH = math.MaxInt32
)

var (
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrEmptyArray        = errors.New("array is empty")
	ErrSizeLimitExceeded = errors.New("array size exceeds the maximum length")
	ErrNegativeSize      = errors.New("negative size")
	ErrShortSource       = errors.New("source has fewer elements than the requested size")
)

// A GrowableArray is a contiguous growable sequence of elements of type T.
// It owns a single backing region obtained from an Allocator; the first Len()
// slots hold live elements and writing past the current length grows the
// array, zero-filling the slots in between. The zero value is an empty array
// that allocates from the Go heap.
//
// A GrowableArray is not safe for concurrent use. Views returned by
// UnderlyingSlice are invalidated by any operation that may grow the array.
type GrowableArray[T any] struct {
	// backing region, always as long as the capacity, nil while the capacity is zero
	elements []T
	length   int
	alloc    Allocator[T]
}

// NewGrowableArray creates a zero-initialized array of the given size backed
// by the Go heap. A size of zero allocates nothing.
func NewGrowableArray[T any](size int) (*GrowableArray[T], error) {
	return NewGrowableArrayWithAllocator[T](HeapAllocator[T]{}, size, nil)
}

// NewGrowableArrayFrom creates an array containing a copy of the given source
// elements.
func NewGrowableArrayFrom[T any](source []T) (*GrowableArray[T], error) {
	return NewGrowableArrayWithAllocator(HeapAllocator[T]{}, len(source), source)
}

// NewGrowableArrayWithAllocator creates an array of the given size whose
// storage comes from alloc. If source is not nil its first size elements are
// copied in, otherwise every slot is zero-initialized. A nil alloc falls back
// to the Go heap.
func NewGrowableArrayWithAllocator[T any](alloc Allocator[T], size int, source []T) (*GrowableArray[T], error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, size)
	}
	if size > MAX_ARRAY_LENGTH {
		return nil, fmt.Errorf("%w: %d", ErrSizeLimitExceeded, size)
	}
	if source != nil && len(source) < size {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortSource, len(source), size)
	}

	a := &GrowableArray[T]{alloc: alloc}
	if size == 0 {
		return a, nil
	}

	block, err := a.allocator().Allocate(size)
	if err != nil {
		return nil, err
	}
	a.elements = block

	if source == nil {
		// the allocator does not guarantee zeroed memory
		clear(a.elements)
	} else {
		copy(a.elements, source[:size])
	}

	a.length = size
	return a, nil
}

// Get returns the element at the given index.
func (a *GrowableArray[T]) Get(index int) (T, error) {
	if index < 0 || index >= a.length {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	return a.elements[index], nil
}

// Set writes the element at the given index. If the index is at or past the
// current length the array first grows to a length of index+1, zero-filling
// the slots below the index.
func (a *GrowableArray[T]) Set(index int, value T) error {
	if index < 0 {
		return ErrIndexOutOfRange
	}
	if index >= a.length {
		if index >= MAX_ARRAY_LENGTH {
			return fmt.Errorf("%w: %d", ErrSizeLimitExceeded, index)
		}
		if err := a.Resize(index + 1); err != nil {
			return err
		}
	}

	a.elements[index] = value
	return nil
}

// Fill sets every element in [start, end) to the given value. Negative bounds
// count back from the end of the array: the effective index is length+bound.
// An effective start at or past the length, or an effective end past the
// length, is out of range; end is never clamped. An effective end below the
// effective start is a no-op, not an error.
func (a *GrowableArray[T]) Fill(value T, start, end int) error {
	startIndex := start
	if startIndex < 0 {
		startIndex = a.length + startIndex
	}

	endIndex := end
	if endIndex < 0 {
		endIndex = a.length + endIndex
	}

	if startIndex < 0 || startIndex >= a.length {
		return fmt.Errorf("%w: effective start index %d", ErrIndexOutOfRange, startIndex)
	}
	if endIndex < 0 || endIndex > a.length {
		return fmt.Errorf("%w: effective end index %d", ErrIndexOutOfRange, endIndex)
	}
	if endIndex < startIndex {
		return nil
	}

	for i := startIndex; i < endIndex; i++ {
		a.elements[i] = value
	}
	return nil
}

// Push appends the given elements after the last element and returns the new
// length.
func (a *GrowableArray[T]) Push(values ...T) (int, error) {
	count := len(values)
	if count > MAX_ARRAY_LENGTH-a.length {
		return 0, fmt.Errorf("%w: %d", ErrSizeLimitExceeded, int64(a.length)+int64(count))
	}

	newLength := a.length + count
	if err := a.ensureCapacity(newLength); err != nil {
		return 0, err
	}

	copy(a.elements[a.length:newLength], values)
	a.length = newLength
	return newLength, nil
}

// Unshift inserts the given elements at the front of the array, shifting the
// existing elements right by len(values) positions, and returns the new
// length.
func (a *GrowableArray[T]) Unshift(values ...T) (int, error) {
	count := len(values)
	if count > MAX_ARRAY_LENGTH-a.length {
		return 0, fmt.Errorf("%w: %d", ErrSizeLimitExceeded, int64(a.length)+int64(count))
	}

	newLength := a.length + count
	if err := a.ensureCapacity(newLength); err != nil {
		return 0, err
	}

	// the builtin copy handles the overlap between the old and the shifted
	// element ranges
	copy(a.elements[count:newLength], a.elements[:a.length])
	copy(a.elements[:count], values)

	a.length = newLength
	return newLength, nil
}

// Pop removes the last element and returns it. The capacity is never shrunk.
func (a *GrowableArray[T]) Pop() (T, error) {
	if a.length == 0 {
		var zero T
		return zero, ErrEmptyArray
	}

	a.length--
	return a.elements[a.length], nil
}

// Shift removes the first element and returns it, moving the remaining
// elements left by one position. Unlike Pop this costs O(length).
func (a *GrowableArray[T]) Shift() (T, error) {
	if a.length == 0 {
		var zero T
		return zero, ErrEmptyArray
	}

	element := a.elements[0]
	copy(a.elements[:a.length-1], a.elements[1:a.length])
	a.length--
	return element, nil
}

// Len returns the number of elements in the array.
func (a *GrowableArray[T]) Len() int {
	return a.length
}

// Cap returns the number of allocated slots.
func (a *GrowableArray[T]) Cap() int {
	return len(a.elements)
}

// Resize sets the length of the array. Growing exposes zero-filled slots: the
// allocator is not required to return zeroed memory, so the new slots are
// cleared explicitly. Shrinking only moves the length down; the memory and
// the capacity are retained.
func (a *GrowableArray[T]) Resize(newSize int) error {
	if newSize < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSize, newSize)
	}

	if err := a.ensureCapacity(newSize); err != nil {
		return err
	}

	if newSize > a.length {
		clear(a.elements[a.length:newSize])
	}

	a.length = newSize
	return nil
}

// Clone returns a deep copy of the array that uses the same allocator. The
// clone's capacity equals its length.
func (a *GrowableArray[T]) Clone() (*GrowableArray[T], error) {
	return NewGrowableArrayWithAllocator(a.alloc, a.length, a.elements[:a.length])
}

// Values returns a copy of the elements.
func (a *GrowableArray[T]) Values() []T {
	return utils.CopySlice(a.elements[:a.length])
}

// UnderlyingSlice returns a view over the live elements of the owned region.
// The view must not be retained across any operation that may grow the array:
// the region's address may change.
func (a *GrowableArray[T]) UnderlyingSlice() []T {
	return a.elements[:a.length:a.length]
}

func (a *GrowableArray[T]) ForEachElem(fn func(i int, e T) error) error {
	for i, e := range a.elements[:a.length] {
		err := fn(i, e)
		if err != nil {
			return err
		}
	}
	return nil
}

// Free returns the owned region to the allocator. The array becomes empty and
// stays usable: the next growth allocates a fresh region.
func (a *GrowableArray[T]) Free() {
	if a.elements != nil {
		a.allocator().Free(a.elements)
	}
	a.elements = nil
	a.length = 0
}

// ensureCapacity grows the owned region so that it can hold at least min
// elements. The new capacity starts at DEFAULT_CAPACITY and doubles from
// there, never exceeding MAX_ARRAY_LENGTH; a min larger than what doubling
// yields is used directly.
func (a *GrowableArray[T]) ensureCapacity(min int) error {
	capacity := len(a.elements)
	if capacity >= min {
		return nil
	}

	if min > MAX_ARRAY_LENGTH {
		return fmt.Errorf("%w: %d", ErrSizeLimitExceeded, min)
	}

	var newCapacity int
	switch {
	case capacity == 0:
		newCapacity = DEFAULT_CAPACITY
	case capacity > MAX_ARRAY_LENGTH/CAPACITY_GROWTH_FACTOR:
		// doubling would overshoot the ceiling
		newCapacity = MAX_ARRAY_LENGTH
	default:
		newCapacity = capacity * CAPACITY_GROWTH_FACTOR
	}

	if newCapacity < min {
		newCapacity = min
	}

	block, err := a.allocator().Reallocate(a.elements, newCapacity)
	if err != nil {
		return err
	}

	a.elements = block
	return nil
}

func (a *GrowableArray[T]) allocator() Allocator[T] {
	if a.alloc == nil {
		return HeapAllocator[T]{}
	}
	return a.alloc
}
