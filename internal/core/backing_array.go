package core

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/veloxlang/velox-runtime/internal/memds"
	"github.com/veloxlang/velox-runtime/internal/utils"
	"golang.org/x/exp/constraints"
)

var (
	_ = []backingArray{(*ValueArray)(nil), (*IntArray)(nil), (*FloatArray)(nil), (*StringArray)(nil), (*BoolArray)(nil)}

	ErrElementTypeMismatch = errors.New("element kind does not match the backing array's element kind")
)

// A backingArray stores the elements of a DynArray. Implementations are
// chosen for the kind of the elements; the typed ones store elements unboxed
// and reject values of any other kind with ErrElementTypeMismatch.
type backingArray interface {
	Get(index int) (Value, error)
	Set(index int, v Value) error
	Fill(v Value, start, end int) error
	Push(values ...Value) (int, error)
	Unshift(values ...Value) (int, error)
	Pop() (Value, error)
	Shift() (Value, error)
	Len() int
	Resize(newSize int) error
	Values() []Value
	clone() (backingArray, error)
}

func newElemTypeMismatchError(expected ValueKind, actual Value) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrElementTypeMismatch, expected, kindOf(actual))
}

// assertElemsOfKind checks that every given value is a T and returns the
// unboxed elements.
func assertElemsOfKind[T Value](values []Value) ([]T, error) {
	elements := make([]T, len(values))
	for i, v := range values {
		e, ok := v.(T)
		if !ok {
			var zero T
			return nil, newElemTypeMismatchError(zero.Kind(), v)
		}
		elements[i] = e
	}
	return elements, nil
}

// ValueArray implements backingArray, it stores elements of any kind.
type ValueArray struct {
	elements memds.GrowableArray[Value]
}

func newValueArray(elements ...Value) *ValueArray {
	source := normalizeNilValues(elements)
	return &ValueArray{elements: *utils.Must(memds.NewGrowableArrayFrom(source))}
}

// normalizeNilValues replaces untyped nil interface values with Nil, copying
// the slice only if a replacement is needed.
func normalizeNilValues(values []Value) []Value {
	for i, v := range values {
		if v == nil {
			normalized := utils.CopySlice(values)
			for j := i; j < len(normalized); j++ {
				if normalized[j] == nil {
					normalized[j] = Nil
				}
			}
			return normalized
		}
	}
	return values
}

func (array *ValueArray) Get(index int) (Value, error) {
	return array.elements.Get(index)
}

func (array *ValueArray) Set(index int, v Value) error {
	prevLength := array.elements.Len()

	if v == nil {
		v = Nil
	}
	if err := array.elements.Set(index, v); err != nil {
		return err
	}

	array.nilify(prevLength, index)
	return nil
}

func (array *ValueArray) Fill(v Value, start, end int) error {
	if v == nil {
		v = Nil
	}
	return array.elements.Fill(v, start, end)
}

func (array *ValueArray) Push(values ...Value) (int, error) {
	return array.elements.Push(normalizeNilValues(values)...)
}

func (array *ValueArray) Unshift(values ...Value) (int, error) {
	return array.elements.Unshift(normalizeNilValues(values)...)
}

func (array *ValueArray) Pop() (Value, error) {
	return array.elements.Pop()
}

func (array *ValueArray) Shift() (Value, error) {
	return array.elements.Shift()
}

func (array *ValueArray) Len() int {
	return array.elements.Len()
}

func (array *ValueArray) Resize(newSize int) error {
	prevLength := array.elements.Len()

	if err := array.elements.Resize(newSize); err != nil {
		return err
	}

	array.nilify(prevLength, newSize)
	return nil
}

// nilify sets the slots in [start, end) to Nil. The zero value of an
// interface element is an untyped nil, not Nil, so the slots exposed by a
// growth have to be rewritten before a caller can read them.
func (array *ValueArray) nilify(start, end int) {
	slice := array.elements.UnderlyingSlice()
	if end > len(slice) {
		end = len(slice)
	}
	for i := start; i < end; i++ {
		slice[i] = Nil
	}
}

func (array *ValueArray) Values() []Value {
	return array.elements.Values()
}

func (array *ValueArray) clone() (backingArray, error) {
	elements, err := array.elements.Clone()
	if err != nil {
		return nil, err
	}
	return &ValueArray{elements: *elements}, nil
}

// NumberArray implements backingArray, it stores integer or float elements
// unboxed.
type NumberArray[T interface {
	constraints.Integer | constraints.Float
	Value
}] struct {
	elements memds.GrowableArray[T]
}

type IntArray = NumberArray[Int]
type FloatArray = NumberArray[Float]

func newIntArray(elements ...Int) *IntArray {
	return &IntArray{elements: *utils.Must(memds.NewGrowableArrayFrom(elements))}
}

func newFloatArray(elements ...Float) *FloatArray {
	return &FloatArray{elements: *utils.Must(memds.NewGrowableArrayFrom(elements))}
}

func (array *NumberArray[T]) Get(index int) (Value, error) {
	return array.elements.Get(index)
}

func (array *NumberArray[T]) Set(index int, v Value) error {
	number, ok := v.(T)
	if !ok {
		var zero T
		return newElemTypeMismatchError(zero.Kind(), v)
	}
	return array.elements.Set(index, number)
}

func (array *NumberArray[T]) Fill(v Value, start, end int) error {
	number, ok := v.(T)
	if !ok {
		var zero T
		return newElemTypeMismatchError(zero.Kind(), v)
	}
	return array.elements.Fill(number, start, end)
}

func (array *NumberArray[T]) Push(values ...Value) (int, error) {
	numbers, err := assertElemsOfKind[T](values)
	if err != nil {
		return 0, err
	}
	return array.elements.Push(numbers...)
}

func (array *NumberArray[T]) Unshift(values ...Value) (int, error) {
	numbers, err := assertElemsOfKind[T](values)
	if err != nil {
		return 0, err
	}
	return array.elements.Unshift(numbers...)
}

func (array *NumberArray[T]) Pop() (Value, error) {
	return array.elements.Pop()
}

func (array *NumberArray[T]) Shift() (Value, error) {
	return array.elements.Shift()
}

func (array *NumberArray[T]) Len() int {
	return array.elements.Len()
}

func (array *NumberArray[T]) Resize(newSize int) error {
	return array.elements.Resize(newSize)
}

func (array *NumberArray[T]) Values() []Value {
	return utils.MapSlice(array.elements.UnderlyingSlice(), func(e T) Value {
		return e
	})
}

func (array *NumberArray[T]) clone() (backingArray, error) {
	elements, err := array.elements.Clone()
	if err != nil {
		return nil, err
	}
	return &NumberArray[T]{elements: *elements}, nil
}

// StringArray implements backingArray.
type StringArray struct {
	elements memds.GrowableArray[String]
}

func newStringArray(elements ...String) *StringArray {
	return &StringArray{elements: *utils.Must(memds.NewGrowableArrayFrom(elements))}
}

func (array *StringArray) Get(index int) (Value, error) {
	return array.elements.Get(index)
}

func (array *StringArray) Set(index int, v Value) error {
	str, ok := v.(String)
	if !ok {
		return newElemTypeMismatchError(StringKind, v)
	}
	return array.elements.Set(index, str)
}

func (array *StringArray) Fill(v Value, start, end int) error {
	str, ok := v.(String)
	if !ok {
		return newElemTypeMismatchError(StringKind, v)
	}
	return array.elements.Fill(str, start, end)
}

func (array *StringArray) Push(values ...Value) (int, error) {
	strings, err := assertElemsOfKind[String](values)
	if err != nil {
		return 0, err
	}
	return array.elements.Push(strings...)
}

func (array *StringArray) Unshift(values ...Value) (int, error) {
	strings, err := assertElemsOfKind[String](values)
	if err != nil {
		return 0, err
	}
	return array.elements.Unshift(strings...)
}

func (array *StringArray) Pop() (Value, error) {
	return array.elements.Pop()
}

func (array *StringArray) Shift() (Value, error) {
	return array.elements.Shift()
}

func (array *StringArray) Len() int {
	return array.elements.Len()
}

func (array *StringArray) Resize(newSize int) error {
	return array.elements.Resize(newSize)
}

func (array *StringArray) Values() []Value {
	return utils.MapSlice(array.elements.UnderlyingSlice(), func(e String) Value {
		return e
	})
}

func (array *StringArray) clone() (backingArray, error) {
	elements, err := array.elements.Clone()
	if err != nil {
		return nil, err
	}
	return &StringArray{elements: *elements}, nil
}

// BoolArray implements backingArray, it stores its elements in a bitset. The
// bitset keeps no logical length of its own and retains stale bits past a
// shrink, so the array tracks the length itself and clears re-exposed bits
// explicitly.
type BoolArray struct {
	elements *bitset.BitSet
	length   int
}

func newBoolArray(elements ...Bool) *BoolArray {
	bitSet := bitset.New(uint(len(elements)))
	for i, boolean := range elements {
		if boolean {
			bitSet.Set(uint(i))
		}
	}
	return &BoolArray{elements: bitSet, length: len(elements)}
}

func (array *BoolArray) Get(index int) (Value, error) {
	if index < 0 || index >= array.length {
		return nil, memds.ErrIndexOutOfRange
	}
	return Bool(array.elements.Test(uint(index))), nil
}

func (array *BoolArray) Set(index int, v Value) error {
	boolean, ok := v.(Bool)
	if !ok {
		return newElemTypeMismatchError(BoolKind, v)
	}

	if index < 0 {
		return memds.ErrIndexOutOfRange
	}
	if index >= array.length {
		if index >= memds.MAX_ARRAY_LENGTH {
			return fmt.Errorf("%w: %d", memds.ErrSizeLimitExceeded, index)
		}
		if err := array.Resize(index + 1); err != nil {
			return err
		}
	}

	array.elements.SetTo(uint(index), bool(boolean))
	return nil
}

func (array *BoolArray) Fill(v Value, start, end int) error {
	boolean, ok := v.(Bool)
	if !ok {
		return newElemTypeMismatchError(BoolKind, v)
	}

	startIndex := start
	if startIndex < 0 {
		startIndex = array.length + startIndex
	}

	endIndex := end
	if endIndex < 0 {
		endIndex = array.length + endIndex
	}

	if startIndex < 0 || startIndex >= array.length {
		return fmt.Errorf("%w: effective start index %d", memds.ErrIndexOutOfRange, startIndex)
	}
	if endIndex < 0 || endIndex > array.length {
		return fmt.Errorf("%w: effective end index %d", memds.ErrIndexOutOfRange, endIndex)
	}
	if endIndex < startIndex {
		return nil
	}

	for i := startIndex; i < endIndex; i++ {
		array.elements.SetTo(uint(i), bool(boolean))
	}
	return nil
}

func (array *BoolArray) Push(values ...Value) (int, error) {
	booleans, err := assertElemsOfKind[Bool](values)
	if err != nil {
		return 0, err
	}
	if len(booleans) > memds.MAX_ARRAY_LENGTH-array.length {
		return 0, fmt.Errorf("%w: %d", memds.ErrSizeLimitExceeded, int64(array.length)+int64(len(booleans)))
	}

	array.ensureBitSet(array.length + len(booleans))
	for i, boolean := range booleans {
		array.elements.SetTo(uint(array.length+i), bool(boolean))
	}
	array.length += len(booleans)
	return array.length, nil
}

func (array *BoolArray) Unshift(values ...Value) (int, error) {
	booleans, err := assertElemsOfKind[Bool](values)
	if err != nil {
		return 0, err
	}
	if len(booleans) > memds.MAX_ARRAY_LENGTH-array.length {
		return 0, fmt.Errorf("%w: %d", memds.ErrSizeLimitExceeded, int64(array.length)+int64(len(booleans)))
	}

	array.ensureBitSet(array.length + len(booleans))
	for range booleans {
		array.elements.InsertAt(0)
	}
	for i, boolean := range booleans {
		array.elements.SetTo(uint(i), bool(boolean))
	}
	array.length += len(booleans)
	return array.length, nil
}

func (array *BoolArray) Pop() (Value, error) {
	if array.length == 0 {
		return nil, memds.ErrEmptyArray
	}

	array.length--
	return Bool(array.elements.Test(uint(array.length))), nil
}

func (array *BoolArray) Shift() (Value, error) {
	if array.length == 0 {
		return nil, memds.ErrEmptyArray
	}

	elem := Bool(array.elements.Test(0))
	array.elements.DeleteAt(0)
	array.length--
	return elem, nil
}

func (array *BoolArray) Len() int {
	return array.length
}

func (array *BoolArray) Resize(newSize int) error {
	if newSize < 0 {
		return fmt.Errorf("%w: %d", memds.ErrNegativeSize, newSize)
	}
	if newSize > memds.MAX_ARRAY_LENGTH {
		return fmt.Errorf("%w: %d", memds.ErrSizeLimitExceeded, newSize)
	}

	if newSize > array.length {
		array.ensureBitSet(newSize)
		//bits in the re-exposed range may be stale after a previous shrink
		for i := array.length; i < newSize; i++ {
			array.elements.Clear(uint(i))
		}
	}

	array.length = newSize
	return nil
}

func (array *BoolArray) Values() []Value {
	values := make([]Value, array.length)
	for i := range values {
		values[i] = Bool(array.elements.Test(uint(i)))
	}
	return values
}

func (array *BoolArray) clone() (backingArray, error) {
	clone := &BoolArray{length: array.length}
	if array.elements != nil {
		clone.elements = bitset.New(uint(array.length))
		array.elements.Copy(clone.elements)
	}
	return clone, nil
}

func (array *BoolArray) ensureBitSet(minLength int) {
	if array.elements == nil {
		array.elements = bitset.New(uint(minLength))
	}
}
