package core

import (
	"github.com/veloxlang/velox-runtime/internal/utils"
)

// A DynArray represents a growable sequence of Velox values, DynArray
// implements Value. The elements are stored in a backingArray suited to the
// kind of elements, for example if the elements are all integers the backing
// array will (ideally) be an *IntArray.
type DynArray struct {
	backingArray
}

func newDynArray(backing backingArray) *DynArray {
	return &DynArray{backingArray: backing}
}

// NewDynArray creates an array holding the given elements, stored in the
// backing array best suited to their kinds: a typed array if every element is
// of the same specializable kind, a *ValueArray otherwise.
func NewDynArray(elements ...Value) *DynArray {
	if len(elements) == 0 {
		return NewWrappedValueArray()
	}

	kind := kindOf(elements[0])
	for _, e := range elements[1:] {
		if kindOf(e) != kind {
			return NewWrappedValueArrayFrom(elements)
		}
	}

	switch kind {
	case IntKind:
		return newDynArray(newIntArray(utils.MapSlice(elements, func(v Value) Int { return v.(Int) })...))
	case FloatKind:
		return newDynArray(newFloatArray(utils.MapSlice(elements, func(v Value) Float { return v.(Float) })...))
	case StringKind:
		return newDynArray(newStringArray(utils.MapSlice(elements, func(v Value) String { return v.(String) })...))
	case BoolKind:
		return newDynArray(newBoolArray(utils.MapSlice(elements, func(v Value) Bool { return v.(Bool) })...))
	default:
		return NewWrappedValueArrayFrom(elements)
	}
}

func NewWrappedValueArray(elements ...Value) *DynArray {
	return newDynArray(newValueArray(elements...))
}

func NewWrappedValueArrayFrom(elements []Value) *DynArray {
	return newDynArray(newValueArray(elements...))
}

func NewWrappedIntArray(elements ...Int) *DynArray {
	return newDynArray(newIntArray(elements...))
}

func NewWrappedIntArrayFrom(elements []Int) *DynArray {
	return newDynArray(newIntArray(elements...))
}

func NewWrappedFloatArray(elements ...Float) *DynArray {
	return newDynArray(newFloatArray(elements...))
}

func NewWrappedFloatArrayFrom(elements []Float) *DynArray {
	return newDynArray(newFloatArray(elements...))
}

func NewWrappedStringArray(elements ...String) *DynArray {
	return newDynArray(newStringArray(elements...))
}

func NewWrappedStringArrayFrom(elements []String) *DynArray {
	return newDynArray(newStringArray(elements...))
}

func NewWrappedBoolArray(elements ...Bool) *DynArray {
	return newDynArray(newBoolArray(elements...))
}

func (a *DynArray) Kind() ValueKind {
	return ArrayKind
}

// Clone returns a deep copy of the array: the clone shares no storage with
// the original. Element values themselves are not cloned.
func (a *DynArray) Clone() (*DynArray, error) {
	backing, err := a.backingArray.clone()
	if err != nil {
		return nil, err
	}
	return &DynArray{backingArray: backing}, nil
}
