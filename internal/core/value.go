package core

var (
	_ = []Value{Nil, True, Int(0), Float(0), String(""), (*DynArray)(nil)}
)

// A Value is the runtime representation of a single Velox value. All kinds
// are immutable except *DynArray.
type Value interface {
	// Kind returns the runtime kind of the value.
	Kind() ValueKind
}

type ValueKind int

const (
	NilKind ValueKind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	ArrayKind
)

func (k ValueKind) String() string {
	switch k {
	case NilKind:
		return "nil"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	default:
		return "unknown"
	}
}

// kindOf tolerates untyped nil interface values, unlike a direct Kind call.
func kindOf(v Value) ValueKind {
	if v == nil {
		return NilKind
	}
	return v.Kind()
}

// NilT implements Value.
type NilT int

const Nil = NilT(0)

func (NilT) Kind() ValueKind {
	return NilKind
}

// Bool implements Value.
type Bool bool

const (
	True  = Bool(true)
	False = Bool(false)
)

func (Bool) Kind() ValueKind {
	return BoolKind
}

// Int implements Value.
type Int int64

func (Int) Kind() ValueKind {
	return IntKind
}

// Float implements Value.
type Float float64

func (Float) Kind() ValueKind {
	return FloatKind
}

// String implements Value.
type String string

func (String) Kind() ValueKind {
	return StringKind
}
