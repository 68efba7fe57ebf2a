package nbt

import (
	"bytes"
	"math"
	"slices"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// Value is one node of a tree. The dynamic type is the discriminant: exactly
// one of Byte, Short, Int, Long, Float, Double, String, ByteArray, IntArray,
// LongArray, *List or *Compound. The interface is sealed; no other package
// can add kinds.
type Value interface {
	// Kind returns the tag kind, which always matches the dynamic type.
	Kind() types.Kind
	value()
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	String    string
	ByteArray []byte
	IntArray  []int32
	LongArray []int64
)

func (Byte) Kind() types.Kind      { return types.KindByte }
func (Short) Kind() types.Kind     { return types.KindShort }
func (Int) Kind() types.Kind       { return types.KindInt }
func (Long) Kind() types.Kind      { return types.KindLong }
func (Float) Kind() types.Kind     { return types.KindFloat }
func (Double) Kind() types.Kind    { return types.KindDouble }
func (String) Kind() types.Kind    { return types.KindString }
func (ByteArray) Kind() types.Kind { return types.KindByteArray }
func (IntArray) Kind() types.Kind  { return types.KindIntArray }
func (LongArray) Kind() types.Kind { return types.KindLongArray }

func (Byte) value()      {}
func (Short) value()     {}
func (Int) value()       {}
func (Long) value()      {}
func (Float) value()     {}
func (Double) value()    {}
func (String) value()    {}
func (ByteArray) value() {}
func (IntArray) value()  {}
func (LongArray) value() {}

// Elem is the set of concrete value types. It constrains the generic
// helpers (Elements, Lookup, NewListOf) so they can never be instantiated
// with the Value interface itself.
type Elem interface {
	Byte | Short | Int | Long | Float | Double | String |
		ByteArray | IntArray | LongArray | *List | *Compound
	Value
}

// Bool returns the Byte the game uses for booleans.
func Bool(b bool) Byte {
	if b {
		return 1
	}
	return 0
}

// KindOf returns v's kind, or KindNone for a nil Value.
func KindOf(v Value) types.Kind {
	if v == nil {
		return types.KindNone
	}
	return v.Kind()
}

// present reports whether v can be stored: non-nil and not a typed nil
// *List or *Compound.
func present(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case *List:
		return x != nil
	case *Compound:
		return x != nil
	}
	return true
}

// Equal reports whether a and b are the same kind with equal payloads.
// Floats compare by bit pattern, so NaN equals an identical NaN and 0 does
// not equal -0. Compounds compare entry by entry in order. Empty lists are
// equal whatever their declared element kind, because an empty list does
// not survive encoding with its element kind.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		return bytes.Equal(x, b.(ByteArray))
	case IntArray:
		return slices.Equal(x, b.(IntArray))
	case LongArray:
		return slices.Equal(x, b.(LongArray))
	case *List:
		return x.Equal(b.(*List))
	case *Compound:
		return x.Equal(b.(*Compound))
	default:
		return a == b
	}
}

// Clone returns a deep copy of v. Arrays, lists and compounds are copied;
// the result shares no storage with v.
func Clone(v Value) Value {
	switch x := v.(type) {
	case ByteArray:
		return slices.Clone(x)
	case IntArray:
		return slices.Clone(x)
	case LongArray:
		return slices.Clone(x)
	case *List:
		return x.Clone()
	case *Compound:
		return x.Clone()
	default:
		return v
	}
}

// number is the set of Go types numeric kinds convert to.
type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// castNumber converts any numeric Value to N with Go conversion semantics:
// integers wrap when narrowed, floats truncate toward zero. ok is false for
// non-numeric kinds and nil.
func castNumber[N number](v Value) (N, bool) {
	switch x := v.(type) {
	case Byte:
		return N(x), true
	case Short:
		return N(x), true
	case Int:
		return N(x), true
	case Long:
		return N(x), true
	case Float:
		return N(x), true
	case Double:
		return N(x), true
	}
	return 0, false
}

// Coerce converts a numeric value to the numeric kind k. It returns false
// when v is not numeric or k is not a numeric kind.
func Coerce(v Value, k types.Kind) (Value, bool) {
	if !KindOf(v).IsNumeric() {
		return nil, false
	}
	switch k {
	case types.KindByte:
		n, _ := castNumber[Byte](v)
		return n, true
	case types.KindShort:
		n, _ := castNumber[Short](v)
		return n, true
	case types.KindInt:
		n, _ := castNumber[Int](v)
		return n, true
	case types.KindLong:
		n, _ := castNumber[Long](v)
		return n, true
	case types.KindFloat:
		n, _ := castNumber[Float](v)
		return n, true
	case types.KindDouble:
		n, _ := castNumber[Double](v)
		return n, true
	}
	return nil, false
}

// Zero returns the zero value of kind k: 0 for numbers, "" for strings,
// empty arrays, an untyped empty list and an empty compound. It returns nil
// for KindNone and unknown kinds.
func Zero(k types.Kind) Value {
	switch k {
	case types.KindByte:
		return Byte(0)
	case types.KindShort:
		return Short(0)
	case types.KindInt:
		return Int(0)
	case types.KindLong:
		return Long(0)
	case types.KindFloat:
		return Float(0)
	case types.KindDouble:
		return Double(0)
	case types.KindString:
		return String("")
	case types.KindByteArray:
		return ByteArray{}
	case types.KindIntArray:
		return IntArray{}
	case types.KindLongArray:
		return LongArray{}
	case types.KindList:
		return &List{}
	case types.KindCompound:
		return NewCompound()
	}
	return nil
}
