package nbt

import (
	"fmt"
	"iter"
	"slices"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// List is an ordered, homogeneous sequence. Internally it holds exactly one
// typed sequence (a []Int, a []*Compound, ...) or nothing at all; the
// active sequence IS the element kind, so the two can never disagree.
//
// The element kind is fixed for the lifetime of the list. Inserting a value
// of another kind is a no-op that returns false; lists never coerce.
//
// The zero value is an empty, untyped (TAG_End) list which accepts no
// elements. Use NewList or NewListOf to get a typed list.
type List struct {
	data sequence
}

// sequence is implemented by *seq[T] for every concrete element type.
type sequence interface {
	elemKind() types.Kind
	length() int
	at(i int) Value
	put(i int, v Value) bool
	insert(i int, v Value) bool
	cut(start, end int)
	clear()
	clone() sequence
}

type seq[T Elem] struct {
	items []T
}

func (s *seq[T]) elemKind() types.Kind {
	var zero T
	return zero.Kind()
}

func (s *seq[T]) length() int { return len(s.items) }

func (s *seq[T]) at(i int) Value { return s.items[i] }

func (s *seq[T]) put(i int, v Value) bool {
	t, ok := v.(T)
	if !ok {
		return false
	}
	s.items[i] = t
	return true
}

func (s *seq[T]) insert(i int, v Value) bool {
	t, ok := v.(T)
	if !ok {
		return false
	}
	s.items = slices.Insert(s.items, i, t)
	return true
}

func (s *seq[T]) cut(start, end int) { s.items = slices.Delete(s.items, start, end) }

func (s *seq[T]) clear() { s.items = s.items[:0] }

func (s *seq[T]) clone() sequence {
	out := &seq[T]{items: make([]T, len(s.items))}
	for i, item := range s.items {
		out.items[i] = Clone(item).(T)
	}
	return out
}

// newSequence returns an empty sequence for kind k with room for n
// elements, or nil for KindNone and unknown kinds.
func newSequence(k types.Kind, n int) sequence {
	switch k {
	case types.KindByte:
		return &seq[Byte]{items: make([]Byte, 0, n)}
	case types.KindShort:
		return &seq[Short]{items: make([]Short, 0, n)}
	case types.KindInt:
		return &seq[Int]{items: make([]Int, 0, n)}
	case types.KindLong:
		return &seq[Long]{items: make([]Long, 0, n)}
	case types.KindFloat:
		return &seq[Float]{items: make([]Float, 0, n)}
	case types.KindDouble:
		return &seq[Double]{items: make([]Double, 0, n)}
	case types.KindByteArray:
		return &seq[ByteArray]{items: make([]ByteArray, 0, n)}
	case types.KindString:
		return &seq[String]{items: make([]String, 0, n)}
	case types.KindList:
		return &seq[*List]{items: make([]*List, 0, n)}
	case types.KindCompound:
		return &seq[*Compound]{items: make([]*Compound, 0, n)}
	case types.KindIntArray:
		return &seq[IntArray]{items: make([]IntArray, 0, n)}
	case types.KindLongArray:
		return &seq[LongArray]{items: make([]LongArray, 0, n)}
	}
	return nil
}

// NewList returns an empty list whose element kind is k. KindNone or an
// unknown kind yields the untyped list.
func NewList(k types.Kind) *List {
	return &List{data: newSequence(k, 0)}
}

// NewListOf returns a list holding items. The slice is used as-is.
func NewListOf[T Elem](items ...T) *List {
	if items == nil {
		items = []T{}
	}
	return &List{data: &seq[T]{items: items}}
}

// ListOf builds a list from dynamically typed values. All values must share
// one kind; no values yields the untyped list.
func ListOf(values ...Value) (*List, error) {
	if len(values) == 0 {
		return &List{}, nil
	}
	l := &List{data: newSequence(KindOf(values[0]), len(values))}
	if l.data == nil {
		return nil, fmt.Errorf("list element 0 has kind %s: %w", KindOf(values[0]), types.ErrInvalidKind)
	}
	for i, v := range values {
		if !l.Append(v) {
			return nil, fmt.Errorf("list element %d is %s, list holds %s: %w",
				i, KindOf(v), l.ElemKind(), types.ErrTypeMismatch)
		}
	}
	return l, nil
}

// Elements returns the live backing slice when the list holds T. Writes to
// the returned elements are visible in the list; appends are not.
func Elements[T Elem](l *List) ([]T, bool) {
	if l == nil {
		return nil, false
	}
	s, ok := l.data.(*seq[T])
	if !ok {
		return nil, false
	}
	return s.items, true
}

// Kind always returns KindList.
func (*List) Kind() types.Kind { return types.KindList }

func (*List) value() {}

// ElemKind returns the element kind, KindNone for an untyped list.
func (l *List) ElemKind() types.Kind {
	if l == nil || l.data == nil {
		return types.KindNone
	}
	return l.data.elemKind()
}

// Len returns the number of elements.
func (l *List) Len() int {
	if l == nil || l.data == nil {
		return 0
	}
	return l.data.length()
}

func (l *List) inRange(i int) bool { return i >= 0 && i < l.Len() }

// Get returns element i.
func (l *List) Get(i int) (Value, bool) {
	if !l.inRange(i) {
		return nil, false
	}
	return l.data.at(i), true
}

// Set replaces element i. It fails when i is out of range or v's kind is
// not the element kind.
func (l *List) Set(i int, v Value) bool {
	if !l.inRange(i) || !present(v) {
		return false
	}
	return l.data.put(i, v)
}

// Append adds v at the end if its kind is the element kind.
func (l *List) Append(v Value) bool {
	return l.Insert(l.Len(), v)
}

// Insert places v before element i; i == Len() appends.
func (l *List) Insert(i int, v Value) bool {
	if l == nil || l.data == nil || i < 0 || i > l.Len() || !present(v) {
		return false
	}
	return l.data.insert(i, v)
}

// Remove deletes element i. Out-of-range indices are ignored.
func (l *List) Remove(i int) {
	if l.inRange(i) {
		l.data.cut(i, i+1)
	}
}

// RemoveRange deletes elements [start, end). Invalid ranges are ignored.
func (l *List) RemoveRange(start, end int) {
	if start >= 0 && end > start && end <= l.Len() {
		l.data.cut(start, end)
	}
}

// Clear removes every element. The element kind is kept.
func (l *List) Clear() {
	if l != nil && l.data != nil {
		l.data.clear()
	}
}

// Values returns a snapshot of the elements as Values.
func (l *List) Values() []Value {
	out := make([]Value, l.Len())
	for i := range out {
		out[i] = l.data.at(i)
	}
	return out
}

// All iterates over index/element pairs.
func (l *List) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i := 0; i < l.Len(); i++ {
			if !yield(i, l.data.at(i)) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (l *List) Clone() *List {
	if l == nil || l.data == nil {
		return &List{}
	}
	return &List{data: l.data.clone()}
}

// Equal compares element kinds and elements. Two empty lists are equal
// whatever their element kind.
func (l *List) Equal(o *List) bool {
	if l.Len() != o.Len() {
		return false
	}
	if l.Len() == 0 {
		return true
	}
	if l.ElemKind() != o.ElemKind() {
		return false
	}
	for i := 0; i < l.Len(); i++ {
		if !Equal(l.data.at(i), o.data.at(i)) {
			return false
		}
	}
	return true
}
