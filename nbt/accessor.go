package nbt

import (
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Accessor is a non-owning, dynamically typed view into one node of a live
// tree: the tree root, a compound entry, a list element or an array
// element. It is the only way to index into a tree without knowing the
// concrete kinds along the way.
//
// Accessors never fail loudly. Navigating to something that does not exist
// yields an invalid Accessor (Valid reports false), and every read returns
// an explicit ok flag so "absent" and "zero" stay distinguishable.
//
// An Accessor re-reads the node it refers to on every call, so its kind can
// never drift from the storage. It is valid only as long as the tree it came
// from, and must not be used concurrently with a mutation of that tree.
// The zero Accessor is invalid.
type Accessor struct {
	s slot
}

// slot locates one node.
type slot interface {
	load() Value
	store(v Value) bool
}

// rootSlot is the root value of a Tree.
type rootSlot struct{ t *Tree }

func (s rootSlot) load() Value { return s.t.Root }

func (s rootSlot) store(v Value) bool {
	s.t.Root = v
	return true
}

// entrySlot is a compound entry. It remembers both position and name and
// re-resolves on every use, so a handle whose entry was removed or moved
// either finds it again by name or turns invalid. Once deleted through the
// handle it stays invalid, even if a later entry shares the name.
type entrySlot struct {
	c       *Compound
	i       int
	name    string
	removed bool
}

// index returns the entry's current position, or -1.
func (s *entrySlot) index() int {
	if s.removed {
		return -1
	}
	if s.i < s.c.Len() && s.c.entries[s.i].Name == s.name {
		return s.i
	}
	return s.c.Index(s.name)
}

func (s *entrySlot) resolve() *Entry {
	if i := s.index(); i >= 0 {
		return &s.c.entries[i]
	}
	return nil
}

func (s *entrySlot) load() Value {
	if e := s.resolve(); e != nil {
		return e.Value
	}
	return nil
}

func (s *entrySlot) store(v Value) bool {
	if e := s.resolve(); e != nil {
		e.Value = v
		return true
	}
	return false
}

// listSlot is element i of a list. A deleted element's handle does not
// slide onto the next one.
type listSlot struct {
	l       *List
	i       int
	removed bool
}

func (s *listSlot) load() Value {
	if s.removed {
		return nil
	}
	v, _ := s.l.Get(s.i)
	return v
}

func (s *listSlot) store(v Value) bool { return !s.removed && s.l.Set(s.i, v) }

// elemSlot is element i of the BYTE/INT/LONG array held by parent.
type elemSlot struct {
	parent slot
	i      int
}

func (s elemSlot) load() Value {
	switch a := s.parent.load().(type) {
	case ByteArray:
		if s.i < len(a) {
			return Byte(int8(a[s.i]))
		}
	case IntArray:
		if s.i < len(a) {
			return Int(a[s.i])
		}
	case LongArray:
		if s.i < len(a) {
			return Long(a[s.i])
		}
	}
	return nil
}

func (s elemSlot) store(v Value) bool {
	switch a := s.parent.load().(type) {
	case ByteArray:
		if b, ok := v.(Byte); ok && s.i < len(a) {
			a[s.i] = byte(b)
			return true
		}
	case IntArray:
		if n, ok := v.(Int); ok && s.i < len(a) {
			a[s.i] = int32(n)
			return true
		}
	case LongArray:
		if n, ok := v.(Long); ok && s.i < len(a) {
			a[s.i] = int64(n)
			return true
		}
	}
	return false
}

// load returns the referenced value, nil when the handle is empty or stale.
func (a Accessor) load() Value {
	if a.s == nil {
		return nil
	}
	return a.s.load()
}

// Kind returns the kind of the referenced value. For a compound entry that
// is the kind of the entry's value. Invalid handles report KindNone.
func (a Accessor) Kind() types.Kind { return KindOf(a.load()) }

// Valid reports whether the handle refers to a value. It is false exactly
// when the handle is empty or its kind is KindNone.
func (a Accessor) Valid() bool { return a.Kind() != types.KindNone }

// Value returns the referenced value. Lists, compounds and arrays are
// returned by reference, so mutating them mutates the tree.
func (a Accessor) Value() (Value, bool) {
	v := a.load()
	return v, v != nil
}

// Name returns the entry name when the handle is a compound entry.
func (a Accessor) Name() (string, bool) {
	if s, ok := a.s.(*entrySlot); ok && s.resolve() != nil {
		return s.name, true
	}
	return "", false
}

// Len returns the element count of arrays and lists and the entry count of
// compounds. Every other kind, and an invalid handle, reports 0.
func (a Accessor) Len() int {
	switch x := a.load().(type) {
	case ByteArray:
		return len(x)
	case IntArray:
		return len(x)
	case LongArray:
		return len(x)
	case *List:
		return x.Len()
	case *Compound:
		return x.Len()
	}
	return 0
}

// Index returns a handle to element i of an array or list. A wrong kind or
// an out-of-range index yields an invalid handle.
func (a Accessor) Index(i int) Accessor {
	if i < 0 {
		return Accessor{}
	}
	switch x := a.load().(type) {
	case ByteArray, IntArray, LongArray:
		if i < a.Len() {
			return Accessor{s: elemSlot{parent: a.s, i: i}}
		}
	case *List:
		if i < x.Len() {
			return Accessor{s: &listSlot{l: x, i: i}}
		}
	}
	return Accessor{}
}

// Key returns a handle to the first entry named name of a compound. A wrong
// kind or a missing name yields an invalid handle.
func (a Accessor) Key(name string) Accessor {
	c, ok := a.load().(*Compound)
	if !ok {
		return Accessor{}
	}
	i := c.Index(name)
	if i < 0 {
		return Accessor{}
	}
	return Accessor{s: &entrySlot{c: c, i: i, name: name}}
}

// Byte reads any numeric kind as int8. Non-numeric kinds and invalid
// handles return (0, false).
func (a Accessor) Byte() (int8, bool) { return castNumber[int8](a.load()) }

// Short reads any numeric kind as int16.
func (a Accessor) Short() (int16, bool) { return castNumber[int16](a.load()) }

// Int reads any numeric kind as int32. A DOUBLE 3.9 reads as 3.
func (a Accessor) Int() (int32, bool) { return castNumber[int32](a.load()) }

// Long reads any numeric kind as int64.
func (a Accessor) Long() (int64, bool) { return castNumber[int64](a.load()) }

// Float reads any numeric kind as float32.
func (a Accessor) Float() (float32, bool) { return castNumber[float32](a.load()) }

// Double reads any numeric kind as float64.
func (a Accessor) Double() (float64, bool) { return castNumber[float64](a.load()) }

// Text returns the payload of a STRING.
func (a Accessor) Text() (string, bool) {
	s, ok := a.load().(String)
	return string(s), ok
}

// Bytes returns the live payload of a BYTE_ARRAY.
func (a Accessor) Bytes() ([]byte, bool) {
	b, ok := a.load().(ByteArray)
	return b, ok
}

// Ints returns the live payload of an INT_ARRAY.
func (a Accessor) Ints() ([]int32, bool) {
	b, ok := a.load().(IntArray)
	return b, ok
}

// Longs returns the live payload of a LONG_ARRAY.
func (a Accessor) Longs() ([]int64, bool) {
	b, ok := a.load().(LongArray)
	return b, ok
}

// List returns the referenced list.
func (a Accessor) List() (*List, bool) {
	l, ok := a.load().(*List)
	return l, ok
}

// Compound returns the referenced compound.
func (a Accessor) Compound() (*Compound, bool) {
	c, ok := a.load().(*Compound)
	return c, ok
}

// The ...Or helpers reproduce the permissive "default on absence" reads.

func (a Accessor) ByteOr(def int8) int8 {
	if v, ok := a.Byte(); ok {
		return v
	}
	return def
}

func (a Accessor) ShortOr(def int16) int16 {
	if v, ok := a.Short(); ok {
		return v
	}
	return def
}

func (a Accessor) IntOr(def int32) int32 {
	if v, ok := a.Int(); ok {
		return v
	}
	return def
}

func (a Accessor) LongOr(def int64) int64 {
	if v, ok := a.Long(); ok {
		return v
	}
	return def
}

func (a Accessor) FloatOr(def float32) float32 {
	if v, ok := a.Float(); ok {
		return v
	}
	return def
}

func (a Accessor) DoubleOr(def float64) float64 {
	if v, ok := a.Double(); ok {
		return v
	}
	return def
}

func (a Accessor) TextOr(def string) string {
	if v, ok := a.Text(); ok {
		return v
	}
	return def
}

// Is compares the referenced value with v. When both are numeric the stored
// value is first converted to v's kind, so a DOUBLE 3.9 Is Int(3).
func (a Accessor) Is(v Value) bool {
	cur := a.load()
	if cur == nil || v == nil {
		return false
	}
	if cur.Kind().IsNumeric() && v.Kind().IsNumeric() {
		cur, _ = Coerce(cur, v.Kind())
	}
	return Equal(cur, v)
}

// Set assigns v to the referenced node in place and reports whether it did.
//
//   - Same kind: stored as-is.
//   - Numeric into numeric: converted to the node's kind first.
//   - Anything else: ignored.
//
// Set never changes a node's kind; use Replace on compound entries and the
// root for that.
func (a Accessor) Set(v Value) bool {
	cur := a.load()
	if cur == nil || !present(v) {
		return false
	}
	target := cur.Kind()
	if v.Kind() != target {
		var ok bool
		if v, ok = Coerce(v, target); !ok {
			return false
		}
	}
	return a.s.store(v)
}

// Replace stores v whatever its kind, for compound entries and the tree
// root. List and array elements keep their homogeneity: Replace on them
// behaves like Set without numeric conversion.
func (a Accessor) Replace(v Value) bool {
	if !a.Valid() || !present(v) {
		return false
	}
	switch a.s.(type) {
	case *entrySlot, rootSlot:
		return a.s.store(v)
	}
	if v.Kind() != a.Kind() {
		return false
	}
	return a.s.store(v)
}

// SetInt assigns an integer through Set, so it is converted to the node's
// numeric kind.
func (a Accessor) SetInt(v int64) bool { return a.Set(Long(v)) }

// SetDouble assigns a float through Set.
func (a Accessor) SetDouble(v float64) bool { return a.Set(Double(v)) }

// SetText assigns a string; only STRING nodes accept it.
func (a Accessor) SetText(v string) bool { return a.Set(String(v)) }

// Delete removes a compound entry or list element and reports whether it
// did. Other handles are left untouched. The handle, and every copy of it,
// is invalid afterwards.
func (a Accessor) Delete() bool {
	switch s := a.s.(type) {
	case *entrySlot:
		i := s.index()
		if i < 0 {
			return false
		}
		s.c.entries = append(s.c.entries[:i], s.c.entries[i+1:]...)
		s.removed = true
		return true
	case *listSlot:
		if !s.removed && s.i < s.l.Len() {
			s.l.Remove(s.i)
			s.removed = true
			return true
		}
	}
	return false
}
