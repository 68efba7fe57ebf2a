package nbt

import (
	"iter"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// Entry is one named member of a Compound.
type Entry struct {
	Name  string
	Value Value
}

// Compound is an ordered sequence of named values. Insertion order is kept
// and survives encoding. Lookups are linear and return the first entry with
// a matching name.
//
// Names are expected to be unique. Set keeps them unique; NewCompound and
// the decoder keep whatever they are given, duplicates included.
type Compound struct {
	entries []Entry
}

// NewCompound returns a compound holding entries in the given order. The
// caller is responsible for name uniqueness.
func NewCompound(entries ...Entry) *Compound {
	return &Compound{entries: entries}
}

// Kind always returns KindCompound.
func (*Compound) Kind() types.Kind { return types.KindCompound }

func (*Compound) value() {}

// Len returns the number of entries.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Index returns the position of the first entry named name, or -1.
func (c *Compound) Index(name string) int {
	if c == nil {
		return -1
	}
	for i := range c.entries {
		if c.entries[i].Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether an entry named name exists.
func (c *Compound) Has(name string) bool { return c.Index(name) >= 0 }

// Get returns the value of the first entry named name.
func (c *Compound) Get(name string) (Value, bool) {
	i := c.Index(name)
	if i < 0 {
		return nil, false
	}
	return c.entries[i].Value, true
}

// At returns entry i.
func (c *Compound) At(i int) (Entry, bool) {
	if i < 0 || i >= c.Len() {
		return Entry{}, false
	}
	return c.entries[i], true
}

// KindOf returns the kind of the entry named name, KindNone when absent.
func (c *Compound) KindOf(name string) types.Kind {
	v, _ := c.Get(name)
	return KindOf(v)
}

// Set updates the first entry named name in place, or appends a new entry.
// The new value may have any kind. A nil value is rejected.
func (c *Compound) Set(name string, v Value) bool {
	if c == nil || !present(v) {
		return false
	}
	if i := c.Index(name); i >= 0 {
		c.entries[i].Value = v
		return true
	}
	c.entries = append(c.entries, Entry{Name: name, Value: v})
	return true
}

// Remove deletes the first entry named name and reports whether one existed.
func (c *Compound) Remove(name string) bool {
	i := c.Index(name)
	if i < 0 {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return true
}

// Clear removes every entry.
func (c *Compound) Clear() {
	if c != nil {
		c.entries = c.entries[:0]
	}
}

// Entries returns the live entry slice. Callers may modify values in place
// but must keep names unique themselves.
func (c *Compound) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Names returns the entry names in order.
func (c *Compound) Names() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.entries[i].Name
	}
	return out
}

// All iterates over name/value pairs in order.
func (c *Compound) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i := 0; i < c.Len(); i++ {
			if !yield(c.entries[i].Name, c.entries[i].Value) {
				return
			}
		}
	}
}

// Duplicates returns the names that occur more than once, in order of their
// second occurrence. Decoded input may contain them; lookups see only the
// first.
func (c *Compound) Duplicates() []string {
	var dups []string
	seen := make(map[string]int, c.Len())
	for _, e := range c.Entries() {
		seen[e.Name]++
		if seen[e.Name] == 2 {
			dups = append(dups, e.Name)
		}
	}
	return dups
}

// Clone returns a deep copy.
func (c *Compound) Clone() *Compound {
	out := &Compound{entries: make([]Entry, c.Len())}
	for i, e := range c.Entries() {
		out.entries[i] = Entry{Name: e.Name, Value: Clone(e.Value)}
	}
	return out
}

// Equal compares entries pairwise, in order.
func (c *Compound) Equal(o *Compound) bool {
	if c.Len() != o.Len() {
		return false
	}
	for i, e := range c.Entries() {
		oe := o.entries[i]
		if e.Name != oe.Name || !Equal(e.Value, oe.Value) {
			return false
		}
	}
	return true
}

// Lookup returns the first entry named name when it holds a T. There is no
// coercion; use an Accessor for permissive numeric reads.
func Lookup[T Elem](c *Compound, name string) (T, bool) {
	v, ok := c.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
