package nbt

import (
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Tree is a named root value: the unit that is encoded and decoded. The
// conventional root is a compound with an empty name, but any kind is
// allowed.
//
// A Tree owns everything reachable from Root. Copying a Tree value copies
// the reference, not the content; use Clone for an independent copy.
type Tree struct {
	Name string
	Root Value
}

// NewTree returns a tree named name holding root.
func NewTree(root Value, name string) *Tree {
	return &Tree{Name: name, Root: root}
}

// NewCompoundTree returns an unnamed tree whose root is an empty compound.
func NewCompoundTree() *Tree {
	return &Tree{Root: NewCompound()}
}

// Accessor returns a handle to the root. Assigning through it with Replace
// changes the root value.
func (t *Tree) Accessor() Accessor {
	if t == nil {
		return Accessor{}
	}
	return Accessor{s: rootSlot{t: t}}
}

// Kind returns the kind of the root value.
func (t *Tree) Kind() types.Kind {
	if t == nil {
		return types.KindNone
	}
	return KindOf(t.Root)
}

// Len is Accessor().Len().
func (t *Tree) Len() int { return t.Accessor().Len() }

// Key is Accessor().Key(name).
func (t *Tree) Key(name string) Accessor { return t.Accessor().Key(name) }

// Index is Accessor().Index(i).
func (t *Tree) Index(i int) Accessor { return t.Accessor().Index(i) }

// Find is Accessor().Find(expr).
func (t *Tree) Find(expr string) (Accessor, error) { return t.Accessor().Find(expr) }

// Compound returns the root when it is a compound.
func (t *Tree) Compound() (*Compound, bool) { return t.Accessor().Compound() }

// Clone returns a deep copy.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	return &Tree{Name: t.Name, Root: Clone(t.Root)}
}

// Equal reports whether both trees have the same name and equal roots.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Name == o.Name && Equal(t.Root, o.Root)
}

// MarshalBinary encodes the tree with default options.
func (t *Tree) MarshalBinary() ([]byte, error) {
	return Dump(t)
}

// UnmarshalBinary decodes data into t with default options. On failure t is
// left unchanged.
func (t *Tree) UnmarshalBinary(data []byte) error {
	out, err := Load(data)
	if err != nil {
		return err
	}
	*t = *out
	return nil
}
