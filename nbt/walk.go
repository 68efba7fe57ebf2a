package nbt

import (
	"errors"
	"fmt"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// SkipChildren may be returned by a WalkFunc to skip the children of the
// current list or compound.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every value in a tree, parents before children.
// path is only valid for the duration of the call.
type WalkFunc func(path []PathElem, v Value) error

// Walk visits the root of t and everything beneath it in encoding order.
// Walking stops at the first error fn returns, other than SkipChildren.
// Nesting deeper than types.MaxDepthHard fails with types.ErrTooDeep, so a
// tree that contains itself cannot walk forever.
func Walk(t *Tree, fn WalkFunc) error {
	if t == nil || t.Root == nil {
		return nil
	}
	w := walker{fn: fn, path: make([]PathElem, 0, 16)}
	return w.visit(t.Root)
}

type walker struct {
	fn   WalkFunc
	path []PathElem
}

func (w *walker) visit(v Value) error {
	if len(w.path) >= types.MaxDepthHard {
		return fmt.Errorf("walk %s: %w", FormatPath(w.path[:8]), types.ErrTooDeep)
	}
	err := w.fn(w.path, v)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}
	switch x := v.(type) {
	case *List:
		for i := 0; i < x.Len(); i++ {
			w.path = append(w.path, PathElem{Index: i, IsIndex: true})
			err := w.visit(x.data.at(i))
			w.path = w.path[:len(w.path)-1]
			if err != nil {
				return err
			}
		}
	case *Compound:
		for _, e := range x.Entries() {
			if e.Value == nil {
				continue
			}
			w.path = append(w.path, PathElem{Key: e.Name})
			err := w.visit(e.Value)
			w.path = w.path[:len(w.path)-1]
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes      int                // values, the root included
	ByKind     map[types.Kind]int // values per kind
	MaxDepth   int                // deepest value; the root is depth 1
	ArrayElems int                // elements across all BYTE/INT/LONG arrays
	Duplicates int                // compound entries shadowed by an earlier name
}

// Inspect walks t and returns its Stats.
func Inspect(t *Tree) (Stats, error) {
	s := Stats{ByKind: make(map[types.Kind]int)}
	err := Walk(t, func(path []PathElem, v Value) error {
		s.Nodes++
		s.ByKind[v.Kind()]++
		s.MaxDepth = max(s.MaxDepth, len(path)+1)
		switch x := v.(type) {
		case ByteArray:
			s.ArrayElems += len(x)
		case IntArray:
			s.ArrayElems += len(x)
		case LongArray:
			s.ArrayElems += len(x)
		case *Compound:
			s.Duplicates += len(duplicateEntries(x))
		}
		return nil
	})
	return s, err
}

// duplicateEntries returns the indices of entries whose name already
// appeared earlier in c.
func duplicateEntries(c *Compound) []int {
	var out []int
	seen := make(map[string]struct{}, c.Len())
	for i, e := range c.Entries() {
		if _, ok := seen[e.Name]; ok {
			out = append(out, i)
			continue
		}
		seen[e.Name] = struct{}{}
	}
	return out
}
