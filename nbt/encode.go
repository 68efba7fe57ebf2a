package nbt

import (
	"fmt"
	"io"

	"github.com/joshuapare/nbtkit/internal/format"
	"github.com/joshuapare/nbtkit/internal/writer"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Dump encodes t with default options.
func Dump(t *Tree) ([]byte, error) {
	return DumpWithOptions(t, types.EncodeOptions{})
}

// DumpWithOptions encodes t into a new uncompressed buffer.
func DumpWithOptions(t *Tree, opts types.EncodeOptions) ([]byte, error) {
	hint := opts.SizeHint
	if hint <= 0 {
		hint = writer.DefaultCapacity
	}
	out, err := AppendTree(make([]byte, 0, hint), t, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendTree appends the encoding of t to dst and returns the extended
// slice. On error dst is returned unchanged, so a failed encode never leaves
// a half-written tree behind.
//
// Encoding fails with types.ErrInvalidKind for a nil root or nil compound
// entry, types.ErrStringTooLong for names and strings over 65535 bytes,
// types.ErrLimit for counts that do not fit in an int32 and
// types.ErrTooDeep for nesting (or a cycle) beyond Limits.MaxDepth.
func AppendTree(dst []byte, t *Tree, opts types.EncodeOptions) ([]byte, error) {
	if t == nil || !present(t.Root) {
		return dst, fmt.Errorf("encode root: %w", types.ErrInvalidKind)
	}
	start := len(dst)
	e := &encoder{w: writer.Wrap(dst), maxDepth: opts.Limits.OrDefault().Depth()}
	if err := e.tree(t, opts.NamelessRoot); err != nil {
		e.w.Truncate(start)
		return e.w.Bytes(), err
	}
	return e.w.Bytes(), nil
}

// Write encodes t and writes the bytes to w in one call.
func Write(w io.Writer, t *Tree, opts types.EncodeOptions) error {
	b, err := DumpWithOptions(t, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

type encoder struct {
	w        *writer.Buffer
	maxDepth int
	depth    int
}

func (e *encoder) tree(t *Tree, nameless bool) error {
	e.w.WriteKind(t.Root.Kind())
	if !nameless {
		if err := e.w.WriteString(t.Name); err != nil {
			return fmt.Errorf("root name: %w", err)
		}
	}
	return e.payload(t.Root)
}

func (e *encoder) enter() error {
	if e.depth >= e.maxDepth {
		return fmt.Errorf("depth %d: %w", e.depth+1, types.ErrTooDeep)
	}
	e.depth++
	return nil
}

func (e *encoder) leave() { e.depth-- }

func (e *encoder) payload(v Value) error {
	switch x := v.(type) {
	case Byte:
		e.w.WriteI8(int8(x))
	case Short:
		e.w.WriteI16(int16(x))
	case Int:
		e.w.WriteI32(int32(x))
	case Long:
		e.w.WriteI64(int64(x))
	case Float:
		e.w.WriteF32(float32(x))
	case Double:
		e.w.WriteF64(float64(x))
	case String:
		return e.w.WriteString(string(x))
	case ByteArray:
		if err := e.w.WriteCount(len(x)); err != nil {
			return err
		}
		e.w.WriteBytes(x)
	case IntArray:
		if err := e.w.WriteCount(len(x)); err != nil {
			return err
		}
		for _, n := range x {
			e.w.WriteI32(n)
		}
	case LongArray:
		if err := e.w.WriteCount(len(x)); err != nil {
			return err
		}
		for _, n := range x {
			e.w.WriteI64(n)
		}
	case *List:
		return e.list(x)
	case *Compound:
		return e.compound(x)
	default:
		return fmt.Errorf("encode %T: %w", v, types.ErrInvalidKind)
	}
	return nil
}

// list writes the declared element kind even for an empty list.
func (e *encoder) list(l *List) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	e.w.WriteKind(l.ElemKind())
	if err := e.w.WriteCount(l.Len()); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	for i := 0; i < l.Len(); i++ {
		if err := e.payload(l.data.at(i)); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

func (e *encoder) compound(c *Compound) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	for _, ent := range c.Entries() {
		if !present(ent.Value) {
			return fmt.Errorf("%q: nil value: %w", ent.Name, types.ErrInvalidKind)
		}
		e.w.WriteKind(ent.Value.Kind())
		if err := e.w.WriteString(ent.Name); err != nil {
			return fmt.Errorf("entry name: %w", err)
		}
		if err := e.payload(ent.Value); err != nil {
			return fmt.Errorf("%q: %w", ent.Name, err)
		}
	}
	e.w.WriteU8(format.EndTag)
	return nil
}
