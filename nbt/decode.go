package nbt

import (
	"fmt"
	"io"

	"github.com/joshuapare/nbtkit/internal/buf"
	"github.com/joshuapare/nbtkit/internal/format"
	"github.com/joshuapare/nbtkit/internal/reader"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Load decodes one uncompressed tree from data with default options.
func Load(data []byte) (*Tree, error) {
	return LoadWithOptions(data, types.DecodeOptions{})
}

// LoadWithOptions decodes one uncompressed tree from data.
//
// Decoding is all-or-nothing: on any error no tree is returned. Errors wrap
// the types sentinels (ErrTruncated, ErrInvalidKind, ErrTooDeep, ErrLimit,
// ErrTrailingData) and name the offset and entry path where decoding
// stopped. The decoded tree never aliases data.
func LoadWithOptions(data []byte, opts types.DecodeOptions) (*Tree, error) {
	limits := opts.Limits.OrDefault()
	if !types.Allows(limits.MaxInputSize, len(data)) {
		return nil, fmt.Errorf("input of %d bytes exceeds %d: %w", len(data), limits.MaxInputSize, types.ErrLimit)
	}
	d := &decoder{r: reader.New(data), limits: limits, maxDepth: limits.Depth()}
	t, err := d.tree(opts.NamelessRoot)
	if err != nil {
		return nil, err
	}
	if opts.RejectTrailing && d.r.Good() {
		return nil, fmt.Errorf("%d bytes after root tag at offset %d: %w", d.r.Remaining(), d.r.Pos(), types.ErrTrailingData)
	}
	return t, nil
}

// Read drains r and decodes the bytes as one uncompressed tree. At most
// Limits.MaxInputSize bytes are read.
func Read(r io.Reader, opts types.DecodeOptions) (*Tree, error) {
	limits := opts.Limits.OrDefault()
	if limits.MaxInputSize > 0 {
		r = io.LimitReader(r, int64(limits.MaxInputSize)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	return LoadWithOptions(data, opts)
}

// decoder is a recursive descent over one input buffer.
type decoder struct {
	r        *reader.Reader
	limits   types.Limits
	maxDepth int
	depth    int
}

func (d *decoder) tree(nameless bool) (*Tree, error) {
	k, err := d.r.ReadKind()
	if err != nil {
		return nil, fmt.Errorf("root kind: %w", err)
	}
	if k == types.KindNone || !k.Valid() {
		return nil, fmt.Errorf("root kind %s: %w", k, types.ErrInvalidKind)
	}
	var name string
	if !nameless {
		if name, err = d.r.ReadString(); err != nil {
			return nil, fmt.Errorf("root name: %w", err)
		}
	}
	v, err := d.payload(k)
	if err != nil {
		return nil, err
	}
	return &Tree{Name: name, Root: v}, nil
}

// enter descends one LIST/COMPOUND level. Every successful enter must be
// paired with leave.
func (d *decoder) enter() error {
	if d.depth >= d.maxDepth {
		return fmt.Errorf("depth %d at offset %d: %w", d.depth+1, d.r.Pos(), types.ErrTooDeep)
	}
	d.depth++
	return nil
}

func (d *decoder) leave() { d.depth-- }

// count reads an element count and checks it against limit and against the
// bytes left, assuming each element takes at least minSize bytes. Nothing
// is allocated for a count that cannot fit.
func (d *decoder) count(k types.Kind, minSize, limit int) (int, error) {
	off := d.r.Pos()
	n32, err := d.r.ReadI32()
	if err != nil {
		return 0, fmt.Errorf("%s count: %w", k, err)
	}
	n := int(n32)
	if n >= 0 && !types.Allows(limit, n) {
		return 0, fmt.Errorf("%s count %d at offset %d exceeds %d: %w", k, n, off, limit, types.ErrLimit)
	}
	if _, err := buf.CheckCount(d.r.Len(), d.r.Pos(), n, minSize); err != nil {
		return 0, fmt.Errorf("%s count %d at offset %d: %w", k, n, off, err)
	}
	return n, nil
}

func (d *decoder) payload(k types.Kind) (Value, error) {
	switch k {
	case types.KindByte:
		v, err := d.r.ReadI8()
		return Byte(v), err
	case types.KindShort:
		v, err := d.r.ReadI16()
		return Short(v), err
	case types.KindInt:
		v, err := d.r.ReadI32()
		return Int(v), err
	case types.KindLong:
		v, err := d.r.ReadI64()
		return Long(v), err
	case types.KindFloat:
		v, err := d.r.ReadF32()
		return Float(v), err
	case types.KindDouble:
		v, err := d.r.ReadF64()
		return Double(v), err
	case types.KindString:
		v, err := d.r.ReadString()
		return String(v), err
	case types.KindByteArray:
		n, err := d.arrayCount(k)
		if err != nil {
			return nil, err
		}
		b, err := d.r.ReadBytes(n)
		return ByteArray(b), err
	case types.KindIntArray:
		return d.intArray()
	case types.KindLongArray:
		return d.longArray()
	case types.KindList:
		return d.list()
	case types.KindCompound:
		return d.compound()
	}
	return nil, fmt.Errorf("kind %s at offset %d: %w", k, d.r.Pos(), types.ErrInvalidKind)
}

// arrayCount reads the element count of an array of kind k.
func (d *decoder) arrayCount(k types.Kind) (int, error) {
	size, _ := format.ArrayElemSize(k)
	return d.count(k, size, d.limits.MaxArrayLen)
}

func (d *decoder) intArray() (Value, error) {
	n, err := d.arrayCount(types.KindIntArray)
	if err != nil {
		return nil, err
	}
	out := make(IntArray, n)
	for i := range out {
		if out[i], err = d.r.ReadI32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *decoder) longArray() (Value, error) {
	n, err := d.arrayCount(types.KindLongArray)
	if err != nil {
		return nil, err
	}
	out := make(LongArray, n)
	for i := range out {
		if out[i], err = d.r.ReadI64(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *decoder) list() (Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	off := d.r.Pos()
	ek, err := d.r.ReadKind()
	if err != nil {
		return nil, fmt.Errorf("list element kind: %w", err)
	}
	if !ek.Valid() {
		return nil, fmt.Errorf("list element kind %s at offset %d: %w", ek, off, types.ErrInvalidKind)
	}
	n, err := d.count(types.KindList, format.MinPayloadSize(ek), d.limits.MaxListLen)
	if err != nil {
		return nil, err
	}
	if n == 0 || ek == types.KindNone {
		return &List{}, nil
	}
	data := newSequence(ek, n)
	for i := 0; i < n; i++ {
		v, err := d.payload(ek)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		data.insert(i, v)
	}
	return &List{data: data}, nil
}

func (d *decoder) compound() (Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	c := &Compound{}
	for {
		off := d.r.Pos()
		k, err := d.r.ReadKind()
		if err != nil {
			return nil, fmt.Errorf("compound entry %d: %w", c.Len(), err)
		}
		if k == types.KindNone {
			return c, nil
		}
		if !k.Valid() {
			return nil, fmt.Errorf("compound entry %d kind %s at offset %d: %w", c.Len(), k, off, types.ErrInvalidKind)
		}
		if !types.Allows(d.limits.MaxCompoundEntries, c.Len()+1) {
			return nil, fmt.Errorf("compound at offset %d has more than %d entries: %w", off, d.limits.MaxCompoundEntries, types.ErrLimit)
		}
		name, err := d.r.ReadString()
		if err != nil {
			return nil, fmt.Errorf("compound entry %d name: %w", c.Len(), err)
		}
		v, err := d.payload(k)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		c.entries = append(c.entries, Entry{Name: name, Value: v})
	}
}
