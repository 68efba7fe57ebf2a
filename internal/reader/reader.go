// Package reader implements the bounds-checked, big-endian cursor the NBT
// decoder is built on.
//
// A Reader wraps an immutable byte range and a scan position. Every read
// checks Ensure first; a read that does not fit fails with
// types.ErrTruncated and leaves the cursor where it was, so reads are
// all-or-nothing.
package reader

import (
	"fmt"
	"io"
	"math"

	"github.com/joshuapare/nbtkit/internal/buf"
	"github.com/joshuapare/nbtkit/internal/format"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Reader is a cursor over an immutable byte slice.
type Reader struct {
	data []byte
	pos  int
}

// New returns a Reader positioned at the start of b. The Reader never
// modifies b.
func New(b []byte) *Reader {
	return &Reader{data: b}
}

// Len returns the size of the underlying range.
func (r *Reader) Len() int { return len(r.data) }

// Pos returns the current scan offset.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Good reports whether at least one unread byte is left.
func (r *Reader) Good() bool { return r.pos < len(r.data) }

// Ensure reports whether n more bytes can be read. It never moves the cursor.
func (r *Reader) Ensure(n int) bool {
	return buf.Has(r.data, r.pos, n)
}

// Seek moves the cursor. whence is io.SeekStart, io.SeekCurrent or
// io.SeekEnd. The target must lie within [0, Len()].
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(r.pos)
	case io.SeekEnd:
		base = int64(len(r.data))
	default:
		return int64(r.pos), fmt.Errorf("reader: invalid whence %d", whence)
	}
	target := base + offset
	if target < 0 || target > int64(len(r.data)) {
		return int64(r.pos), fmt.Errorf("reader: seek to %d outside [0,%d]: %w", target, len(r.data), types.ErrTruncated)
	}
	r.pos = int(target)
	return target, nil
}

// take returns the next n bytes and advances, or fails without moving.
func (r *Reader) take(n int, what string) ([]byte, error) {
	b, ok := buf.Slice(r.data, r.pos, n)
	if !ok {
		return nil, fmt.Errorf("read %s (%d bytes) at offset %d: %w", what, n, r.pos, types.ErrTruncated)
	}
	r.pos += n
	return b, nil
}

// ReadU8 reads one unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1, "u8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads one signed byte.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2, "u16")
	if err != nil {
		return 0, err
	}
	return buf.U16BE(b), nil
}

// ReadI16 reads a big-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4, "u32")
	if err != nil {
		return 0, err
	}
	return buf.U32BE(b), nil
}

// ReadI32 reads a big-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads a big-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8, "u64")
	if err != nil {
		return 0, err
	}
	return buf.U64BE(b), nil
}

// ReadI64 reads a big-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads an IEEE-754 single from its big-endian bit pattern.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads an IEEE-754 double from its big-endian bit pattern.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

// ReadString reads a uint16 length followed by that many bytes. The bytes
// are not validated as UTF-8. On failure the length prefix is not consumed.
func (r *Reader) ReadString() (string, error) {
	start := r.pos
	if !r.Ensure(format.StringLenSize) {
		return "", fmt.Errorf("read string length at offset %d: %w", start, types.ErrTruncated)
	}
	n := int(buf.U16BE(r.data[start:]))
	b, ok := buf.Slice(r.data, start+format.StringLenSize, n)
	if !ok {
		return "", fmt.Errorf("read string of %d bytes at offset %d: %w", n, start, types.ErrTruncated)
	}
	r.pos = start + format.StringLenSize + n
	return string(b), nil
}

// ReadKind reads one byte as a tag kind. The value is not validated.
func (r *Reader) ReadKind() (types.Kind, error) {
	v, err := r.ReadU8()
	return types.Kind(v), err
}

// ReadBytes returns a copy of the next n bytes. Decoded trees must never
// alias the input, which may be an mmapped file.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("read %d bytes at offset %d: %w", n, r.pos, types.ErrTruncated)
	}
	b, err := r.take(n, "bytes")
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Peek returns the next n bytes without advancing. The slice aliases the
// underlying buffer and must not be retained.
func (r *Reader) Peek(n int) ([]byte, bool) {
	return buf.Slice(r.data, r.pos, n)
}
