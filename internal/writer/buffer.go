package writer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/joshuapare/nbtkit/internal/format"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// DefaultCapacity is the initial reservation used by NewBuffer(0). It is a
// sizing hint only.
const DefaultCapacity = 4 << 10

// Buffer is a growable big-endian encoder appending to an in-memory slice.
type Buffer struct {
	buf []byte
}

// NewBuffer returns an empty Buffer with capacity reserved up front.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Wrap returns a Buffer appending to dst. dst's existing bytes are kept.
func Wrap(dst []byte) *Buffer {
	return &Buffer{buf: dst}
}

// Bytes returns the encoded bytes. The slice aliases the Buffer until the
// next write or Reset.
func (w *Buffer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written.
func (w *Buffer) Len() int { return len(w.buf) }

// Reset empties the Buffer, keeping its capacity.
func (w *Buffer) Reset() { w.buf = w.buf[:0] }

// Truncate drops everything written after n bytes. Encoders use it to roll
// back a partially written value on error.
func (w *Buffer) Truncate(n int) {
	if n >= 0 && n < len(w.buf) {
		w.buf = w.buf[:n]
	}
}

func (w *Buffer) WriteU8(v uint8) { w.buf = append(w.buf, v) }

func (w *Buffer) WriteI8(v int8) { w.buf = append(w.buf, byte(v)) }

func (w *Buffer) WriteU16(v uint16) { w.buf = binary.BigEndian.AppendUint16(w.buf, v) }

func (w *Buffer) WriteI16(v int16) { w.WriteU16(uint16(v)) }

func (w *Buffer) WriteU32(v uint32) { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }

func (w *Buffer) WriteI32(v int32) { w.WriteU32(uint32(v)) }

func (w *Buffer) WriteU64(v uint64) { w.buf = binary.BigEndian.AppendUint64(w.buf, v) }

func (w *Buffer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

// WriteF32 writes the IEEE-754 bit pattern of v.
func (w *Buffer) WriteF32(v float32) { w.WriteU32(math.Float32bits(v)) }

// WriteF64 writes the IEEE-754 bit pattern of v.
func (w *Buffer) WriteF64(v float64) { w.WriteU64(math.Float64bits(v)) }

// WriteKind writes the one-byte code of k.
func (w *Buffer) WriteKind(k types.Kind) { w.buf = append(w.buf, byte(k)) }

// WriteBytes appends raw bytes.
func (w *Buffer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// WriteString appends a uint16 byte length followed by the bytes of s. A
// string longer than 65535 bytes fails with types.ErrStringTooLong and
// nothing is written.
func (w *Buffer) WriteString(s string) error {
	if len(s) > format.MaxStringLen {
		return fmt.Errorf("write string of %d bytes: %w", len(s), types.ErrStringTooLong)
	}
	w.WriteU16(uint16(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

// WriteCount writes an int32 element count, failing when n does not fit.
func (w *Buffer) WriteCount(n int) error {
	if n < 0 || n > format.MaxCount {
		return fmt.Errorf("write count %d: %w", n, types.ErrLimit)
	}
	w.WriteI32(int32(n))
	return nil
}
