// Package compress wraps the gzip and zlib framings NBT data is stored in.
//
// Minecraft writes level.dat and player files gzip-compressed, region chunks
// zlib-compressed, and network payloads raw. The framings are told apart by
// their first bytes. The gzip magic 0x1F is not a tag kind. A zlib header
// is any CM=8 byte with a valid window and checksum, and of those only 0x08
// (TAG_String) is also a tag kind, so Detect never reports zlib for it.
package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// Format identifies a compression framing.
type Format uint8

const (
	None Format = iota
	Gzip
	Zlib
)

// DefaultLevel selects the codec's default speed/size tradeoff.
const DefaultLevel = gzip.DefaultCompression

func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseFormat accepts none/raw, gzip/gz and zlib, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "raw", "":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	}
	return None, fmt.Errorf("compression %q: %w", s, types.ErrUnsupportedCompression)
}

// Detect guesses the framing of b from its header.
func Detect(b []byte) Format {
	if len(b) >= 2 && b[0] == 0x1F && b[1] == 0x8B {
		return Gzip
	}
	// RFC 1950: CM=8, CINFO<=7 and the header checksum divides by 31.
	// CINFO=0 would make 0x08 a STRING root with a long name.
	if len(b) >= 2 && b[0]&0x0F == 8 && b[0]>>4 <= 7 && b[0] != 0x08 &&
		(uint16(b[0])<<8|uint16(b[1]))%31 == 0 {
		return Zlib
	}
	return None
}

// Decompress detects the framing of b and inflates it. Output larger than
// max bytes fails with types.ErrLimit; max <= 0 means no bound.
// Uncompressed input is returned as-is.
func Decompress(b []byte, max int) ([]byte, Format, error) {
	f := Detect(b)
	out, err := DecompressFormat(b, f, max)
	return out, f, err
}

// DecompressFormat inflates b, which must be framed as f.
func DecompressFormat(b []byte, f Format, max int) ([]byte, error) {
	var r io.ReadCloser
	var err error
	switch f {
	case None:
		if max > 0 && len(b) > max {
			return nil, fmt.Errorf("input of %d bytes exceeds %d: %w", len(b), max, types.ErrLimit)
		}
		return b, nil
	case Gzip:
		r, err = gzip.NewReader(bytes.NewReader(b))
	case Zlib:
		r, err = zlib.NewReader(bytes.NewReader(b))
	default:
		return nil, fmt.Errorf("decompress %s: %w", f, types.ErrUnsupportedCompression)
	}
	if err != nil {
		return nil, fmt.Errorf("%s header: %w", f, err)
	}
	defer r.Close()

	var src io.Reader = r
	if max > 0 {
		src = io.LimitReader(r, int64(max)+1)
	}
	out, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%s stream: %w", f, err)
	}
	if max > 0 && len(out) > max {
		return nil, fmt.Errorf("%s stream inflates past %d bytes: %w", f, max, types.ErrLimit)
	}
	return out, nil
}

// Compress frames b as f at the given level (DefaultLevel, or 0-9).
func Compress(b []byte, f Format, level int) ([]byte, error) {
	if f == None {
		return b, nil
	}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, f, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(b); err != nil {
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", f, err)
	}
	return buf.Bytes(), nil
}

// NewWriter returns a WriteCloser framing everything written to it as f.
// For None it passes writes through and Close is a no-op.
func NewWriter(w io.Writer, f Format, level int) (io.WriteCloser, error) {
	switch f {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		zw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, fmt.Errorf("gzip level %d: %w", level, err)
		}
		return zw, nil
	case Zlib:
		zw, err := zlib.NewWriterLevel(w, level)
		if err != nil {
			return nil, fmt.Errorf("zlib level %d: %w", level, err)
		}
		return zw, nil
	}
	return nil, fmt.Errorf("compress %s: %w", f, types.ErrUnsupportedCompression)
}

// NewReader returns a reader inflating r, detecting the framing from the
// first bytes. The returned Format is what was detected.
func NewReader(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(2)
	f := Detect(head)
	switch f {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, f, fmt.Errorf("gzip header: %w", err)
		}
		return zr, f, nil
	case Zlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, f, fmt.Errorf("zlib header: %w", err)
		}
		return zr, f, nil
	}
	return io.NopCloser(br), None, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
