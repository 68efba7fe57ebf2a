package buf

import (
	"fmt"
	"math"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or when either operand is negative. Element counts read from the
// wire are signed, so negative operands must be rejected, not wrapped.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckCount validates that count elements of elemSize bytes fit in a buffer
// of bufLen bytes starting at offset. It returns the end offset if valid.
// Failures wrap types.ErrTruncated so decoders can surface them unchanged:
//
//	end, err := buf.CheckCount(len(data), pos, int(count), 4)
//	if err != nil {
//	    return fmt.Errorf("int array: %w", err)
//	}
func CheckCount(bufLen, offset, count, elemSize int) (int, error) {
	if offset < 0 || offset > bufLen {
		return 0, fmt.Errorf("offset %d outside buffer of %d bytes: %w", offset, bufLen, types.ErrTruncated)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count %d: %w", count, types.ErrTruncated)
	}
	total, ok := MulOverflowSafe(count, elemSize)
	if !ok {
		return 0, fmt.Errorf("count %d * size %d overflows: %w", count, elemSize, types.ErrTruncated)
	}
	end, ok := AddOverflowSafe(offset, total)
	if !ok || end > bufLen {
		return 0, fmt.Errorf("need %d bytes at offset %d, have %d: %w", total, offset, bufLen-offset, types.ErrTruncated)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
