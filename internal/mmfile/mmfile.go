// Package mmfile provides read-only views of NBT files on disk.
//
// On Unix the file is memory-mapped; elsewhere it is read into memory. In
// both cases callers get a Region whose bytes stay valid until Close.
// Decoded trees never alias a Region, so it can be closed as soon as
// decoding returns.
package mmfile

import (
	"fmt"
	"os"
)

// Region is the content of one file.
type Region struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the file content. The slice is read-only and invalid after
// Close.
func (r *Region) Bytes() []byte { return r.data }

// Len returns the file size.
func (r *Region) Len() int { return len(r.data) }

// Mapped reports whether the bytes are backed by a memory mapping.
func (r *Region) Mapped() bool { return r.unmap != nil }

// Close releases the region. It is safe to call more than once.
func (r *Region) Close() error {
	if r == nil {
		return nil
	}
	data, unmap := r.data, r.unmap
	r.data, r.unmap = nil, nil
	if unmap == nil {
		return nil
	}
	return unmap(data)
}

// checkSize rejects files larger than max bytes. A max of zero or less
// means no bound.
func checkSize(path string, size, max int64) error {
	if max > 0 && size > max {
		return fmt.Errorf("mmfile: %s is %d bytes, limit is %d", path, size, max)
	}
	if size > int64(^uint(0)>>1) {
		return fmt.Errorf("mmfile: %s too large to map (%d bytes)", path, size)
	}
	return nil
}

// readAll is the portable path: the whole file in one heap buffer.
func readAll(path string, max int64) (*Region, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := checkSize(path, st.Size(), max); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Region{data: data}, nil
}
