//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps the file at path read-only. Files larger than max bytes are
// rejected before mapping; max <= 0 means no bound. Empty files yield an
// empty, unmapped Region.
func Open(path string, max int64) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // the mapping keeps the pages alive

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := st.Size()
	if err := checkSize(path, size, max); err != nil {
		return nil, err
	}
	if size == 0 || !st.Mode().IsRegular() {
		// pipes and devices cannot be mapped
		return readAll(path, max)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmfile: mmap %s: %w", path, err)
	}
	// decoding is a single front-to-back pass
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return &Region{data: data, unmap: munmap}, nil
}

func munmap(data []byte) error {
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}
