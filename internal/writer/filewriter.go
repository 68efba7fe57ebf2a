// Package writer exposes the big-endian encoder used by the NBT codec and the
// sinks encoded bytes are handed to.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives a fully encoded (and optionally compressed) tree.
type Sink interface {
	WriteTree(buf []byte) error
}

// DefaultFileMode is used when FileWriter.Mode is zero.
const DefaultFileMode os.FileMode = 0o644

// FileWriter writes tree bytes to a filesystem path atomically.
type FileWriter struct {
	Path string
	Mode os.FileMode
}

// WriteTree writes buf to the configured path atomically via temp file + rename.
func (w *FileWriter) WriteTree(buf []byte) error {
	// Create temp file in same directory to ensure atomic rename
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".nbtkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	mode := w.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}
	if chmodErr := tmpFile.Chmod(mode); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}

	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // Don't clean up in defer

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}

	return nil
}
