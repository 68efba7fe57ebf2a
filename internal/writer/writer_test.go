package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/internal/reader"
	"github.com/joshuapare/nbtkit/pkg/types"
)

func TestBuffer_BigEndian(t *testing.T) {
	w := NewBuffer(0)
	w.WriteI8(-2)
	w.WriteU16(0x0102)
	w.WriteI32(20)
	w.WriteI64(-1)
	w.WriteKind(types.KindCompound)

	require.Equal(t, []byte{
		0xFE,
		0x01, 0x02,
		0x00, 0x00, 0x00, 0x14,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0x0A,
	}, w.Bytes())
	require.Equal(t, 16, w.Len())
}

func TestBuffer_FloatsRoundTripThroughReader(t *testing.T) {
	w := NewBuffer(16)
	w.WriteF32(1.5)
	w.WriteF64(-3.9)

	r := reader.New(w.Bytes())
	f, err := r.ReadF32()
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f)
	d, err := r.ReadF64()
	require.NoError(t, err)
	require.Equal(t, -3.9, d)
}

func TestBuffer_String(t *testing.T) {
	w := NewBuffer(0)
	require.NoError(t, w.WriteString("hp"))
	require.Equal(t, []byte{0x00, 0x02, 'h', 'p'}, w.Bytes())

	w.Reset()
	require.NoError(t, w.WriteString(""))
	require.Equal(t, []byte{0x00, 0x00}, w.Bytes())
}

func TestBuffer_StringTooLong(t *testing.T) {
	w := NewBuffer(0)
	require.NoError(t, w.WriteString(strings.Repeat("a", 65535)))
	n := w.Len()

	err := w.WriteString(strings.Repeat("a", 65536))
	require.ErrorIs(t, err, types.ErrStringTooLong)
	require.Equal(t, n, w.Len(), "failed write must not append")
}

func TestBuffer_CountAndTruncate(t *testing.T) {
	w := NewBuffer(0)
	require.NoError(t, w.WriteCount(3))
	require.Error(t, w.WriteCount(-1))
	require.Equal(t, 4, w.Len())

	w.WriteBytes([]byte{9, 9})
	w.Truncate(4)
	require.Equal(t, []byte{0, 0, 0, 3}, w.Bytes())
}

func TestFileWriter_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.dat")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	var sink Sink = &FileWriter{Path: path}
	require.NoError(t, sink.WriteTree([]byte("new contents")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new contents", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must be renamed away")
}

func TestFileWriter_MissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "missing", "x.nbt")}
	require.Error(t, w.WriteTree([]byte{0}))
}
