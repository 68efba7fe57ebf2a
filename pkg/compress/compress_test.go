package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/pkg/types"
)

var sample = []byte{
	0x0A, 0x00, 0x00,
	0x03, 0x00, 0x02, 'h', 'p', 0x00, 0x00, 0x00, 0x14,
	0x00,
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{None, Gzip, Zlib} {
		t.Run(f.String(), func(t *testing.T) {
			packed, err := Compress(sample, f, DefaultLevel)
			require.NoError(t, err)
			require.Equal(t, f, Detect(packed))

			out, got, err := Decompress(packed, 0)
			require.NoError(t, err)
			require.Equal(t, f, got)
			require.Equal(t, sample, out)
		})
	}
}

func TestDetect(t *testing.T) {
	require.Equal(t, Gzip, Detect([]byte{0x1F, 0x8B, 0x08}))
	require.Equal(t, Zlib, Detect([]byte{0x78, 0x9C}))
	require.Equal(t, Zlib, Detect([]byte{0x78, 0x01}))
	require.Equal(t, Zlib, Detect([]byte{0x78, 0xDA}))
	require.Equal(t, None, Detect([]byte{0x78, 0x00}))
	require.Equal(t, None, Detect(sample))
	require.Equal(t, None, Detect(nil))
	require.Equal(t, None, Detect([]byte{0x08, 0x1D, 0x00}), "STRING root named 7424 bytes")
	require.Equal(t, None, Detect([]byte{0x88, 0x1C}), "window larger than 32K")
}

func TestDecompress_Limit(t *testing.T) {
	big := bytes.Repeat([]byte{0}, 4096)
	for _, f := range []Format{None, Gzip, Zlib} {
		packed, err := Compress(big, f, DefaultLevel)
		require.NoError(t, err)

		_, err = DecompressFormat(packed, f, 4095)
		require.ErrorIs(t, err, types.ErrLimit, f.String())

		out, err := DecompressFormat(packed, f, 4096)
		require.NoError(t, err, f.String())
		require.Len(t, out, 4096)
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	packed, err := Compress(sample, Gzip, DefaultLevel)
	require.NoError(t, err)

	_, err = DecompressFormat(packed[:len(packed)-6], Gzip, 0)
	require.Error(t, err)

	_, err = DecompressFormat(sample, Zlib, 0)
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"none", None},
		{"RAW", None},
		{"gz", Gzip},
		{"gzip", Gzip},
		{" zlib ", Zlib},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseFormat("zstd")
	require.ErrorIs(t, err, types.ErrUnsupportedCompression)
}

func TestNewReader(t *testing.T) {
	for _, f := range []Format{None, Gzip, Zlib} {
		packed, err := Compress(sample, f, 9)
		require.NoError(t, err)

		r, got, err := NewReader(bytes.NewReader(packed))
		require.NoError(t, err)
		require.Equal(t, f, got)
		out, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.Equal(t, sample, out)
	}
}

func TestNewWriter_BadLevel(t *testing.T) {
	_, err := NewWriter(io.Discard, Gzip, 42)
	require.Error(t, err)
	_, err = NewWriter(io.Discard, Format(9), DefaultLevel)
	require.ErrorIs(t, err, types.ErrUnsupportedCompression)
}
