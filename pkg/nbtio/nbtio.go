package nbtio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joshuapare/nbtkit/internal/logger"
	"github.com/joshuapare/nbtkit/internal/mmfile"
	"github.com/joshuapare/nbtkit/internal/writer"
	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/compress"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// ReadOptions controls ReadFile and Read.
type ReadOptions struct {
	// Decode is passed to the codec. Decode.Limits.MaxInputSize also bounds
	// the decompressed size.
	Decode types.DecodeOptions

	// Compression forces a framing instead of detecting it. Nil detects.
	Compression *compress.Format
}

// WriteOptions controls WriteFile, Write and File.Save.
type WriteOptions struct {
	// Encode is passed to the codec.
	Encode types.EncodeOptions

	// Compression frames the output. Save ignores it unless Override is set
	// and uses the compression the file was read with.
	Compression compress.Format
	Override    bool

	// Level is the compression level. Zero selects compress.DefaultLevel.
	Level int

	// Mode is the permission of a newly written file. Zero keeps the mode
	// of an existing file, or uses writer.DefaultFileMode.
	Mode os.FileMode

	// Backup copies the existing file to <path>.bak before replacing it.
	Backup bool
}

func (o *WriteOptions) level() int {
	if o.Level == 0 {
		return compress.DefaultLevel
	}
	return o.Level
}

// File is a tree together with where it came from.
type File struct {
	Path        string
	Compression compress.Format
	Tree        *nbt.Tree
}

// Save writes f back to f.Path with the compression it was read with.
func (f *File) Save(opts *WriteOptions) error {
	o := WriteOptions{}
	if opts != nil {
		o = *opts
	}
	if !o.Override {
		o.Compression = f.Compression
	}
	return WriteFile(f.Path, f.Tree, &o)
}

// Decode strips any compression framing from data and decodes the tree.
func Decode(data []byte, opts *ReadOptions) (*nbt.Tree, compress.Format, error) {
	o := ReadOptions{}
	if opts != nil {
		o = *opts
	}
	limit := o.Decode.Limits.OrDefault().MaxInputSize

	format := compress.Detect(data)
	if o.Compression != nil {
		format = *o.Compression
	}
	raw, err := compress.DecompressFormat(data, format, limit)
	if err != nil {
		return nil, format, err
	}
	t, err := nbt.LoadWithOptions(raw, o.Decode)
	if err != nil {
		return nil, format, err
	}
	return t, format, nil
}

// Encode encodes t and frames it as opts.Compression.
func Encode(t *nbt.Tree, opts *WriteOptions) ([]byte, error) {
	o := WriteOptions{}
	if opts != nil {
		o = *opts
	}
	raw, err := nbt.DumpWithOptions(t, o.Encode)
	if err != nil {
		return nil, err
	}
	return compress.Compress(raw, o.Compression, o.level())
}

// ReadFile maps path, detects its compression and decodes it.
func ReadFile(path string, opts *ReadOptions) (*File, error) {
	start := time.Now()
	region, err := mmfile.Open(path, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer region.Close()

	t, format, err := Decode(region.Bytes(), opts)
	if err != nil {
		logger.Debug("nbtio: decode failed", "path", path, "compression", format.String(), "error", err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("nbtio: read",
		"path", path,
		"bytes", region.Len(),
		"mapped", region.Mapped(),
		"compression", format.String(),
		"root", t.Kind().String(),
		"elapsed", time.Since(start),
	)
	return &File{Path: path, Compression: format, Tree: t}, nil
}

// WriteFile encodes t and atomically replaces path with the result.
func WriteFile(path string, t *nbt.Tree, opts *WriteOptions) error {
	o := WriteOptions{}
	if opts != nil {
		o = *opts
	}
	data, err := Encode(t, &o)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	mode := o.Mode
	if st, statErr := os.Stat(path); statErr == nil {
		if mode == 0 {
			mode = st.Mode().Perm()
		}
		if o.Backup {
			if err := backup(path, st.Mode().Perm()); err != nil {
				return err
			}
		}
	}

	var sink writer.Sink = &writer.FileWriter{Path: path, Mode: mode}
	if err := sink.WriteTree(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Debug("nbtio: wrote", "path", path, "bytes", len(data), "compression", o.Compression.String())
	return nil
}

func backup(path string, mode os.FileMode) error {
	old, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	bak := &writer.FileWriter{Path: path + ".bak", Mode: mode}
	if err := bak.WriteTree(old); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return nil
}

// Read decodes one tree from r, detecting its compression.
func Read(r io.Reader, opts *ReadOptions) (*nbt.Tree, compress.Format, error) {
	o := ReadOptions{}
	if opts != nil {
		o = *opts
	}
	limit := o.Decode.Limits.OrDefault().MaxInputSize
	src := r
	if limit > 0 {
		// compressed input is never larger than what it inflates to by
		// more than the framing overhead
		src = io.LimitReader(r, int64(limit)+1<<16)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, compress.None, fmt.Errorf("read: %w", err)
	}
	return Decode(data, &o)
}

// Write encodes t, frames it and writes it to w.
func Write(w io.Writer, t *nbt.Tree, opts *WriteOptions) error {
	data, err := Encode(t, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Info describes a file without keeping its tree.
type Info struct {
	Path        string
	Size        int64
	RawSize     int
	Compression compress.Format
	Name        string
	RootKind    types.Kind
	Stats       nbt.Stats
}

// Stat reads path and summarizes it.
func Stat(path string, opts *ReadOptions) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	f, err := ReadFile(path, opts)
	if err != nil {
		return Info{}, err
	}
	raw, err := nbt.DumpWithOptions(f.Tree, types.EncodeOptions{Limits: types.RelaxedLimits()})
	if err != nil {
		return Info{}, err
	}
	stats, err := nbt.Inspect(f.Tree)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Path:        path,
		Size:        st.Size(),
		RawSize:     len(raw),
		Compression: f.Compression,
		Name:        f.Tree.Name,
		RootKind:    f.Tree.Kind(),
		Stats:       stats,
	}, nil
}
