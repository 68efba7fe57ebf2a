// Package printer renders NBT trees for people and for other tools.
//
// Four formats are supported:
//
//   - text: indented, one value per line, optionally colored
//   - json: an ordered JSON document
//   - yaml: the same document as YAML
//   - snbt: Minecraft's stringified NBT, as accepted by in-game commands
//
// JSON and YAML keep compound entry order. With ShowTypes they wrap every
// value as {type, value} so the document can be mapped back to kinds;
// without it they emit plain values.
package printer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/types"
)

const (
	DefaultIndentSize    = 2
	DefaultMaxDepth      = 0
	DefaultMaxArrayItems = 16
)

// Format specifies the output format.
type Format string

const (
	// FormatText outputs the indented human-readable form.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"

	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"

	// FormatSNBT outputs stringified NBT on a single line.
	FormatSNBT Format = "snbt"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatSNBT:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json, yaml or snbt)", s)
}

// Options controls printing behavior.
type Options struct {
	// Format specifies the output format.
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per level (text, json, yaml).
	// Default: 2
	IndentSize int

	// MaxDepth stops descending into lists and compounds below this depth;
	// the root is depth 1. Zero means unlimited. Text, JSON and YAML
	// replace elided containers with a summary. SNBT ignores it.
	// Default: 0
	MaxDepth int

	// ShowTypes includes tag kinds in text output and wraps JSON/YAML
	// values with their kind.
	// Default: true
	ShowTypes bool

	// MaxArrayItems limits how many array elements text output shows.
	// Zero shows all.
	// Default: 16
	MaxArrayItems int

	// Color enables ANSI colors in text output.
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxDepth:      DefaultMaxDepth,
		ShowTypes:     true,
		MaxArrayItems: DefaultMaxArrayItems,
		Color:         false,
	}
}

// Printer writes trees and values to a writer.
type Printer struct {
	opts   Options
	writer io.Writer
	pal    palette
}

// New creates a Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintTree(tree)
func New(w io.Writer, opts Options) *Printer {
	if opts.IndentSize < 0 {
		opts.IndentSize = 0
	}
	return &Printer{opts: opts, writer: w, pal: newPalette(opts.Color)}
}

// PrintTree prints a whole tree, root name included.
func (p *Printer) PrintTree(t *nbt.Tree) error {
	if t == nil || t.Root == nil {
		return fmt.Errorf("print: empty tree: %w", types.ErrInvalidKind)
	}
	switch p.opts.Format {
	case FormatJSON, FormatYAML:
		d, err := p.rootData(t)
		if err != nil {
			return err
		}
		return p.printData(d)
	case FormatSNBT:
		return p.printSNBT(t.Root)
	default:
		return p.printText(quoteLabel(t.Name), t.Root)
	}
}

// PrintValue prints one value under a label, as found by a path lookup.
func (p *Printer) PrintValue(name string, v nbt.Value) error {
	if v == nil {
		return fmt.Errorf("print %q: %w", name, types.ErrInvalidKind)
	}
	switch p.opts.Format {
	case FormatJSON, FormatYAML:
		d, err := p.data(make(ancestors), v, 1)
		if err != nil {
			return err
		}
		return p.printData(d)
	case FormatSNBT:
		return p.printSNBT(v)
	default:
		return p.printText(quoteLabel(name), v)
	}
}

func (p *Printer) printData(d any) error {
	if p.opts.Format == FormatYAML {
		return p.printYAML(d)
	}
	return p.printJSON(d)
}

func (p *Printer) printSNBT(v nbt.Value) error {
	s, err := SNBT(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.writer, s)
	return err
}

// ancestors holds the lists and compounds on the path being printed. A
// container met again below itself, or nesting past types.MaxDepthHard,
// fails with types.ErrTooDeep.
type ancestors map[nbt.Value]struct{}

func (g ancestors) enter(v nbt.Value, depth int) error {
	if depth > types.MaxDepthHard {
		return fmt.Errorf("print: depth %d: %w", depth, types.ErrTooDeep)
	}
	if _, ok := g[v]; ok {
		return fmt.Errorf("print: depth %d: %s contains itself: %w", depth, v.Kind(), types.ErrTooDeep)
	}
	g[v] = struct{}{}
	return nil
}

func (g ancestors) leave(v nbt.Value) { delete(g, v) }

// display returns s as valid UTF-8. Strings written by old tools may hold
// Latin-1 bytes; those are decoded as ISO-8859-1 rather than mangled.
func display(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "�")
	}
	return out
}

// quoteLabel returns name bare when it is a plain identifier.
func quoteLabel(name string) string {
	if bareKey(name) {
		return name
	}
	return fmt.Sprintf("%q", display(name))
}

// bareKey reports whether name can be written unquoted in SNBT: non-empty
// and made only of [0-9A-Za-z_.+-].
func bareKey(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c == '_' || c == '.' || c == '+' || c == '-':
		default:
			return false
		}
	}
	return true
}
