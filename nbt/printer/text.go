package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// palette colors the parts of a text line. All funcs are fmt.Sprint when
// color is off.
type palette struct {
	name, kind, str, num, meta func(a ...any) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{name: fmt.Sprint, kind: fmt.Sprint, str: fmt.Sprint, num: fmt.Sprint, meta: fmt.Sprint}
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		name: mk(color.FgCyan, color.Bold),
		kind: mk(color.FgYellow),
		str:  mk(color.FgGreen),
		num:  mk(color.FgMagenta),
		meta: mk(color.Faint),
	}
}

// printText writes v and its children, one line each.
func (p *Printer) printText(label string, v nbt.Value) error {
	var sb strings.Builder
	if err := p.textValue(&sb, make(ancestors), label, v, 1); err != nil {
		return err
	}
	_, err := io.WriteString(p.writer, sb.String())
	return err
}

func (p *Printer) textValue(sb *strings.Builder, g ancestors, label string, v nbt.Value, depth int) error {
	sb.WriteString(strings.Repeat(" ", (depth-1)*p.opts.IndentSize))
	sb.WriteString(p.pal.name(label))
	if p.opts.ShowTypes {
		sb.WriteString(" ")
		sb.WriteString(p.pal.kind("[" + v.Kind().String() + "]"))
	}

	switch x := v.(type) {
	case *nbt.List:
		fmt.Fprintf(sb, " %s\n", p.pal.meta(countLabel(x.Len(), "entry", "entries", x.ElemKind())))
		if !p.descend(depth) {
			return nil
		}
		if err := g.enter(x, depth); err != nil {
			return err
		}
		defer g.leave(x)
		for i, e := range x.All() {
			if err := p.textValue(sb, g, "["+strconv.Itoa(i)+"]", e, depth+1); err != nil {
				return err
			}
		}
	case *nbt.Compound:
		fmt.Fprintf(sb, " %s\n", p.pal.meta(countLabel(x.Len(), "entry", "entries", types.KindNone)))
		if !p.descend(depth) {
			return nil
		}
		if err := g.enter(x, depth); err != nil {
			return err
		}
		defer g.leave(x)
		for name, e := range x.All() {
			if e == nil {
				continue
			}
			if err := p.textValue(sb, g, quoteLabel(name), e, depth+1); err != nil {
				return err
			}
		}
	default:
		sb.WriteString(" = ")
		sb.WriteString(p.scalarText(v))
		sb.WriteByte('\n')
	}
	return nil
}

// descend reports whether children of a container at depth are printed.
func (p *Printer) descend(depth int) bool {
	return p.opts.MaxDepth <= 0 || depth < p.opts.MaxDepth
}

func countLabel(n int, one, many string, elem types.Kind) string {
	word := many
	if n == 1 {
		word = one
	}
	s := fmt.Sprintf("(%d %s", n, word)
	if elem != types.KindNone {
		s += " of " + elem.String()
	}
	return s + ")"
}

func (p *Printer) scalarText(v nbt.Value) string {
	switch x := v.(type) {
	case nbt.String:
		return p.pal.str(strconv.Quote(display(string(x))))
	case nbt.ByteArray:
		return p.arrayText(len(x), func(i int) string { return strconv.Itoa(int(int8(x[i]))) })
	case nbt.IntArray:
		return p.arrayText(len(x), func(i int) string { return strconv.FormatInt(int64(x[i]), 10) })
	case nbt.LongArray:
		return p.arrayText(len(x), func(i int) string { return strconv.FormatInt(x[i], 10) })
	}
	return p.pal.num(formatNumber(v))
}

// arrayText renders up to MaxArrayItems elements.
func (p *Printer) arrayText(n int, elem func(int) string) string {
	shown := n
	if p.opts.MaxArrayItems > 0 {
		shown = min(n, p.opts.MaxArrayItems)
	}
	parts := make([]string, shown)
	for i := range parts {
		parts[i] = p.pal.num(elem(i))
	}
	s := "[" + strings.Join(parts, ", ")
	if shown < n {
		s += ", " + p.pal.meta(fmt.Sprintf("... %d more", n-shown))
	}
	return s + "]"
}

// formatNumber renders a numeric value without a type suffix. Floats use
// the shortest representation that round-trips.
func formatNumber(v nbt.Value) string {
	switch x := v.(type) {
	case nbt.Byte:
		return strconv.Itoa(int(x))
	case nbt.Short:
		return strconv.Itoa(int(x))
	case nbt.Int:
		return strconv.Itoa(int(x))
	case nbt.Long:
		return strconv.FormatInt(int64(x), 10)
	case nbt.Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case nbt.Double:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
