package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/joshuapare/nbtkit/nbt"
)

// The JSON and YAML printers share one ordered, format-neutral form:
// compounds become yaml.MapSlice (which keeps entry order), lists and
// arrays become []any, scalars become the matching Go type.

func (p *Printer) rootData(t *nbt.Tree) (any, error) {
	g := make(ancestors)
	if !p.opts.ShowTypes {
		return p.payload(g, t.Root, 1)
	}
	item, err := p.data(g, t.Root, 1)
	if err != nil {
		return nil, err
	}
	return append(yaml.MapSlice{{Key: "name", Value: display(t.Name)}}, item.(yaml.MapSlice)...), nil
}

// data returns v in the selected (typed or plain) shape.
func (p *Printer) data(g ancestors, v nbt.Value, depth int) (any, error) {
	if !p.opts.ShowTypes {
		return p.payload(g, v, depth)
	}
	item := yaml.MapSlice{{Key: "type", Value: v.Kind().ShortName()}}
	if l, ok := v.(*nbt.List); ok {
		item = append(item, yaml.MapItem{Key: "elem", Value: l.ElemKind().ShortName()})
	}
	pl, err := p.payload(g, v, depth)
	if err != nil {
		return nil, err
	}
	return append(item, yaml.MapItem{Key: "value", Value: pl}), nil
}

// payload returns v without type information. List elements share the
// list's element kind, so they are never wrapped.
func (p *Printer) payload(g ancestors, v nbt.Value, depth int) (any, error) {
	switch x := v.(type) {
	case nbt.Byte:
		return int8(x), nil
	case nbt.Short:
		return int16(x), nil
	case nbt.Int:
		return int32(x), nil
	case nbt.Long:
		return int64(x), nil
	case nbt.Float:
		return float32(x), nil
	case nbt.Double:
		return float64(x), nil
	case nbt.String:
		return display(string(x)), nil
	case nbt.ByteArray:
		out := make([]any, len(x))
		for i, b := range x {
			out[i] = int8(b)
		}
		return out, nil
	case nbt.IntArray:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, nil
	case nbt.LongArray:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, nil
	case *nbt.List:
		if !p.descend(depth) {
			return fmt.Sprintf("<%d entries>", x.Len()), nil
		}
		if err := g.enter(x, depth); err != nil {
			return nil, err
		}
		defer g.leave(x)
		out := make([]any, 0, x.Len())
		for _, e := range x.All() {
			pl, err := p.payload(g, e, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, pl)
		}
		return out, nil
	case *nbt.Compound:
		if !p.descend(depth) {
			return fmt.Sprintf("<%d entries>", x.Len()), nil
		}
		if err := g.enter(x, depth); err != nil {
			return nil, err
		}
		defer g.leave(x)
		out := make(yaml.MapSlice, 0, x.Len())
		for name, e := range x.All() {
			if e == nil {
				continue
			}
			d, err := p.data(g, e, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, yaml.MapItem{Key: display(name), Value: d})
		}
		return out, nil
	}
	return nil, nil
}

func (p *Printer) printYAML(v any) error {
	indent := p.opts.IndentSize
	if indent == 0 {
		indent = DefaultIndentSize
	}
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(indent), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	_, err = p.writer.Write(out)
	return err
}

// printJSON writes v as one JSON document. Zero IndentSize writes it
// compact.
func (p *Printer) printJSON(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetEscapeHTML(false)
	if p.opts.IndentSize > 0 {
		enc.SetIndent("", strings.Repeat(" ", p.opts.IndentSize))
	}
	if err := enc.Encode(jsonValue(v)); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return nil
}

// jsonValue maps the neutral form onto types encoding/json marshals in
// order and without failing on non-finite floats.
func jsonValue(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		return jsonObject(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonValue(e)
		}
		return out
	case float32:
		return jsonFloat{f: float64(x), bits: 32}
	case float64:
		return jsonFloat{f: x, bits: 64}
	}
	return v
}

// jsonObject is a compound; its entries keep their order.
type jsonObject yaml.MapSlice

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalTo(&buf, fmt.Sprint(item.Key)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := marshalTo(&buf, jsonValue(item.Value)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonFloat writes non-finite values as strings, which JSON has no
// literal for.
type jsonFloat struct {
	f    float64
	bits int
}

func (x jsonFloat) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(x.f, 'g', -1, x.bits)
	if math.IsNaN(x.f) || math.IsInf(x.f, 0) {
		return []byte(strconv.Quote(s)), nil
	}
	return []byte(s), nil
}

// marshalTo appends the JSON form of v to buf without HTML escaping.
func marshalTo(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
