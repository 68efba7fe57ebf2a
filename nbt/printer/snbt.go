package printer

import (
	"strconv"
	"strings"

	"github.com/joshuapare/nbtkit/nbt"
)

// SNBT returns the stringified form of v on a single line, e.g.
// {hp:20,pos:[0.5d,64.0d],name:"Hero"}. Compound keys are quoted only when
// needed. Non-finite floats have no SNBT literal and print as NaNf, +Inff
// and so on. A tree that contains itself fails with types.ErrTooDeep.
func SNBT(v nbt.Value) (string, error) {
	var sb strings.Builder
	if err := writeSNBT(&sb, make(ancestors), v, 1); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeSNBT(sb *strings.Builder, g ancestors, v nbt.Value, depth int) error {
	switch x := v.(type) {
	case nbt.Byte:
		sb.WriteString(strconv.Itoa(int(x)))
		sb.WriteByte('b')
	case nbt.Short:
		sb.WriteString(strconv.Itoa(int(x)))
		sb.WriteByte('s')
	case nbt.Int:
		sb.WriteString(strconv.Itoa(int(x)))
	case nbt.Long:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
		sb.WriteByte('L')
	case nbt.Float:
		sb.WriteString(snbtFloat(float64(x), 32))
		sb.WriteByte('f')
	case nbt.Double:
		sb.WriteString(snbtFloat(float64(x), 64))
		sb.WriteByte('d')
	case nbt.String:
		sb.WriteString(snbtQuote(string(x)))
	case nbt.ByteArray:
		sb.WriteString("[B;")
		for i, b := range x {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(int8(b))))
			sb.WriteByte('B')
		}
		sb.WriteByte(']')
	case nbt.IntArray:
		sb.WriteString("[I;")
		for i, n := range x {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(n)))
		}
		sb.WriteByte(']')
	case nbt.LongArray:
		sb.WriteString("[L;")
		for i, n := range x {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(n, 10))
			sb.WriteByte('L')
		}
		sb.WriteByte(']')
	case *nbt.List:
		if err := g.enter(x, depth); err != nil {
			return err
		}
		defer g.leave(x)
		sb.WriteByte('[')
		for i, e := range x.All() {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeSNBT(sb, g, e, depth+1); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *nbt.Compound:
		if err := g.enter(x, depth); err != nil {
			return err
		}
		defer g.leave(x)
		sb.WriteByte('{')
		first := true
		for name, e := range x.All() {
			if e == nil {
				continue
			}
			if !first {
				sb.WriteByte(',')
			}
			first = false
			if bareKey(name) {
				sb.WriteString(name)
			} else {
				sb.WriteString(snbtQuote(name))
			}
			sb.WriteByte(':')
			if err := writeSNBT(sb, g, e, depth+1); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	}
	return nil
}

// snbtFloat keeps a decimal point on integral values so 64.0d does not
// read back as an int.
func snbtFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

// snbtQuote double-quotes s, escaping backslashes and double quotes.
func snbtQuote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range display(s) {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
