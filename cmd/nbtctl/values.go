package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// parseValue converts command-line text to a value of kind k. Arrays are
// comma-separated; "{}" and "[]" create an empty compound or list.
func parseValue(k types.Kind, s string) (nbt.Value, error) {
	s = strings.TrimSpace(s)
	switch k {
	case types.KindByte:
		if b, err := strconv.ParseBool(s); err == nil && !isDigits(s) {
			return nbt.Bool(b), nil
		}
		n, err := strconv.ParseInt(s, 0, 8)
		return nbt.Byte(n), wrapParse(k, s, err)
	case types.KindShort:
		n, err := strconv.ParseInt(s, 0, 16)
		return nbt.Short(n), wrapParse(k, s, err)
	case types.KindInt:
		n, err := strconv.ParseInt(s, 0, 32)
		return nbt.Int(n), wrapParse(k, s, err)
	case types.KindLong:
		n, err := strconv.ParseInt(s, 0, 64)
		return nbt.Long(n), wrapParse(k, s, err)
	case types.KindFloat:
		f, err := strconv.ParseFloat(s, 32)
		return nbt.Float(f), wrapParse(k, s, err)
	case types.KindDouble:
		f, err := strconv.ParseFloat(s, 64)
		return nbt.Double(f), wrapParse(k, s, err)
	case types.KindString:
		return nbt.String(s), nil
	case types.KindByteArray:
		out := nbt.ByteArray{}
		err := eachField(s, func(f string) error {
			n, err := strconv.ParseInt(f, 0, 8)
			if err != nil {
				// 0..255 are accepted as unsigned bytes
				u, uerr := strconv.ParseUint(f, 0, 8)
				if uerr != nil {
					return err
				}
				out = append(out, byte(u))
				return nil
			}
			out = append(out, byte(n))
			return nil
		})
		return out, wrapParse(k, s, err)
	case types.KindIntArray:
		out := nbt.IntArray{}
		err := eachField(s, func(f string) error {
			n, err := strconv.ParseInt(f, 0, 32)
			out = append(out, int32(n))
			return err
		})
		return out, wrapParse(k, s, err)
	case types.KindLongArray:
		out := nbt.LongArray{}
		err := eachField(s, func(f string) error {
			n, err := strconv.ParseInt(f, 0, 64)
			out = append(out, n)
			return err
		})
		return out, wrapParse(k, s, err)
	case types.KindList:
		if s == "[]" {
			return &nbt.List{}, nil
		}
	case types.KindCompound:
		if s == "{}" {
			return nbt.NewCompound(), nil
		}
	}
	return nil, fmt.Errorf("cannot set %s from %q: %w", k, s, types.ErrTypeMismatch)
}

func wrapParse(k types.Kind, s string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("parse %q as %s: %w", s, k.ShortName(), err)
}

// eachField calls fn for every comma-separated field of s, ignoring
// surrounding brackets and whitespace.
func eachField(s string, fn func(string) error) error {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	for _, f := range strings.Split(s, ",") {
		if err := fn(strings.TrimSpace(f)); err != nil {
			return err
		}
	}
	return nil
}

func isDigits(s string) bool {
	return strings.Trim(s, "0123456789") == ""
}
