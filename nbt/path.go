package nbt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// PathElem is one step of a path: a compound key or a list/array index.
type PathElem struct {
	Key     string
	Index   int
	IsIndex bool
}

func (e PathElem) String() string {
	if e.IsIndex {
		return "[" + strconv.Itoa(e.Index) + "]"
	}
	return quoteKey(e.Key)
}

// ParsePath parses a path expression such as
//
//	Data.Player.Inventory[3].id
//	Data."odd.key"[0]
//
// Keys are separated by dots, indices are written in brackets, and keys
// holding '.', '[', ']', '"' or nothing at all are double-quoted with
// backslash escapes. The empty expression is the root.
func ParsePath(expr string) ([]PathElem, error) {
	var out []PathElem
	i := 0
	needKey := true
	for i < len(expr) {
		switch c := expr[i]; {
		case c == '[':
			if needKey && len(out) > 0 {
				return nil, pathErr(expr, i, "expected key after '.'")
			}
			end := strings.IndexByte(expr[i:], ']')
			if end < 0 {
				return nil, pathErr(expr, i, "unclosed '['")
			}
			n, err := strconv.Atoi(expr[i+1 : i+end])
			if err != nil || n < 0 {
				return nil, pathErr(expr, i, "index must be a non-negative integer")
			}
			out = append(out, PathElem{Index: n, IsIndex: true})
			i += end + 1
			needKey = false
		case c == '.':
			if needKey {
				return nil, pathErr(expr, i, "empty key")
			}
			i++
			needKey = true
			if i == len(expr) {
				return nil, pathErr(expr, i, "trailing '.'")
			}
		case !needKey:
			return nil, pathErr(expr, i, "expected '.' or '['")
		case c == '"':
			key, n, err := unquoteKey(expr[i:])
			if err != nil {
				return nil, pathErr(expr, i, err.Error())
			}
			out = append(out, PathElem{Key: key})
			i += n
			needKey = false
		default:
			j := i
			for j < len(expr) && !strings.ContainsRune(`.[]"`, rune(expr[j])) {
				j++
			}
			if j == i {
				return nil, pathErr(expr, i, fmt.Sprintf("unexpected %q", expr[i]))
			}
			out = append(out, PathElem{Key: expr[i:j]})
			i = j
			needKey = false
		}
	}
	return out, nil
}

// FormatPath renders a path in the syntax ParsePath accepts.
func FormatPath(p []PathElem) string {
	var sb strings.Builder
	for i, e := range p {
		if !e.IsIndex && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

func pathErr(expr string, pos int, msg string) error {
	return fmt.Errorf("path %q at %d: %s: %w", expr, pos, msg, types.ErrBadPath)
}

func quoteKey(k string) string {
	if k != "" && !strings.ContainsAny(k, `.[]"\`) {
		return k
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(k); i++ {
		if k[i] == '"' || k[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(k[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// unquoteKey reads a quoted key at the start of s and returns it with the
// number of bytes consumed.
func unquoteKey(s string) (string, int, error) {
	var sb strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 == len(s) {
				return "", 0, errors.New("dangling escape")
			}
			i++
			sb.WriteByte(s[i])
		case '"':
			return sb.String(), i + 1, nil
		default:
			sb.WriteByte(s[i])
		}
	}
	return "", 0, errors.New("unclosed quote")
}

// Walk follows p from a. The result is invalid when any step is missing.
func (a Accessor) Walk(p []PathElem) Accessor {
	for _, e := range p {
		if e.IsIndex {
			a = a.Index(e.Index)
		} else {
			a = a.Key(e.Key)
		}
		if !a.Valid() {
			return Accessor{}
		}
	}
	return a
}

// Find parses expr and follows it from a. A malformed expression fails with
// types.ErrBadPath; a missing step fails with types.ErrNotFound naming the
// longest prefix that did resolve.
func (a Accessor) Find(expr string) (Accessor, error) {
	p, err := ParsePath(expr)
	if err != nil {
		return Accessor{}, err
	}
	cur := a
	for i, e := range p {
		var next Accessor
		if e.IsIndex {
			next = cur.Index(e.Index)
		} else {
			next = cur.Key(e.Key)
		}
		if !next.Valid() {
			return Accessor{}, fmt.Errorf("%s not found under %q (%s): %w",
				e, FormatPath(p[:i]), cur.Kind(), types.ErrNotFound)
		}
		cur = next
	}
	return cur, nil
}
