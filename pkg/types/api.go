package types

import (
	"errors"
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindTruncated   ErrKind = iota // read past the end of the buffer
	ErrKindCorrupt                    // structurally invalid input (bad tag kind, trailing data)
	ErrKindLimit                      // input exceeds a configured limit (depth, counts, sizes)
	ErrKindType                       // value kind does not match the requested operation
	ErrKindNotFound                   // missing entry/index/path
	ErrKindUnsupported                // valid feature we don't support (yet)
)

// String returns a short category name.
func (k ErrKind) String() string {
	switch k {
	case ErrKindTruncated:
		return "truncated"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindLimit:
		return "limit"
	case ErrKindType:
		return "type"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("errkind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrTruncated indicates a read would run past the end of the buffer.
	ErrTruncated = &Error{Kind: ErrKindTruncated, Msg: "nbt: unexpected end of buffer"}
	// ErrInvalidKind indicates a tag kind byte outside the known range.
	ErrInvalidKind = &Error{Kind: ErrKindCorrupt, Msg: "nbt: invalid tag kind"}
	// ErrTrailingData indicates bytes left over after the root tag.
	ErrTrailingData = &Error{Kind: ErrKindCorrupt, Msg: "nbt: trailing data after root tag"}
	// ErrTooDeep indicates nesting beyond Limits.MaxDepth.
	ErrTooDeep = &Error{Kind: ErrKindLimit, Msg: "nbt: nesting too deep"}
	// ErrLimit indicates a count or size beyond the configured Limits.
	ErrLimit = &Error{Kind: ErrKindLimit, Msg: "nbt: limit exceeded"}
	// ErrStringTooLong indicates a string whose byte length does not fit in 16 bits.
	ErrStringTooLong = &Error{Kind: ErrKindLimit, Msg: "nbt: string longer than 65535 bytes"}
	// ErrTypeMismatch indicates a value of the wrong kind for the operation.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "nbt: value has different kind"}
	// ErrNotFound indicates a missing entry, index or path.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "nbt: not found"}
	// ErrBadPath indicates a path expression that does not parse.
	ErrBadPath = &Error{Kind: ErrKindCorrupt, Msg: "nbt: malformed path"}
	// ErrUnsupportedCompression indicates an unknown compression format.
	ErrUnsupportedCompression = &Error{Kind: ErrKindUnsupported, Msg: "nbt: unsupported compression"}
)

// KindOf returns the category of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// -----------------------------------------------------------------------------
// Tag kinds
// -----------------------------------------------------------------------------

// Kind is the one-byte discriminant identifying a value's concrete type.
// The numbers are part of the wire format and never change.
type Kind uint8

const (
	KindNone      Kind = 0
	KindByte      Kind = 1
	KindShort     Kind = 2
	KindInt       Kind = 3
	KindLong      Kind = 4
	KindFloat     Kind = 5
	KindDouble    Kind = 6
	KindByteArray Kind = 7
	KindString    Kind = 8
	KindList      Kind = 9
	KindCompound  Kind = 10
	KindIntArray  Kind = 11
	KindLongArray Kind = 12

	// KindMax is the highest defined kind code.
	KindMax = KindLongArray
)

var kindNames = [...]string{
	KindNone:      "TAG_End",
	KindByte:      "TAG_Byte",
	KindShort:     "TAG_Short",
	KindInt:       "TAG_Int",
	KindLong:      "TAG_Long",
	KindFloat:     "TAG_Float",
	KindDouble:    "TAG_Double",
	KindByteArray: "TAG_Byte_Array",
	KindString:    "TAG_String",
	KindList:      "TAG_List",
	KindCompound:  "TAG_Compound",
	KindIntArray:  "TAG_Int_Array",
	KindLongArray: "TAG_Long_Array",
}

// short names used by ParseKind and the CLI
var kindShort = [...]string{
	KindNone:      "none",
	KindByte:      "byte",
	KindShort:     "short",
	KindInt:       "int",
	KindLong:      "long",
	KindFloat:     "float",
	KindDouble:    "double",
	KindByteArray: "bytearray",
	KindString:    "string",
	KindList:      "list",
	KindCompound:  "compound",
	KindIntArray:  "intarray",
	KindLongArray: "longarray",
}

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("UNKNOWN_KIND_%d", uint8(k))
}

// ShortName returns the lower-case name ("int", "bytearray", ...).
func (k Kind) ShortName() string {
	if k.Valid() {
		return kindShort[k]
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// Valid reports whether k is one of the defined kinds, NONE included.
func (k Kind) Valid() bool { return k <= KindMax }

// IsNumeric reports whether k is BYTE, SHORT, INT, LONG, FLOAT or DOUBLE.
func (k Kind) IsNumeric() bool { return k >= KindByte && k <= KindDouble }

// IsArray reports whether k is one of the fixed-width array kinds.
func (k Kind) IsArray() bool {
	return k == KindByteArray || k == KindIntArray || k == KindLongArray
}

// ParseKind accepts "int", "INT", "TAG_Int", "Int" or the numeric code.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "tag_")
	norm = strings.ReplaceAll(norm, "_", "")
	for k, name := range kindShort {
		if name == norm {
			return Kind(k), nil
		}
	}
	if norm == "end" {
		return KindNone, nil
	}
	var n uint8
	if _, err := fmt.Sscanf(norm, "%d", &n); err == nil && Kind(n).Valid() {
		return Kind(n), nil
	}
	return KindNone, fmt.Errorf("parse kind %q: %w", s, ErrInvalidKind)
}

// -----------------------------------------------------------------------------
// Decode & Encode Options
// -----------------------------------------------------------------------------

// DecodeOptions controls safety tradeoffs for Load.
type DecodeOptions struct {
	// Limits bounds nesting depth and element counts. The zero value selects
	// DefaultLimits().
	Limits Limits

	// RejectTrailing makes bytes after the root tag an error. The default
	// ignores them, since some producers pad their buffers.
	RejectTrailing bool

	// NamelessRoot reads a root with no name field: [kind][payload]. Network
	// protocols send trees this way.
	NamelessRoot bool
}

// EncodeOptions controls Dump.
type EncodeOptions struct {
	// Limits bounds nesting depth on encode. The zero value selects
	// DefaultLimits(). Only MaxDepth is consulted.
	Limits Limits

	// SizeHint pre-sizes the output buffer.
	SizeHint int

	// NamelessRoot omits the root name field. The tree name is ignored.
	NamelessRoot bool
}
