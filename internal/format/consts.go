// Package format houses the wire-level constants of the NBT binary format.
// Everything is big-endian. A tree on the wire is
//
//	[kind:1][name:String][payload]
//
// where String is [length:uint16][length bytes]. Arrays are
// [count:int32][count × element], lists are [elemKind:1][count:int32][payloads]
// and compounds are a run of named tags closed by a single TAG_End byte.
package format

import (
	"math"

	"github.com/joshuapare/nbtkit/pkg/types"
)

const (
	// KindSize is the size of a tag kind byte.
	KindSize = 1

	// StringLenSize is the size of the unsigned length prefix of a string.
	StringLenSize = 2

	// CountSize is the size of the signed element count of arrays and lists.
	CountSize = 4

	// ListHeaderSize is the element kind byte plus the element count.
	ListHeaderSize = KindSize + CountSize

	// MaxStringLen is the largest string byte length the prefix can express.
	MaxStringLen = math.MaxUint16

	// MaxCount is the largest element count an int32 prefix can express.
	MaxCount = math.MaxInt32

	// EndTag terminates a compound.
	EndTag = byte(types.KindNone)
)

// scalarSizes holds the payload size of each fixed-width kind.
var scalarSizes = [...]int{
	types.KindByte:   1,
	types.KindShort:  2,
	types.KindInt:    4,
	types.KindLong:   8,
	types.KindFloat:  4,
	types.KindDouble: 8,
}

// ScalarSize returns the payload size of a numeric kind.
func ScalarSize(k types.Kind) (int, bool) {
	if !k.IsNumeric() {
		return 0, false
	}
	return scalarSizes[k], true
}

// ArrayElemSize returns the element size of BYTE/INT/LONG arrays.
func ArrayElemSize(k types.Kind) (int, bool) {
	switch k {
	case types.KindByteArray:
		return 1, true
	case types.KindIntArray:
		return 4, true
	case types.KindLongArray:
		return 8, true
	}
	return 0, false
}

// MinPayloadSize returns the smallest number of bytes a payload of kind k can
// occupy on the wire. Decoders multiply it with a list count to reject counts
// that cannot possibly fit in the remaining buffer before allocating.
func MinPayloadSize(k types.Kind) int {
	if n, ok := ScalarSize(k); ok {
		return n
	}
	switch k {
	case types.KindByteArray, types.KindIntArray, types.KindLongArray:
		return CountSize
	case types.KindString:
		return StringLenSize
	case types.KindList:
		return ListHeaderSize
	case types.KindCompound:
		return KindSize
	}
	return 0
}
