// Package nbt implements the Named Binary Tag format used by Minecraft save
// files and network packets.
//
// # Overview
//
// A tree is a single named root value. Values form a closed set of thirteen
// kinds (see types.Kind): six numeric scalars, strings, three primitive
// arrays, homogeneous lists and ordered compounds. Each kind is a concrete Go
// type implementing the sealed Value interface:
//
//	Byte, Short, Int, Long, Float, Double   numeric scalars
//	String                                  length-prefixed bytes
//	ByteArray, IntArray, LongArray          primitive arrays
//	*List                                   homogeneous sequence
//	*Compound                               ordered name/value pairs
//
// # Wire Format
//
// Everything is big-endian:
//
//	tree     = kind:1 name:String payload
//	String   = len:uint16 bytes
//	array    = count:int32 elements
//	list     = elemKind:1 count:int32 payloads
//	compound = { kind:1 name:String payload } 0x00
//
// # Decoding and Encoding
//
//	t, err := nbt.Load(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := nbt.Dump(t)
//
// Load never panics on malformed input. Every count is checked against the
// remaining bytes before anything is allocated, nesting is bounded by
// types.Limits.MaxDepth, and failures wrap the types sentinels so callers can
// test them with errors.Is. Decoding does not handle compression; see
// package nbtio for files and pkg/compress for gzip/zlib.
//
// # Accessing Values
//
// Typed code uses the concrete types directly:
//
//	root, _ := t.Compound()
//	hp, ok := nbt.Lookup[nbt.Int](root, "hp")
//
// Code that does not know the shape ahead of time uses an Accessor:
//
//	hp := t.Key("hp").IntOr(20)
//	x, ok := t.Key("Pos").Index(0).Double()
//	a, err := t.Find(`Data.Player.Inventory[3].id`)
//
// Numeric reads through an Accessor convert between all six numeric kinds,
// so a DOUBLE 3.9 read with Int yields 3. Reading a non-numeric kind as a
// number yields (0, false).
//
// # Concurrency
//
// A Tree is not safe for concurrent mutation. Any number of readers may
// share a tree as long as no goroutine mutates it at the same time.
package nbt
