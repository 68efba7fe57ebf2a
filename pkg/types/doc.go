// Package types defines the shared vocabulary of nbtkit: tag kinds, typed
// errors, decode limits and codec options.
//
// The value model and codec live in package nbt; this package only exposes
// the types both the codec and its collaborators (printer, nbtio, CLI) need.
//
// Design goals:
//   - Stable tag kind codes; they are part of the wire format.
//   - Typed errors with stable categories (truncated/corrupt/limit/...).
//   - Paranoid bounds checking; never panic on malformed input.
//
// This package has no dependencies beyond the standard library.
package types
