// Package types defines the AnyValue type codes and the fixed-width scalar model.
//
// Kind enumerates every type code a value can carry. The scalar kinds map onto
// Go aliases (Boolean, Char8, Int8, UInt8, ... Float64, String) whose widths
// are asserted at compile time: a platform where Int8 or UInt8 is not exactly
// one byte does not build.
//
// # Key Functions
//
//   - Coerce: convert a Go numeric/bool/string into a kind's alias type
//   - ParseScalar: parse text into a kind's alias type
//   - AppendScalar / ReadScalar: fixed-width binary codec for scalars
//
// Composite kinds (struct, array) and strings have no binary encoding here.
package types
