// Package value implements the dynamic, self-describing AnyValue.
//
// A Value carries its Type and a payload. Scalars are built with the typed
// constructors (Int8, UInt16, Float64, ...) or with Scalar, which coerces any
// Go numeric into the requested kind:
//
//	v, err := value.Scalar(types.KindUInt8, 200)
//
// Composite values are structs of named members and fixed-length arrays of a
// single element type:
//
//	p, err := value.Struct("point",
//		value.Member{Name: "x", Value: value.Int32(1)},
//		value.Member{Name: "y", Value: value.Int32(2)},
//	)
//
// FromGo and ToGo convert between values and plain Go data.
//
// Values are not synchronized. Share them across goroutines only read-only.
package value
