// Package anyvalue defines Functor, a capability that turns one dynamic value
// into another, and the packages that build on it.
//
// # Architecture Overview
//
//	anyvalue/            Functor interface, FunctorFunc adapter, Release
//	├── types/           Kind codes, scalar aliases with fixed widths, coercion
//	├── value/           Dynamic Value and Type, Go conversion
//	├── functor/         Threadsafe decorator and Dispatch worker pool
//	├── guest/           wazero-backed functors over wasm exports
//	├── config/          YAML configuration loaded through afs
//	├── errors/          Structured error types
//	└── cmd/anyvalue/    CLI: call, describe, interactive
//
// # Quick Start
//
// Share a functor that is not safe for concurrent use:
//
//	var count int
//	f := anyvalue.FunctorFunc(func(in *value.Value) (*value.Value, error) {
//	    count++
//	    return in, nil
//	})
//	safe := functor.NewThreadsafe(f)
//
//	// safe.Call may now be used from any number of goroutines.
//	out, err := safe.Call(value.Int8(7))
//
// The decorator returns the wrapped functor's result and error unchanged and
// never takes ownership: releasing the decorator leaves the wrapped functor
// intact, and its owner still calls Release on it.
//
// # Scalar widths
//
// The aliases in package types (types.Int8 through types.Float64) are checked
// at compile time; a build on a platform where any of them has a different
// width fails.
package anyvalue
