// Package guest exposes exported WebAssembly functions as anyvalue functors.
//
// An Engine wraps a wazero runtime. Load compiles a core module that has no
// imports; Module.Functor instantiates it and binds one export:
//
//	eng := guest.NewEngine(ctx, nil)
//	defer eng.Close(ctx)
//	mod, err := eng.Load(ctx, "arith", wasm)
//	f, err := mod.Functor(ctx, "add1", nil)
//	out, err := f.Call(value.Int32(41))
//
// Every Functor owns its own module instance, so guest globals and memory are
// never shared between functors. An instance runs one call at a time; share a
// Functor between goroutines through functor.Threadsafe.
//
// # Signatures
//
// By default parameter and result kinds are inferred from the wasm types. A
// Signature may narrow them, for example to int8 over an i32. Narrowed
// results are range checked and fail with an overflow error in the decode
// phase when the guest returns a value that does not fit.
//
// Guest traps are reported as errors of kind trap in the invoke phase with
// the runtime error as cause.
package guest
