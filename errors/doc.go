// Package errors provides structured error types for the anyvalue module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: member path, Go/value type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
//		Path("pump", "speed").
//		GoType("string").
//		ValueType("uint16").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseConvert, path, "string", "uint16")
//	err := errors.LockFailed(errors.PhaseInvoke, "lock not initialized")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
