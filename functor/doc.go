// Package functor provides decorators and helpers around anyvalue.Functor.
//
// Threadsafe makes a functor that is not safe for concurrent use shareable
// between goroutines by running every call under a private mutex:
//
//	shared := functor.NewThreadsafe(guestFn)
//	out, err := shared.Call(value.Int32(7))
//
// The decorator adds nothing else. Results and errors pass through untouched,
// and there is no timeout, retry or fairness policy; a caller that must not
// block offloads the call to its own goroutine, for example with Dispatch.
package functor
