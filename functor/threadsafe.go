package functor

import (
	"sync"

	"github.com/wippyai/anyvalue"
	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/value"
)

// Threadsafe serializes calls to a wrapped Functor.
//
// The wrapped functor is borrowed: Threadsafe never closes it, and the caller
// must keep it valid for as long as the decorator is in use. Calls through one
// Threadsafe never overlap; calls through different decorators are not
// coordinated, even when they wrap the same functor.
type Threadsafe struct {
	fn anyvalue.Functor
	mu *sync.Mutex
}

// NewThreadsafe wraps fn with a private lock.
func NewThreadsafe(fn anyvalue.Functor) *Threadsafe {
	return &Threadsafe{fn: fn, mu: new(sync.Mutex)}
}

// Call runs the wrapped functor under the decorator's lock and returns its
// result and error unchanged. The lock is released on every exit path,
// panics included.
//
// A decorator that was not built with NewThreadsafe has no lock; Call then
// fails with KindLockFailed instead of running the functor unprotected.
func (d *Threadsafe) Call(in *value.Value) (*value.Value, error) {
	if d == nil || d.mu == nil {
		return nil, errors.LockFailed(errors.PhaseInvoke, "threadsafe functor has no lock")
	}
	if d.fn == nil {
		return nil, errors.NotInitialized(errors.PhaseInvoke, "wrapped functor")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn.Call(in)
}
