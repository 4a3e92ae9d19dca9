package anyvalue

import (
	"io"

	"github.com/wippyai/anyvalue/value"
)

// Functor transforms one dynamic value into another.
// Implementations define which input types they accept.
type Functor interface {
	Call(in *value.Value) (*value.Value, error)
}

// FunctorFunc adapts a plain function to Functor.
type FunctorFunc func(in *value.Value) (*value.Value, error)

func (f FunctorFunc) Call(in *value.Value) (*value.Value, error) {
	return f(in)
}

// Release tears down a functor that owns resources. Functors that hold any
// implement io.Closer; for all others Release does nothing.
func Release(f Functor) error {
	if c, ok := f.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
