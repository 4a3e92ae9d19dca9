package anyvalue

import (
	"errors"
	"testing"

	"github.com/wippyai/anyvalue/value"
)

type closingFunctor struct {
	err    error
	closed int
}

func (c *closingFunctor) Call(in *value.Value) (*value.Value, error) { return in, nil }

func (c *closingFunctor) Close() error {
	c.closed++
	return c.err
}

func TestFunctorFunc(t *testing.T) {
	var f Functor = FunctorFunc(func(in *value.Value) (*value.Value, error) {
		n, err := in.AsInt64()
		if err != nil {
			return nil, err
		}
		return value.Int64(n * 2), nil
	})

	out, err := f.Call(value.Int8(21))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !out.Equal(value.Int64(42)) {
		t.Errorf("Call = %v, want 42", out)
	}
	if _, err := f.Call(value.String("x")); err == nil {
		t.Error("expected type error")
	}
}

func TestRelease(t *testing.T) {
	c := &closingFunctor{}
	if err := Release(c); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if c.closed != 1 {
		t.Errorf("closed = %d, want 1", c.closed)
	}

	c.err = errors.New("busy")
	if err := Release(c); !errors.Is(err, c.err) {
		t.Errorf("Release err = %v, want %v", err, c.err)
	}

	plain := FunctorFunc(func(in *value.Value) (*value.Value, error) { return in, nil })
	if err := Release(plain); err != nil {
		t.Errorf("Release(plain) = %v", err)
	}
}
