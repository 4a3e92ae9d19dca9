package functor

import (
	stderrors "errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wippyai/anyvalue"
	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/value"
)

// counting returns its input unchanged and counts calls without any locking
// of its own.
type counting struct {
	calls int
}

func (c *counting) Call(in *value.Value) (*value.Value, error) {
	c.calls++
	return in, nil
}

type interval struct {
	enter, exit int64
}

// recorder keeps the enter/exit sequence numbers of every call and the peak
// number of calls in flight.
type recorder struct {
	mu        sync.Mutex
	intervals []interval
	seq       atomic.Int64
	inFlight  atomic.Int32
	peak      atomic.Int32
}

func (r *recorder) Call(in *value.Value) (*value.Value, error) {
	enter := r.seq.Add(1)
	n := r.inFlight.Add(1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(50 * time.Microsecond)
	r.inFlight.Add(-1)
	exit := r.seq.Add(1)

	r.mu.Lock()
	r.intervals = append(r.intervals, interval{enter: enter, exit: exit})
	r.mu.Unlock()
	return in, nil
}

type closable struct {
	counting
	closed bool
}

func (c *closable) Close() error {
	c.closed = true
	return nil
}

func TestThreadsafe_Transparent(t *testing.T) {
	inner := &counting{}
	d := NewThreadsafe(inner)

	inputs := []*value.Value{value.Int8(-1), value.String("x"), value.Empty(), nil}
	for _, in := range inputs {
		out, err := d.Call(in)
		if err != nil {
			t.Fatalf("Call(%v): %v", in, err)
		}
		if out != in {
			t.Errorf("Call(%v) returned %v, want the same value", in, out)
		}
	}
	if inner.calls != len(inputs) {
		t.Errorf("calls = %d, want %d", inner.calls, len(inputs))
	}
}

func TestThreadsafe_ErrorPassthrough(t *testing.T) {
	sentinel := errors.InvalidInput(errors.PhaseInvoke, "negative setpoint")
	partial := value.Int8(3)
	d := NewThreadsafe(anyvalue.FunctorFunc(func(in *value.Value) (*value.Value, error) {
		return partial, sentinel
	}))

	out, err := d.Call(value.Int8(-1))
	if err != sentinel {
		t.Errorf("err = %v, want the wrapped functor's error value", err)
	}
	if out != partial {
		t.Errorf("out = %v, want wrapped result", out)
	}

	plain := stderrors.New("plain")
	d = NewThreadsafe(anyvalue.FunctorFunc(func(*value.Value) (*value.Value, error) { return nil, plain }))
	if _, err := d.Call(nil); err != plain {
		t.Errorf("err = %v, want %v", err, plain)
	}
}

func TestThreadsafe_MutualExclusion(t *testing.T) {
	rec := &recorder{}
	d := NewThreadsafe(rec)

	const goroutines, perG = 8, 25
	start := make(chan struct{})
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			<-start
			for i := 0; i < perG; i++ {
				if _, err := d.Call(value.Int32(int32(g*perG + i))); err != nil {
					t.Errorf("Call: %v", err)
				}
			}
		}(g)
	}
	close(start)
	wg.Wait()

	if p := rec.peak.Load(); p != 1 {
		t.Errorf("peak in-flight calls = %d, want 1", p)
	}
	if len(rec.intervals) != goroutines*perG {
		t.Fatalf("recorded %d calls, want %d", len(rec.intervals), goroutines*perG)
	}
	sort.Slice(rec.intervals, func(i, j int) bool { return rec.intervals[i].enter < rec.intervals[j].enter })
	for i := 1; i < len(rec.intervals); i++ {
		prev, cur := rec.intervals[i-1], rec.intervals[i]
		if cur.enter < prev.exit {
			t.Fatalf("call %d entered at %d before call %d exited at %d", i, cur.enter, i-1, prev.exit)
		}
	}
}

func TestThreadsafe_CountingScenario(t *testing.T) {
	inner := &counting{}
	d := NewThreadsafe(inner)

	const goroutines, perG = 10, 10
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				in := value.Int32(int32(g*100 + i))
				out, err := d.Call(in)
				if err != nil || !out.Equal(in) {
					t.Errorf("Call(%v) = %v, %v", in, out, err)
				}
			}
		}(g)
	}
	wg.Wait()

	if inner.calls != goroutines*perG {
		t.Errorf("calls = %d, want %d", inner.calls, goroutines*perG)
	}
}

func TestThreadsafe_PanicReleasesLock(t *testing.T) {
	d := NewThreadsafe(anyvalue.FunctorFunc(func(in *value.Value) (*value.Value, error) {
		if s, _ := in.AsString(); s == "boom" {
			panic("wrapped functor exploded")
		}
		return in, nil
	}))

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("panic should propagate to the caller")
			}
		}()
		_, _ = d.Call(value.String("boom"))
	}()

	done := make(chan error, 1)
	go func() {
		_, err := d.Call(value.String("ok"))
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Call after panic: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("lock was not released after panic")
	}
}

func TestThreadsafe_LockFailure(t *testing.T) {
	var zero Threadsafe
	var nilDecorator *Threadsafe

	for name, d := range map[string]*Threadsafe{"zero": &zero, "nil": nilDecorator} {
		t.Run(name, func(t *testing.T) {
			_, err := d.Call(value.Int8(1))
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindLockFailed}) {
				t.Errorf("err = %v, want lock failure", err)
			}
		})
	}

	inner := &counting{}
	unlocked := Threadsafe{fn: inner}
	if _, err := unlocked.Call(value.Int8(1)); err == nil {
		t.Error("expected lock failure")
	}
	if inner.calls != 0 {
		t.Error("functor must not run without the lock")
	}
}

func TestThreadsafe_NilFunctor(t *testing.T) {
	_, err := NewThreadsafe(nil).Call(value.Int8(1))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindNotInitialized}) {
		t.Errorf("err = %v, want not initialized", err)
	}
}

func TestThreadsafe_DoesNotOwnWrapped(t *testing.T) {
	inner := &closable{}
	d := NewThreadsafe(inner)
	if _, err := d.Call(value.Int8(1)); err != nil {
		t.Fatalf("Call: %v", err)
	}

	if err := anyvalue.Release(d); err != nil {
		t.Fatalf("Release(decorator): %v", err)
	}
	d = nil
	if inner.closed {
		t.Fatal("releasing the decorator closed the wrapped functor")
	}

	out, err := inner.Call(value.Int8(2))
	if err != nil || !out.Equal(value.Int8(2)) {
		t.Errorf("wrapped functor unusable after decorator dropped: %v, %v", out, err)
	}
	if inner.calls != 2 {
		t.Errorf("calls = %d, want 2", inner.calls)
	}
}

func TestThreadsafe_Nested(t *testing.T) {
	inner := &counting{}
	d := NewThreadsafe(NewThreadsafe(inner))
	if _, err := d.Call(value.Bool(true)); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
}
