package functor

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/wippyai/anyvalue"
	"github.com/wippyai/anyvalue/value"
)

// Result is the outcome of one dispatched call.
type Result struct {
	Out *value.Value
	Err error
}

// Dispatch calls f once per input from up to workers goroutines and returns
// the results in input order. f must be safe for concurrent use; wrap it in
// a Threadsafe when it is not.
//
// A failed call is reported in its own Result and does not stop the others.
// Cancelling ctx stops handing out inputs. Calls already started run to
// completion; inputs never handed out report ctx.Err() and Dispatch returns
// it as well.
func Dispatch(ctx context.Context, f anyvalue.Functor, inputs []*value.Value, workers int) ([]Result, error) {
	results := make([]Result, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	// The group is not derived from ctx: call errors live in results and
	// never cancel siblings. The semaphore bounds concurrency and gives up
	// waiting as soon as ctx is done.
	var g errgroup.Group
	slots := semaphore.NewWeighted(int64(workers))
	sent := 0
	for ; sent < len(inputs); sent++ {
		if err := slots.Acquire(ctx, 1); err != nil {
			break
		}
		i := sent
		g.Go(func() error {
			defer slots.Release(1)
			out, err := f.Call(inputs[i])
			results[i] = Result{Out: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if sent < len(inputs) {
		err := ctx.Err()
		for i := sent; i < len(inputs); i++ {
			results[i] = Result{Err: err}
		}
		return results, err
	}
	return results, nil
}
