package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelMap runs fn over each item in items using up to workers goroutines
// (defaulting to runtime.NumCPU() when workers <= 0), grounded in the
// job/result worker-pool shape used for chart loading, retargeted here to
// the read-only C5 duplicate/overlap pass, which spec §5 allows to
// parallelize because it only reads feature state (the C6 network pass
// runs sequentially and does not use it). The first error from any worker cancels
// the group and is returned; results preserve input order.
func ParallelMap[T any, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]R, len(items))
	jobs := make(chan int, len(items))
	for i := range items {
		jobs <- i
	}
	close(jobs)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for idx := range jobs {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				r, err := fn(gctx, items[idx])
				if err != nil {
					return err
				}
				results[idx] = r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
