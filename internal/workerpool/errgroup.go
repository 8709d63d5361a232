package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunBounded runs each of jobs with at most concurrency goroutines in
// flight, returning the first error encountered (if any) after every
// job has been started and either finished or abandoned because ctx
// was cancelled by that first error. This is the simple path for a
// one-shot batch of bench runs; WorkerPool is for a long-lived pool
// fed incrementally (e.g. a server process queuing bench requests).
func RunBounded(ctx context.Context, concurrency int, jobs []func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, job := range jobs {
		job := job
		g.Go(func() error { return job(ctx) })
	}
	return g.Wait()
}
