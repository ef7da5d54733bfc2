// Package parallel provides a bounded fan-out helper for CPU-bound work.
//
// The resolution engine expands each search frontier by resolving one clause
// against every known clause; the pairings are independent, so they run
// concurrently up to the pool's worker bound. Results come back in input
// order, and the first error (typically context cancellation) stops the
// remaining work.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of goroutines used per fan-out.
// The zero value is not usable; create pools with New.
type Pool struct {
	workers int
}

// New creates a pool with the given worker bound. Values below one default
// to GOMAXPROCS.
func New(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the pool's worker bound.
func (p *Pool) Workers() int { return p.workers }

// Map applies fn to every item concurrently, bounded by the pool's workers,
// and returns the results in input order. If any application fails or the
// context is cancelled, Map returns the first error; in-flight applications
// finish, queued ones never start.
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	out := make([]R, len(items))
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
