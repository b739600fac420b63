// Package parallel runs work over a slice with a bounded number of workers.
package parallel

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ForEach calls fn for every item with at most limit calls in flight.
//
// limit is clamped to [1, len(items)]. Workers share one cursor and keep claiming
// the next unprocessed index until all items are claimed. The first error returned
// by fn aborts the run: the context passed to fn is cancelled, no further items are
// claimed and the error is returned once in-flight calls have returned.
func ForEach[T any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T, index int) error) error {
	if len(items) == 0 {
		return nil
	}

	workers := max(1, limit)
	workers = min(workers, len(items))

	g, gctx := errgroup.WithContext(ctx)
	var cursor atomic.Int64

	for range workers {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}

				index := int(cursor.Add(1) - 1)
				if index >= len(items) {
					return nil
				}

				if err := fn(gctx, items[index], index); err != nil {
					return err
				}
			}
		})
	}

	return g.Wait()
}
