package result

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FanOut resolves a list of keys through parallel sub-requests and
// aggregates the results into a single envelope, in key order. The first
// failing sub-request cancels its siblings and the whole group reports that
// failure; there is no partial aggregation. An empty key list completes
// immediately with an empty slice and dispatches nothing.
func FanOut[K any, T any](ctx context.Context, keys []K, fetch func(context.Context, K) (T, error)) *Channel[[]T] {
	c := &Channel[[]T]{events: make(chan Envelope[[]T], 2)}
	c.events <- Loading[[]T]()
	if len(keys) == 0 {
		c.events <- Success([]T{})
		close(c.events)
		return c
	}
	go func() {
		defer close(c.events)
		g, gctx := errgroup.WithContext(ctx)
		out := make([]T, len(keys))
		for i, key := range keys {
			g.Go(func() error {
				v, err := fetch(gctx, key)
				if err != nil {
					return err
				}
				out[i] = v
				return nil
			})
		}
		var env Envelope[[]T]
		if err := g.Wait(); err != nil {
			env = Failure[[]T](err.Error())
		} else {
			env = Success(out)
		}
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
		case c.events <- env:
		}
	}()
	return c
}
