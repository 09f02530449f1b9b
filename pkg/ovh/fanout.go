package ovh

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// detailConcurrency bounds the parallel detail fetches of a listing call.
// The client-side rate limiter still applies underneath.
const detailConcurrency = 8

// FetchDetails fetches one detail object per id in parallel, preserving the
// id order. The OVHcloud listing endpoints return identifiers only; details
// require one extra call each.
func FetchDetails[ID any, T any](ctx context.Context, c Caller, ids []ID, path func(id ID) string) ([]T, error) {
	out := make([]T, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			return c.Get(ctx, path(id), &out[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
