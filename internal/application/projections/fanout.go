package projections

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"clubadmin/internal/adapters/clubapi"
)

// regions runs independent page regions concurrently. A failed secondary
// region renders empty and is remembered by name; a remote 401 aborts the
// whole page because the session's token is no longer accepted.
type regions struct {
	g      *errgroup.Group
	ctx    context.Context
	mu     sync.Mutex
	failed []string
}

func newRegions(ctx context.Context) *regions {
	g, gctx := errgroup.WithContext(ctx)
	return &regions{g: g, ctx: gctx}
}

// primary runs a region whose failure fails the page.
func (r *regions) primary(fn func(ctx context.Context) error) {
	r.g.Go(func() error { return fn(r.ctx) })
}

// secondary runs a region whose failure only empties that region.
func (r *regions) secondary(name string, fn func(ctx context.Context) error) {
	r.g.Go(func() error {
		err := fn(r.ctx)
		if err == nil {
			return nil
		}
		if clubapi.IsUnauthorized(err) {
			return err
		}
		slog.WarnContext(r.ctx, "region_failed", "region", name, "error", err)
		r.mu.Lock()
		r.failed = append(r.failed, name)
		r.mu.Unlock()
		return nil
	})
}

// wait blocks until every region is done and returns the failed region names.
func (r *regions) wait() ([]string, error) {
	err := r.g.Wait()
	return r.failed, err
}
