package snapshot

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/pagecluster/blobstore"
)

// Checkpointer writes session snapshots to a store, at most once per
// interval. Calls between intervals are skipped, not queued.
type Checkpointer struct {
	store   blobstore.Store
	name    string
	limiter *rate.Limiter
	opts    []Option
}

// NewCheckpointer creates a checkpointer writing to name in store. An
// interval <= 0 writes on every call.
func NewCheckpointer(store blobstore.Store, name string, interval time.Duration, optFns ...Option) *Checkpointer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Checkpointer{
		store:   store,
		name:    name,
		limiter: rate.NewLimiter(limit, 1),
		opts:    optFns,
	}
}

// Name returns the blob name checkpoints are written to.
func (c *Checkpointer) Name() string { return c.name }

// Checkpoint writes the state returned by snap if the interval has elapsed
// since the last write. snap is only called when a write happens. It
// reports whether a snapshot was written.
func (c *Checkpointer) Checkpoint(ctx context.Context, snap func() *State) (bool, error) {
	if !c.limiter.Allow() {
		return false, nil
	}
	if err := Write(ctx, c.store, c.name, snap(), c.opts...); err != nil {
		return false, err
	}
	return true, nil
}
