package blobstore

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Mirror replicates writes to several stores. Reads go to the stores in
// order and fall through on ErrNotFound, so the first store is the primary.
type Mirror struct {
	stores []Store
}

// NewMirror creates a Mirror over stores. It panics if stores is empty.
func NewMirror(stores ...Store) *Mirror {
	if len(stores) == 0 {
		panic("blobstore: mirror needs at least one store")
	}
	return &Mirror{stores: stores}
}

// Put writes the blob to all stores concurrently and returns the first error.
func (m *Mirror) Put(ctx context.Context, name string, data []byte) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range m.stores {
		g.Go(func() error {
			return s.Put(ctx, name, data)
		})
	}
	return g.Wait()
}

// Get reads from the first store that has the blob.
func (m *Mirror) Get(ctx context.Context, name string) ([]byte, error) {
	for _, s := range m.stores {
		data, err := s.Get(ctx, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return data, err
	}
	return nil, ErrNotFound
}

// List lists the primary store.
func (m *Mirror) List(ctx context.Context, prefix string) ([]string, error) {
	return m.stores[0].List(ctx, prefix)
}

// Delete removes the blob from all stores concurrently.
func (m *Mirror) Delete(ctx context.Context, name string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range m.stores {
		g.Go(func() error {
			return s.Delete(ctx, name)
		})
	}
	return g.Wait()
}
