// Package storetest provides a contract test suite for blobstore.Store
// implementations.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagecluster/blobstore"
)

// Run exercises the Store contract against s. s must start empty.
func Run(t *testing.T, s blobstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		data := []byte("hello world")
		require.NoError(t, s.Put(ctx, "sessions/a.snap", data))

		got, err := s.Get(ctx, "sessions/a.snap")
		require.NoError(t, err)
		assert.Equal(t, data, got)

		// The store must not alias caller memory.
		data[0] = 'X'
		got, err = s.Get(ctx, "sessions/a.snap")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello world"), got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "sessions/a.snap", []byte("v2")))
		got, err := s.Get(ctx, "sessions/a.snap")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "sessions/b.snap", []byte("b")))
		require.NoError(t, s.Put(ctx, "other", []byte("o")))

		names, err := s.List(ctx, "sessions/")
		require.NoError(t, err)
		assert.Equal(t, []string{"sessions/a.snap", "sessions/b.snap"}, names)

		all, err := s.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"other", "sessions/a.snap", "sessions/b.snap"}, all)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "other"))
		require.NoError(t, s.Delete(ctx, "other"))

		_, err := s.Get(ctx, "other")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
