package blobstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagecluster/blobstore"
	"github.com/hupe1980/pagecluster/blobstore/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, blobstore.NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	storetest.Run(t, blobstore.NewLocalStore(filepath.Join(t.TempDir(), "blobs")))
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	s := blobstore.NewLocalStore(filepath.Join(t.TempDir(), "nope"))
	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_NoTempFilesLeft(t *testing.T) {
	root := t.TempDir()
	s := blobstore.NewLocalStore(root)
	require.NoError(t, s.Put(context.Background(), "x", []byte("1")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x", entries[0].Name())
}

func TestMirror(t *testing.T) {
	storetest.Run(t, blobstore.NewMirror(blobstore.NewMemoryStore(), blobstore.NewMemoryStore()))
}

func TestMirror_ReadsFallThrough(t *testing.T) {
	ctx := context.Background()
	primary := blobstore.NewMemoryStore()
	secondary := blobstore.NewMemoryStore()
	require.NoError(t, secondary.Put(ctx, "only-secondary", []byte("s")))

	m := blobstore.NewMirror(primary, secondary)
	got, err := m.Get(ctx, "only-secondary")
	require.NoError(t, err)
	assert.Equal(t, []byte("s"), got)

	require.NoError(t, m.Put(ctx, "both", []byte("b")))
	for _, s := range []blobstore.Store{primary, secondary} {
		got, err := s.Get(ctx, "both")
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), got)
	}
}
