package main

import (
	"context"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/pagecluster/blobstore"
	badgerstore "github.com/hupe1980/pagecluster/blobstore/badger"
	miniostore "github.com/hupe1980/pagecluster/blobstore/minio"
	s3store "github.com/hupe1980/pagecluster/blobstore/s3"
	"github.com/hupe1980/pagecluster/internal/config"
)

// openStore builds the configured snapshot store. It returns a nil store for
// type none. close releases resources and is never nil.
func openStore(ctx context.Context, sc config.StoreConfig) (store blobstore.Store, closeFn func() error, err error) {
	closeFn = func() error { return nil }

	switch sc.Type {
	case config.StoreNone:
		return nil, closeFn, nil
	case config.StoreLocal:
		store = blobstore.NewLocalStore(sc.Dir)
	case config.StoreBadger:
		bs, err := badgerstore.Open(badgerstore.Options{Dir: sc.Dir, SyncWrites: true})
		if err != nil {
			return nil, closeFn, err
		}
		store, closeFn = bs, bs.Close
	case config.StoreMinio:
		client, err := minio.New(sc.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv(sc.AccessKeyEnv), os.Getenv(sc.SecretKeyEnv), ""),
			Secure: sc.UseSSL,
			Region: sc.Region,
		})
		if err != nil {
			return nil, closeFn, fmt.Errorf("minio: %w", err)
		}
		ms := miniostore.NewStore(client, sc.Bucket, sc.Prefix)
		if err := ms.EnsureBucket(ctx); err != nil {
			return nil, closeFn, err
		}
		store = ms
	case config.StoreS3:
		ss, err := s3store.New(ctx, sc.Bucket, func(o *s3store.Options) {
			o.Prefix = sc.Prefix
			o.Region = sc.Region
			o.Endpoint = sc.Endpoint
			o.UsePathStyle = sc.Endpoint != ""
		})
		if err != nil {
			return nil, closeFn, fmt.Errorf("s3: %w", err)
		}
		store = ss
	default:
		return nil, closeFn, fmt.Errorf("unknown store type %q", sc.Type)
	}

	if sc.MirrorDir != "" {
		store = blobstore.NewMirror(store, blobstore.NewLocalStore(sc.MirrorDir))
	}
	return store, closeFn, nil
}
