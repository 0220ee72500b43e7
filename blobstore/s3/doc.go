// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", func(o *s3.Options) {
//	    o.Prefix = "sessions/"
//	    o.Region = "us-east-1"
//	})
//
//	err = clusterer.Save(ctx, store, "crawl-1.snap")
//
// Uploads go through the transfer manager, so large snapshots are sent as
// parallel multipart uploads. Listing follows pagination automatically.
package s3
