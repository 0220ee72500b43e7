// Package blobstore stores named, opaque byte blobs such as session
// snapshots.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral sessions
//   - LocalStore: one file per blob under a root directory
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3 via aws-sdk-go-v2
//   - badger.Store: embedded Badger key-value database
//   - Mirror: fan-out over several stores
//
// All implementations are safe for concurrent use and report missing blobs
// with an error satisfying errors.Is(err, ErrNotFound).
package blobstore
