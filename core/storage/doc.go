// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the rest of the
// application (and its tests) never depend on a concrete transport. Both AWS S3
// and self-hosted MinIO endpoints are supported.
//
// # Client Interface
//
// The Client interface is the seam used for testing: core/storage/mocks holds a
// testify mock for call-level assertions and core/storage/memstore an in-memory
// bucket for behavioural tests.
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//   - StatObject: Retrieves metadata only.
//   - ListObjects: Lists objects in a bucket, paging transparently.
//   - RemoveObject: Deletes a single object.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
