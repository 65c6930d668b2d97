// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface used in two
// places: reading source datasets (loader.StorageOpener) and publishing the
// combined CSV (sink.Object). The interface supports AWS S3 and self-hosted
// MinIO and is mocked in core/storage/mocks for unit tests.
//
// # Operations
//
//   - BucketExists and MakeBucket, combined by EnsureBucket
//   - PutObject: uploads content with size and content type
//   - GetObject: retrieves content as a stream
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
