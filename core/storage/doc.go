// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client, which speaks to both AWS S3 and self-hosted
// MinIO. The classifier uses it for two things:
//
//   - Fetching the model artifact when model.source is "storage".
//   - Archiving classified outputs when prediction.archive is enabled.
//
// # Client Interface
//
// The Client interface abstracts the provider so tests can swap in
// core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
