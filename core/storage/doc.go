// Package storage provides the object storage client used for input datasets
// and match results.
//
// It wraps the MinIO Go client behind the Client interface so that AWS S3 and
// self-hosted MinIO are interchangeable and tests can substitute
// core/storage/mocks.
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
