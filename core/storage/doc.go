// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client; geotree uses it to archive the raw country
// documents fetched by each import run and to replay an archived document.
//
// The Client interface keeps the MinIO signatures so a testify mock
// (core/storage/mocks) can stand in for it in unit tests.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
