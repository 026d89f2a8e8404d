package checks

import (
	"context"
	"fmt"
	"strings"

	"geotree/core/storage"

	"github.com/minio/minio-go/v7"
)

// SnapshotReport describes the archived country documents.
type SnapshotReport struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
	Latest string `json:"latest,omitempty"`
}

// CheckSnapshots verifies the snapshot bucket exists and reports what it holds.
func CheckSnapshots(ctx context.Context, client storage.Client, bucket, prefix string) (*SnapshotReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	prefix = strings.Trim(prefix, "/")
	report := &SnapshotReport{Bucket: bucket, Prefix: prefix}

	opts := minio.ListObjectsOptions{Prefix: prefix + "/", Recursive: true}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		report.Count++
		if obj.Key > report.Latest {
			report.Latest = obj.Key
		}
	}

	return report, nil
}
