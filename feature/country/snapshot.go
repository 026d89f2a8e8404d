package country

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"geotree/core/storage"

	"github.com/jonboulle/clockwork"
	"github.com/minio/minio-go/v7"
)

// snapshotLayout is lexically sortable, so the newest key sorts last.
const snapshotLayout = "20060102T150405Z"

// Archiver writes fetched documents to object storage under
// <prefix>/<UTC timestamp>.json.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	clock  clockwork.Clock
}

// NewArchiver creates an archiver. A nil clock uses the real clock.
func NewArchiver(client storage.Client, bucket, prefix string, clock clockwork.Clock) *Archiver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Archiver{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		clock:  clock,
	}
}

// Archive uploads body and returns its object key. The bucket is created if missing.
func (a *Archiver) Archive(ctx context.Context, body []byte) (string, error) {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}

	key := path.Join(a.prefix, a.clock.Now().UTC().Format(snapshotLayout)+".json")
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}
	return key, nil
}

// List returns the archived snapshot keys, oldest first.
func (a *Archiver) List(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{Prefix: a.prefix + "/", Recursive: true}

	keys := []string{}
	for obj := range a.client.ListObjects(ctx, a.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Latest returns the newest snapshot key, or ErrNoSnapshot.
func (a *Archiver) Latest(ctx context.Context) (string, error) {
	keys, err := a.List(ctx)
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return "", ErrNoSnapshot
	}
	return keys[len(keys)-1], nil
}

// Source returns a Source replaying the snapshot stored at key. An empty key
// replays the newest snapshot.
func (a *Archiver) Source(key string) *SnapshotSource {
	return &SnapshotSource{archiver: a, key: key}
}

// SnapshotSource reads a previously archived document instead of the remote API.
type SnapshotSource struct {
	archiver *Archiver
	key      string
}

// Origin implements Source.
func (s *SnapshotSource) Origin() string {
	key := s.key
	if key == "" {
		key = s.archiver.prefix + "/latest"
	}
	return "s3://" + s.archiver.bucket + "/" + key
}

// FetchRaw implements Source.
func (s *SnapshotSource) FetchRaw(ctx context.Context) ([]byte, error) {
	key := s.key
	if key == "" {
		latest, err := s.archiver.Latest(ctx)
		if err != nil {
			return nil, &FetchError{URL: s.Origin(), Err: err}
		}
		key = latest
	}

	obj, err := s.archiver.client.GetObject(ctx, s.archiver.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &FetchError{URL: s.Origin(), Err: err}
	}
	defer obj.Close()

	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, &FetchError{URL: s.Origin(), Err: fmt.Errorf("read snapshot %s: %w", key, err)}
	}
	return body, nil
}
