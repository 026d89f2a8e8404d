package country

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"geotree/core/storage/mocks"

	"github.com/jonboulle/clockwork"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestArchiver_Archive_CreatesBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "geotree").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "geotree", minio.MakeBucketOptions{}).Return(nil)
	client.On("PutObject", mock.Anything, "geotree", "snap/20261019T120000Z.json", mock.Anything, int64(2), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "geotree", "/snap/", clockwork.NewFakeClockAt(testNow))
	key, err := a.Archive(context.Background(), []byte("[]"))
	require.NoError(t, err)
	assert.Equal(t, "snap/20261019T120000Z.json", key)
	client.AssertExpectations(t)
}

func TestArchiver_Archive_UploadFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "geotree").Return(true, nil)
	client.On("PutObject", mock.Anything, "geotree", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	a := NewArchiver(client, "geotree", "snap", clockwork.NewFakeClockAt(testNow))
	_, err := a.Archive(context.Background(), []byte("[]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiver_List(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "geotree", minio.ListObjectsOptions{Prefix: "snap/", Recursive: true}).
		Return(listing("snap/20261019T120000Z.json", "snap/notes.txt", "snap/20250101T000000Z.json"))

	a := NewArchiver(client, "geotree", "snap", nil)
	keys, err := a.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"snap/20250101T000000Z.json", "snap/20261019T120000Z.json"}, keys)
}

func TestArchiver_ListError(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("no such bucket")}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "geotree", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := NewArchiver(client, "geotree", "snap", nil).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such bucket")
}

func TestSnapshotSource_ReplaysLatest(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "geotree", mock.Anything).
		Return(listing("snap/20250101T000000Z.json", "snap/20261019T120000Z.json"))
	client.On("GetObject", mock.Anything, "geotree", "snap/20261019T120000Z.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(testDataset))), nil)

	src := NewArchiver(client, "geotree", "snap", nil).Source("")
	assert.Equal(t, "s3://geotree/snap/latest", src.Origin())

	body, err := src.FetchRaw(context.Background())
	require.NoError(t, err)
	records, err := Decode(src.Origin(), body)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSnapshotSource_Errors(t *testing.T) {
	t.Run("no snapshots", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "geotree", mock.Anything).Return(listing())

		_, err := NewArchiver(client, "geotree", "snap", nil).Source("").FetchRaw(context.Background())
		assert.ErrorIs(t, err, ErrNoSnapshot)
		assert.ErrorAs(t, err, new(*FetchError))
	})

	t.Run("missing object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "geotree", "snap/x.json", mock.Anything).
			Return(nil, errors.New("key does not exist"))

		src := NewArchiver(client, "geotree", "snap", nil).Source("snap/x.json")
		_, err := src.FetchRaw(context.Background())

		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, "s3://geotree/snap/x.json", fetchErr.URL)
	})
}
