package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse/internal/adapters/storage"
	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/test/helpers"
)

func TestParseS3Location(t *testing.T) {
	tests := []struct {
		name       string
		location   string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{name: "bucket_and_key", location: "s3://stock/warehouse.json", wantBucket: "stock", wantKey: "warehouse.json"},
		{name: "nested_key", location: "s3://stock/2025/01/inv.json", wantBucket: "stock", wantKey: "2025/01/inv.json"},
		{name: "missing_key", location: "s3://stock", wantErr: true},
		{name: "empty_key", location: "s3://stock/", wantErr: true},
		{name: "local_path", location: "inventory.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := storage.ParseS3Location(tt.location)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestLocalStorage_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	local := storage.NewLocalStorage(dir, helpers.TestLogger())
	ctx := context.Background()

	require.NoError(t, local.Write(ctx, "inventory.json", []byte(`{"a":1}`)))
	require.NoError(t, local.Write(ctx, "inventory.json", []byte(`{"b":2}`)))

	data, err := local.Read(ctx, "inventory.json")
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLocalStorage_AbsolutePathIgnoresBase(t *testing.T) {
	dir := t.TempDir()
	local := storage.NewLocalStorage("/nonexistent-base", helpers.TestLogger())
	path := filepath.Join(dir, "abs.json")

	require.NoError(t, local.Write(context.Background(), path, []byte("{}")))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLocalStorage_ReadMissingIsNotFound(t *testing.T) {
	local := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())

	_, err := local.Read(context.Background(), "nope.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalStorage_WriteIntoMissingDirIsIOError(t *testing.T) {
	local := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())

	err := local.Write(context.Background(), filepath.Join("missing", "dir", "inv.json"), []byte("{}"))
	assert.ErrorIs(t, err, domain.ErrIO)
}

// fakeS3 keeps objects in memory. Unimplemented methods panic through the
// nil embedded interface, which small uploads never reach.
type fakeS3 struct {
	storage.S3API
	objects map[string][]byte
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Storage_WriteThenRead(t *testing.T) {
	api := newFakeS3()
	store := storage.NewS3Storage(api, "stock", helpers.TestLogger())
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "inv.json", []byte(`{"x":1}`)))
	assert.Contains(t, api.objects, "stock/inv.json")

	data, err := store.Read(ctx, "inv.json")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(data))
}

func TestS3Storage_ReadErrors(t *testing.T) {
	t.Run("missing_key_is_not_found", func(t *testing.T) {
		store := storage.NewS3Storage(newFakeS3(), "stock", helpers.TestLogger())

		_, err := store.Read(context.Background(), "missing.json")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("other_failures_are_io_errors", func(t *testing.T) {
		api := newFakeS3()
		api.getErr = errors.New("connection reset")
		store := storage.NewS3Storage(api, "stock", helpers.TestLogger())

		_, err := store.Read(context.Background(), "inv.json")
		assert.ErrorIs(t, err, domain.ErrIO)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}
