package loader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"city-comparison/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileOpener(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	open := FileOpener()
	rc, err := open(context.Background(), path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))

	_, err = open(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStorageOpener(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("GetObject", ctx, "sources", "census/2017.csv", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader("payload")), nil)
	client.On("GetObject", ctx, "sources", "missing.csv", minio.GetObjectOptions{}).
		Return(nil, errors.New("no such key"))

	open := StorageOpener(client, "sources")

	rc, err := open(ctx, "/census/2017.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = open(ctx, "missing.csv")
	assert.ErrorContains(t, err, "sources/missing.csv")
	client.AssertExpectations(t)
}

func TestNewOpener(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", context.Background(), "b", "x", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader("")), nil)

	open := NewOpener(Config{FromStorage: true}, client, "b")
	_, err := open(context.Background(), "x")
	assert.NoError(t, err)
	client.AssertExpectations(t)

	// Local files are used when storage is not configured.
	open = NewOpener(Config{FromStorage: true}, nil, "b")
	_, err = open(context.Background(), filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_CacheTTL(t *testing.T) {
	assert.Zero(t, Config{}.CacheTTL())
	assert.Equal(t, "5m0s", Config{CacheTTLSeconds: 300}.CacheTTL().String())
}
