package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"city-comparison/core/storage"

	"github.com/minio/minio-go/v7"
)

// OpenFunc opens the raw bytes behind a source handle.
type OpenFunc func(ctx context.Context, handle string) (io.ReadCloser, error)

// FileOpener reads handles as local file paths.
func FileOpener() OpenFunc {
	return func(ctx context.Context, handle string) (io.ReadCloser, error) {
		f, err := os.Open(handle)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", handle, err)
		}
		return f, nil
	}
}

// StorageOpener reads handles as object names in bucket.
func StorageOpener(client storage.Client, bucket string) OpenFunc {
	return func(ctx context.Context, handle string) (io.ReadCloser, error) {
		name := strings.TrimPrefix(handle, "/")
		obj, err := client.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, name, err)
		}
		return obj, nil
	}
}

// NewOpener picks the opener matching the configuration.
func NewOpener(cfg Config, client storage.Client, bucket string) OpenFunc {
	if cfg.FromStorage && client != nil {
		return StorageOpener(client, bucket)
	}
	return FileOpener()
}
