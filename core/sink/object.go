package sink

import (
	"bytes"
	"context"
	"fmt"
	"iter"

	"city-comparison/core/storage"
	"city-comparison/core/table"

	"github.com/minio/minio-go/v7"
)

// Object uploads rows as a CSV object.
type Object struct {
	Client storage.Client
	Bucket string
	Region string
	// ObjectName is the full object name, e.g. "results/<run>.csv".
	ObjectName string
}

// Name implements Sink.
func (s *Object) Name() string { return "object:" + s.Bucket + "/" + s.ObjectName }

// Write implements Sink. Nothing is uploaded for an empty sequence.
func (s *Object) Write(ctx context.Context, fields []string, rows iter.Seq[table.Record]) (int, error) {
	var buf bytes.Buffer
	n, err := EncodeCSV(&buf, fields, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to encode csv: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	if err := storage.EnsureBucket(ctx, s.Client, s.Bucket, s.Region); err != nil {
		return 0, err
	}

	size := int64(buf.Len())
	_, err = s.Client.PutObject(ctx, s.Bucket, s.ObjectName, bytes.NewReader(buf.Bytes()), size, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload %s: %w", s.ObjectName, err)
	}
	return n, nil
}
