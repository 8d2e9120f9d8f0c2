package backup

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSBackend uploads snapshots to a Google Cloud Storage bucket, for
// deployments that want off-host backup beyond the local filesystem.
type GCSBackend struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSBackend builds a GCSBackend. The caller owns client's
// lifecycle and must Close it on shutdown.
func NewGCSBackend(client *storage.Client, bucket, prefix string) *GCSBackend {
	return &GCSBackend{client: client, bucket: bucket, prefix: prefix}
}

// Upload writes data to the configured bucket under prefix/objectName.
func (b *GCSBackend) Upload(ctx context.Context, objectName string, data []byte) error {
	objectPath := objectName
	if b.prefix != "" {
		objectPath = b.prefix + "/" + objectName
	}
	w := b.client.Bucket(b.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = "text/plain"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("backup: write gs://%s/%s: %w", b.bucket, objectPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("backup: close gs://%s/%s: %w", b.bucket, objectPath, err)
	}
	return nil
}
