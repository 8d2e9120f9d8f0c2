// Package backup ships periodic copies of the on-disk reservation
// ledger to a backup destination: a local directory or a GCS bucket.
// The engine's Store is the system of record; backup is purely a
// copy, never a read path.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Backend uploads one ledger snapshot to its backup destination.
type Backend interface {
	Upload(ctx context.Context, objectName string, data []byte) error
}

// LocalBackend copies snapshots to a second directory on the same
// filesystem. It is the default backend and requires no credentials.
type LocalBackend struct {
	dir string
}

// NewLocalBackend builds a LocalBackend writing into dir.
func NewLocalBackend(dir string) *LocalBackend {
	return &LocalBackend{dir: dir}
}

// Upload writes data to dir/objectName.
func (b *LocalBackend) Upload(_ context.Context, objectName string, data []byte) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("backup: create backup dir: %w", err)
	}
	path := filepath.Join(b.dir, objectName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("backup: write %s: %w", path, err)
	}
	return nil
}

// ObjectName derives a timestamped snapshot name from the ledger path.
func ObjectName(ledgerPath string, at time.Time) string {
	base := filepath.Base(ledgerPath)
	return fmt.Sprintf("%s.%s.bak", base, at.UTC().Format("20060102T150405Z"))
}
