package backup

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalBackendUploadWritesFile(t *testing.T) {
	dir := t.TempDir()
	backend := NewLocalBackend(filepath.Join(dir, "backups"))

	err := backend.Upload(context.Background(), "ledger.txt.bak", []byte("1 alice workshop\n#\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "backups", "ledger.txt.bak"))
	require.NoError(t, err)
	assert.Equal(t, "1 alice workshop\n#\n", string(data))
}

func TestObjectNameIncludesTimestamp(t *testing.T) {
	at := time.Date(2022, 4, 28, 11, 0, 0, 0, time.UTC)
	name := ObjectName("/var/data/ledger.txt", at)
	assert.Equal(t, "ledger.txt.20220428T110000Z.bak", name)
}

func TestSchedulerRunOnceUploadsLedger(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "ledger.txt")
	require.NoError(t, os.WriteFile(ledgerPath, []byte("#\n"), 0o644))

	backend := NewLocalBackend(filepath.Join(dir, "backups"))
	scheduler := NewScheduler(backend, ledgerPath, discardLogger())
	scheduler.runOnce()

	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
