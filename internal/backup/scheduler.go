package backup

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically snapshots the ledger file and uploads it
// through a Backend on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	backend    Backend
	ledgerPath string
	logger     *slog.Logger
}

// NewScheduler builds a Scheduler. Nothing runs until Start is called.
func NewScheduler(backend Backend, ledgerPath string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		backend:    backend,
		ledgerPath: ledgerPath,
		logger:     logger,
	}
}

// Start registers the backup job on spec and begins running it. spec
// is a standard five-field cron expression, e.g. "0 */6 * * *" for
// every six hours.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runOnce)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for any in-flight job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce() {
	ctx := context.Background()
	data, err := os.ReadFile(s.ledgerPath)
	if err != nil {
		s.logger.Error("backup: failed to read ledger", "error", err)
		return
	}
	name := ObjectName(s.ledgerPath, time.Now())
	if err := s.backend.Upload(ctx, name, data); err != nil {
		s.logger.Error("backup: upload failed", "error", err)
		return
	}
	s.logger.Info("backup: snapshot uploaded", "object", name, "bytes", len(data))
}
