// Command server runs the MPCS Inc. reservation HTTP edge: the engine,
// staff directory, session issuer, notification hub, and backup
// scheduler wired together behind Gin, the way the teacher's
// cmd/server wires its own collaborators.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"mpcs-reservation/internal/authn"
	"mpcs-reservation/internal/backup"
	"mpcs-reservation/internal/config"
	"mpcs-reservation/internal/engine"
	"mpcs-reservation/internal/httpapi"
	"mpcs-reservation/internal/notify"
	"mpcs-reservation/internal/staffdir"
	"mpcs-reservation/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, continuing with environment and defaults")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	fileStore := store.New(cfg.LedgerPath)
	if err := fileStore.Load(); err != nil {
		logger.Error("failed to load ledger", "path", cfg.LedgerPath, "error", err)
		os.Exit(1)
	}
	eng := engine.New(fileStore, func() int64 { return time.Now().Unix() })

	db, err := staffdir.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to staff directory", "error", err)
		os.Exit(1)
	}
	staffRepo := staffdir.NewGORMRepository(db)

	issuer := authn.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	hub := notify.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	scheduler, err := wireBackup(cfg, logger)
	if err != nil {
		logger.Error("failed to configure backup scheduler", "error", err)
		os.Exit(1)
	}
	if scheduler != nil {
		if err := scheduler.Start(cfg.BackupCronSpec); err != nil {
			logger.Error("failed to start backup scheduler", "error", err)
			os.Exit(1)
		}
		defer scheduler.Stop()
	}

	server := httpapi.New(cfg, logger, eng, staffRepo, issuer, hub)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("http server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(server, logger)
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.PrettyLogs {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func wireBackup(cfg *config.Config, logger *slog.Logger) (*backup.Scheduler, error) {
	var backend backup.Backend
	if cfg.GCSBucket != "" {
		client, err := storage.NewClient(context.Background())
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		backend = backup.NewGCSBackend(client, cfg.GCSBucket, cfg.GCSPrefix)
	} else {
		backend = backup.NewLocalBackend(cfg.BackupDir)
	}
	return backup.NewScheduler(backend, cfg.LedgerPath, logger), nil
}

func waitForShutdown(server *httpapi.Server, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
