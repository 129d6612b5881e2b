package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/slatecms/backend/internal/config"
	"github.com/slatecms/backend/internal/db"
	"github.com/slatecms/backend/internal/repositories"
	"github.com/slatecms/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Repos
	revisionRepo := repositories.NewRevisionRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Services
	retentionService := services.NewRetentionService(revisionRepo, auditRepo, log)

	log.Info("worker started",
		zap.Duration("sweep_period", cfg.RetentionSweepPeriod),
		zap.Duration("history_max_age", cfg.HistoryMaxAge),
		zap.Duration("audit_log_max_age", cfg.AuditLogMaxAge))

	sweepTicker := time.NewTicker(cfg.RetentionSweepPeriod)
	defer sweepTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			runRetentionSweep(ctx, retentionService, cfg, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		}
	}
}

func runRetentionSweep(ctx context.Context, svc *services.RetentionService, cfg *config.Config, log *zap.Logger) {
	if _, err := svc.CleanupHistoryOlderThan(ctx, cfg.HistoryMaxAge); err != nil {
		log.Error("history retention sweep failed", zap.Error(err))
	}
	if _, err := svc.CleanupAuditLogOlderThan(ctx, cfg.AuditLogMaxAge); err != nil {
		log.Error("audit retention sweep failed", zap.Error(err))
	}
}
