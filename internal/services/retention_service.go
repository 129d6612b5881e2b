package services

import (
	"context"
	"time"

	"github.com/slatecms/backend/internal/repositories"
	"go.uber.org/zap"
)

// RetentionService is the only delete path for revisions and audit entries.
// It runs from the worker on a timer, never from request handlers.
type RetentionService struct {
	revisionRepo *repositories.RevisionRepo
	auditRepo    *repositories.AuditRepo
	log          *zap.Logger
}

func NewRetentionService(revisionRepo *repositories.RevisionRepo, auditRepo *repositories.AuditRepo, log *zap.Logger) *RetentionService {
	return &RetentionService{revisionRepo: revisionRepo, auditRepo: auditRepo, log: log}
}

func (s *RetentionService) CleanupHistoryOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	n, err := s.revisionRepo.DeleteOlderThan(ctx, maxAge)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("pruned content revisions", zap.Int64("count", n), zap.Duration("max_age", maxAge))
	}
	return n, nil
}

func (s *RetentionService) CleanupAuditLogOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	n, err := s.auditRepo.DeleteOlderThan(ctx, maxAge)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("pruned audit log", zap.Int64("count", n), zap.Duration("max_age", maxAge))
	}
	return n, nil
}
