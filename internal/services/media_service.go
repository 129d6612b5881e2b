package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/db"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/repositories"
	"go.uber.org/zap"
)

const mediaTable = "media_assets"

// MediaService manages media library metadata. The binary payload lives in
// external object storage; this service only tracks the records, audited
// like every other watched table.
type MediaService struct {
	pool      *pgxpool.Pool
	mediaRepo *repositories.MediaRepo
	auditRepo *repositories.AuditRepo
	log       *zap.Logger
}

func NewMediaService(pool *pgxpool.Pool, mediaRepo *repositories.MediaRepo, auditRepo *repositories.AuditRepo, log *zap.Logger) *MediaService {
	return &MediaService{pool: pool, mediaRepo: mediaRepo, auditRepo: auditRepo, log: log}
}

func (s *MediaService) Create(ctx context.Context, actor models.Actor, m *models.MediaAsset) error {
	if m.Filename == "" {
		return apperrors.Validation("filename", "required")
	}
	if m.StoragePath == "" {
		return apperrors.Validation("storage_path", "required")
	}
	m.UploadedBy = actor.ID

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.mediaRepo.CreateTx(ctx, tx, m); err != nil {
			return err
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  mediaTable,
			RecordID:   m.ID,
			Action:     models.AuditActionInsert,
			ActorID:    &actor.ID,
			ActorLabel: actor.Label,
			NewValues:  m.AuditValues(),
		})
	})
}

type MediaPatch struct {
	Filename *string
	AltText  *string
}

func (s *MediaService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, patch MediaPatch) (*models.MediaAsset, error) {
	if patch.Filename == nil && patch.AltText == nil {
		return nil, apperrors.Validation("patch", "no fields to update")
	}

	cur, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValues := cur.AuditValues()
	if patch.Filename != nil {
		cur.Filename = *patch.Filename
	}
	if patch.AltText != nil {
		cur.AltText = patch.AltText
	}

	fields := models.ChangedFields(oldValues, cur.AuditValues())

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.mediaRepo.UpdateTx(ctx, tx, cur); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:     mediaTable,
			RecordID:      cur.ID,
			Action:        models.AuditActionUpdate,
			ActorID:       &actor.ID,
			ActorLabel:    actor.Label,
			OldValues:     oldValues,
			NewValues:     cur.AuditValues(),
			ChangedFields: fields,
		})
	})
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *MediaService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	cur, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.mediaRepo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  mediaTable,
			RecordID:   cur.ID,
			Action:     models.AuditActionDelete,
			ActorID:    &actor.ID,
			ActorLabel: actor.Label,
			OldValues:  cur.AuditValues(),
		})
	})
}

func (s *MediaService) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	return s.mediaRepo.GetByID(ctx, id)
}

func (s *MediaService) List(ctx context.Context, limit, offset int) ([]models.MediaAsset, error) {
	return s.mediaRepo.List(ctx, limit, offset)
}
