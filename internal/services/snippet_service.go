package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/db"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/repositories"
	"go.uber.org/zap"
)

const snippetsTable = "snippets"

// SnippetService manages custom injected code blocks.
type SnippetService struct {
	pool        *pgxpool.Pool
	snippetRepo *repositories.SnippetRepo
	auditRepo   *repositories.AuditRepo
	log         *zap.Logger
}

func NewSnippetService(pool *pgxpool.Pool, snippetRepo *repositories.SnippetRepo, auditRepo *repositories.AuditRepo, log *zap.Logger) *SnippetService {
	return &SnippetService{pool: pool, snippetRepo: snippetRepo, auditRepo: auditRepo, log: log}
}

func (s *SnippetService) Create(ctx context.Context, actor models.Actor, sn *models.Snippet) error {
	if sn.Name == "" {
		return apperrors.Validation("name", "required")
	}
	if !models.IsValidSnippetLocation(sn.Location) {
		return apperrors.Validation("location", fmt.Sprintf("%q is not an injection location", sn.Location))
	}
	sn.CreatedBy = actor.ID

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.snippetRepo.CreateTx(ctx, tx, sn); err != nil {
			return err
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  snippetsTable,
			RecordID:   sn.ID,
			Action:     models.AuditActionInsert,
			ActorID:    &actor.ID,
			ActorLabel: actor.Label,
			NewValues:  sn.AuditValues(),
		})
	})
}

type SnippetPatch struct {
	Name     *string
	Location *string
	Code     *string
	Enabled  *bool
}

func (s *SnippetService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, patch SnippetPatch) (*models.Snippet, error) {
	if patch.Name == nil && patch.Location == nil && patch.Code == nil && patch.Enabled == nil {
		return nil, apperrors.Validation("patch", "no fields to update")
	}
	if patch.Location != nil && !models.IsValidSnippetLocation(*patch.Location) {
		return nil, apperrors.Validation("location", fmt.Sprintf("%q is not an injection location", *patch.Location))
	}

	cur, err := s.snippetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValues := cur.AuditValues()
	if patch.Name != nil {
		cur.Name = *patch.Name
	}
	if patch.Location != nil {
		cur.Location = *patch.Location
	}
	if patch.Code != nil {
		cur.Code = *patch.Code
	}
	if patch.Enabled != nil {
		cur.Enabled = *patch.Enabled
	}

	fields := models.ChangedFields(oldValues, cur.AuditValues())

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.snippetRepo.UpdateTx(ctx, tx, cur); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:     snippetsTable,
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

func (s *SnippetService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	cur, err := s.snippetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.snippetRepo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  snippetsTable,
			RecordID:   cur.ID,
			Action:     models.AuditActionDelete,
			ActorID:    &actor.ID,
			ActorLabel: actor.Label,
			OldValues:  cur.AuditValues(),
		})
	})
}

func (s *SnippetService) List(ctx context.Context, onlyEnabled bool) ([]models.Snippet, error) {
	return s.snippetRepo.List(ctx, onlyEnabled)
}
