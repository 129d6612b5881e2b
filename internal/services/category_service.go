package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/db"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/repositories"
	"go.uber.org/zap"
)

const categoriesTable = "categories"

// CategoryService covers categories and tags. Not versioned, but every
// mutation lands in the audit trail within the same transaction.
type CategoryService struct {
	pool         *pgxpool.Pool
	categoryRepo *repositories.CategoryRepo
	auditRepo    *repositories.AuditRepo
	log          *zap.Logger
}

func NewCategoryService(pool *pgxpool.Pool, categoryRepo *repositories.CategoryRepo, auditRepo *repositories.AuditRepo, log *zap.Logger) *CategoryService {
	return &CategoryService{pool: pool, categoryRepo: categoryRepo, auditRepo: auditRepo, log: log}
}

func (s *CategoryService) Create(ctx context.Context, actor models.Actor, c *models.Category) error {
	if !models.IsValidCategoryKind(c.Kind) {
		return apperrors.Validation("kind", fmt.Sprintf("%q is not a category kind", c.Kind))
	}
	if c.Name == "" {
		return apperrors.Validation("name", "required")
	}
	if c.Slug == "" {
		return apperrors.Validation("slug", "required")
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.categoryRepo.CreateTx(ctx, tx, c); err != nil {
			return err
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  categoriesTable,
			RecordID:   c.ID,
			Action:     models.AuditActionInsert,
			ActorID:    &actor.ID,
			ActorLabel: actor.Label,
			NewValues:  c.AuditValues(),
		})
	})
}

type CategoryPatch struct {
	Name        *string
	Slug        *string
	Description *string
}

func (s *CategoryService) Update(ctx context.Context, actor models.Actor, kind, slug string, patch CategoryPatch) (*models.Category, error) {
	if patch.Name == nil && patch.Slug == nil && patch.Description == nil {
		return nil, apperrors.Validation("patch", "no fields to update")
	}

	cur, err := s.categoryRepo.GetBySlug(ctx, kind, slug)
	if err != nil {
		return nil, err
	}

	oldValues := cur.AuditValues()
	if patch.Name != nil {
		cur.Name = *patch.Name
	}
	if patch.Slug != nil {
		cur.Slug = *patch.Slug
	}
	if patch.Description != nil {
		cur.Description = patch.Description
	}

	fields := models.ChangedFields(oldValues, cur.AuditValues())

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.categoryRepo.UpdateTx(ctx, tx, cur); err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:     categoriesTable,
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

func (s *CategoryService) Delete(ctx context.Context, actor models.Actor, kind, slug string) error {
	cur, err := s.categoryRepo.GetBySlug(ctx, kind, slug)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.categoryRepo.DeleteTx(ctx, tx, cur); err != nil {
			return err
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  categoriesTable,
			RecordID:   cur.ID,
			Action:     models.AuditActionDelete,
			ActorID:    &actor.ID,
			ActorLabel: actor.Label,
			OldValues:  cur.AuditValues(),
		})
	})
}

func (s *CategoryService) GetBySlug(ctx context.Context, kind, slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(ctx, kind, slug)
}

func (s *CategoryService) List(ctx context.Context, kind *string) ([]models.Category, error) {
	if kind != nil && !models.IsValidCategoryKind(*kind) {
		return nil, apperrors.Validation("kind", fmt.Sprintf("%q is not a category kind", *kind))
	}
	return s.categoryRepo.List(ctx, kind)
}
