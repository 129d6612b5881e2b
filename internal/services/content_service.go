package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/bodyscan"
	"github.com/slatecms/backend/internal/db"
	"github.com/slatecms/backend/internal/events"
	"github.com/slatecms/backend/internal/models"
	"github.com/slatecms/backend/internal/repositories"
	"go.uber.org/zap"
)

const contentsTable = "contents"

// ContentService owns the versioned content lifecycle. Every mutation runs
// in one transaction covering the live-row write, the pre-update revision
// snapshot when a tracked field changed, and the audit entry when anything
// meaningful changed. Restore is an ordinary update whose patch happens to
// come from a stored snapshot.
type ContentService struct {
	pool         *pgxpool.Pool
	contentRepo  *repositories.ContentRepo
	revisionRepo *repositories.RevisionRepo
	auditRepo    *repositories.AuditRepo
	publisher    events.Publisher
	eventChannel string
	log          *zap.Logger
}

func NewContentService(
	pool *pgxpool.Pool,
	contentRepo *repositories.ContentRepo,
	revisionRepo *repositories.RevisionRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	eventChannel string,
	log *zap.Logger,
) *ContentService {
	return &ContentService{
		pool:         pool,
		contentRepo:  contentRepo,
		revisionRepo: revisionRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		eventChannel: eventChannel,
		log:          log,
	}
}

type CreateContentInput struct {
	Type     string
	Slug     string
	Title    string
	Data     models.JSONDoc
	Metadata models.JSONDoc
	Status   string
}

func (s *ContentService) Create(ctx context.Context, actor models.Actor, in CreateContentInput) (*models.Content, error) {
	if !models.IsValidContentType(in.Type) {
		return nil, apperrors.Validation("type", fmt.Sprintf("%q is not a content type", in.Type))
	}
	if in.Title == "" {
		return nil, apperrors.Validation("title", "required")
	}
	if in.Slug == "" {
		return nil, apperrors.Validation("slug", "required")
	}
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if !models.IsValidStatus(in.Status) {
		return nil, apperrors.Validation("status", fmt.Sprintf("%q is not a valid status", in.Status))
	}

	c := newContent(in, actor, time.Now().UTC())

	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.contentRepo.CreateTx(ctx, tx, c); err != nil {
			return err
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  contentsTable,
			RecordID:   c.ID,
			Action:     models.AuditActionInsert,
			ActorID:    &actor.ID,
			ActorLabel: actor.Label,
			NewValues:  c.AuditValues(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventContentCreated, c)
	return c, nil
}

// newContent assembles the version-1 row. A record born published gets the
// same side effects a publish transition gets: published_at stamped and the
// body analyzed for excerpt and word count.
func newContent(in CreateContentInput, actor models.Actor, now time.Time) *models.Content {
	data := in.Data.Clone()
	if data == nil {
		data = models.JSONDoc{}
	}
	meta := in.Metadata.Clone()
	if meta == nil {
		meta = models.JSONDoc{}
	}

	c := &models.Content{
		Type:           in.Type,
		Slug:           in.Slug,
		Title:          in.Title,
		Data:           data,
		Metadata:       meta,
		Status:         in.Status,
		Version:        1,
		AuthorID:       actor.ID,
		LastModifiedBy: actor.ID,
	}

	if c.IsPublished() {
		t := now
		c.PublishedAt = &t
		if res, ok := bodyscan.AnalyzeDoc(c.Data); ok {
			c.Excerpt = &res.Excerpt
			c.WordCount = res.WordCount
		}
	}

	return c
}

// Update applies a partial patch to the record addressed by slug. An empty
// patch is rejected; a patch whose values all match the current row commits
// only the bookkeeping refresh: no version bump, no revision, no audit row.
func (s *ContentService) Update(ctx context.Context, actor models.Actor, ctype, slug string, patch models.ContentPatch) (*models.Content, error) {
	if !models.IsValidContentType(ctype) {
		return nil, apperrors.Validation("type", fmt.Sprintf("%q is not a content type", ctype))
	}
	if patch.IsEmpty() {
		return nil, apperrors.Validation("patch", "no fields to update")
	}
	if patch.Status != nil && !models.IsValidStatus(*patch.Status) {
		return nil, apperrors.Validation("status", fmt.Sprintf("%q is not a valid status", *patch.Status))
	}
	if patch.Slug != nil && *patch.Slug == "" {
		return nil, apperrors.Validation("slug", "must not be empty")
	}

	var updated *models.Content
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		cur, err := s.contentRepo.GetBySlugForUpdateTx(ctx, tx, ctype, slug)
		if err != nil {
			return err
		}
		updated, err = s.applyUpdateTx(ctx, tx, cur, patch, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventContentUpdated, updated)
	return updated, nil
}

// applyUpdateTx is the shared mutation path for Update and Restore. The
// caller already holds the row lock.
func (s *ContentService) applyUpdateTx(ctx context.Context, tx pgx.Tx, cur *models.Content, patch models.ContentPatch, actor models.Actor) (*models.Content, error) {
	oldValues := cur.AuditValues()
	snapshot := cur.Snapshot()

	changed := models.ApplyPatch(cur, patch, time.Now().UTC())
	cur.LastModifiedBy = actor.ID

	if len(changed) > 0 {
		snapshot.ChangedBy = actor.ID
		snapshot.ChangeSummary = patch.ChangeSummary
		if err := s.revisionRepo.InsertTx(ctx, tx, snapshot); err != nil {
			return nil, err
		}
		cur.Version = snapshot.Version + 1

		if cur.IsPublished() {
			if res, ok := bodyscan.AnalyzeDoc(cur.Data); ok {
				cur.Excerpt = &res.Excerpt
				cur.WordCount = res.WordCount
			}
		}
	}

	if err := s.contentRepo.UpdateTx(ctx, tx, cur); err != nil {
		return nil, err
	}

	if fields := models.ChangedFields(oldValues, cur.AuditValues()); len(fields) > 0 {
		err := s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:     contentsTable,
			RecordID:      cur.ID,
			Action:        models.AuditActionUpdate,
			ActorID:       &actor.ID,
			ActorLabel:    actor.Label,
			OldValues:     oldValues,
			NewValues:     cur.AuditValues(),
			ChangedFields: fields,
		})
		if err != nil {
			return nil, err
		}
	}

	return cur, nil
}

// Restore rolls the live row back to the content of a past revision. The
// rollback itself is a normal update: the pre-restore state gets its own
// snapshot and the version keeps climbing. Restoring a snapshot identical to
// the current state is a no-op by the ordinary change-detection rule.
func (s *ContentService) Restore(ctx context.Context, actor models.Actor, ctype, slug string, version int) (*models.Content, error) {
	if !models.IsValidContentType(ctype) {
		return nil, apperrors.Validation("type", fmt.Sprintf("%q is not a content type", ctype))
	}
	if version < 1 {
		return nil, apperrors.Validation("version", "must be a positive integer")
	}

	var restored *models.Content
	var noop bool
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		cur, err := s.contentRepo.GetBySlugForUpdateTx(ctx, tx, ctype, slug)
		if err != nil {
			return err
		}

		// Restoring the current version is idempotent. No revision row
		// exists for a live version (snapshots cover superseded versions
		// only), so this has to short-circuit before the lookup.
		if version == cur.Version {
			restored = cur
			noop = true
			return nil
		}

		rev, err := s.revisionRepo.GetByVersionTx(ctx, tx, ctype, cur.ID, version)
		if err != nil {
			return err
		}

		patch := rev.RestorePatch(fmt.Sprintf("restored from version %d", version))
		restored, err = s.applyUpdateTx(ctx, tx, cur, patch, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	if noop {
		return restored, nil
	}

	s.log.Info("content restored",
		zap.String("type", ctype),
		zap.String("slug", slug),
		zap.Int("from_version", version),
		zap.Int("new_version", restored.Version),
	)
	s.publish(ctx, events.EventContentRestored, restored)
	return restored, nil
}

func (s *ContentService) Delete(ctx context.Context, actor models.Actor, ctype, slug string) error {
	if !models.IsValidContentType(ctype) {
		return apperrors.Validation("type", fmt.Sprintf("%q is not a content type", ctype))
	}

	var deleted *models.Content
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		cur, err := s.contentRepo.GetBySlugForUpdateTx(ctx, tx, ctype, slug)
		if err != nil {
			return err
		}
		deleted = cur

		// Hard delete of the live row only; revisions keep the id and
		// stay readable afterwards.
		if err := s.contentRepo.DeleteTx(ctx, tx, cur.ID); err != nil {
			return err
		}
		return s.auditRepo.InsertTx(ctx, tx, &models.AuditEntry{
			TableName:  contentsTable,
			RecordID:   cur.ID,
			Action:     models.AuditActionDelete,
			ActorID:    &actor.ID,
			ActorLabel: actor.Label,
			OldValues:  cur.AuditValues(),
		})
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventContentDeleted, deleted)
	return nil
}

func (s *ContentService) GetBySlug(ctx context.Context, ctype, slug string) (*models.Content, error) {
	if !models.IsValidContentType(ctype) {
		return nil, apperrors.Validation("type", fmt.Sprintf("%q is not a content type", ctype))
	}
	return s.contentRepo.GetBySlug(ctx, ctype, slug)
}

func (s *ContentService) List(ctx context.Context, f repositories.ContentFilter) ([]models.Content, error) {
	if !models.IsValidContentType(f.Type) {
		return nil, apperrors.Validation("type", fmt.Sprintf("%q is not a content type", f.Type))
	}
	if f.Status != nil && !models.IsValidStatus(*f.Status) {
		return nil, apperrors.Validation("status", fmt.Sprintf("%q is not a valid status", *f.Status))
	}
	return s.contentRepo.List(ctx, f)
}

// GetHistory resolves the slug and lists revisions newest-version-first.
func (s *ContentService) GetHistory(ctx context.Context, ctype, slug string, limit int) ([]models.ContentRevision, error) {
	c, err := s.GetBySlug(ctx, ctype, slug)
	if err != nil {
		return nil, err
	}
	return s.revisionRepo.ListByContent(ctx, ctype, c.ID, limit)
}

// GetHistoryByID lists revisions for an entity id directly. Works for
// deleted entities too: history outlives the live row.
func (s *ContentService) GetHistoryByID(ctx context.Context, ctype string, id uuid.UUID, limit int) ([]models.ContentRevision, error) {
	if !models.IsValidContentType(ctype) {
		return nil, apperrors.Validation("type", fmt.Sprintf("%q is not a content type", ctype))
	}
	return s.revisionRepo.ListByContent(ctx, ctype, id, limit)
}

func (s *ContentService) publish(ctx context.Context, eventType string, c *models.Content) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, s.eventChannel, events.Event{
		Type: eventType,
		Payload: map[string]any{
			"id":      c.ID.String(),
			"type":    c.Type,
			"slug":    c.Slug,
			"version": c.Version,
			"status":  c.Status,
		},
	})
	if err != nil {
		s.log.Warn("event publish failed", zap.String("event", eventType), zap.Error(err))
	}
}
