package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/models"
)

const revisionColumns = `
	id, content_type, content_id, version, title, data, metadata, status,
	changed_by, change_summary, created_at`

// RevisionRepo stores history snapshots. Rows are written only through
// InsertTx from the content update transaction and are never updated or
// deleted except by the age-based retention sweep. There is deliberately no
// foreign key to contents: history survives a hard delete of the live row.
type RevisionRepo struct {
	pool *pgxpool.Pool
}

func NewRevisionRepo(pool *pgxpool.Pool) *RevisionRepo {
	return &RevisionRepo{pool: pool}
}

func (r *RevisionRepo) InsertTx(ctx context.Context, tx pgx.Tx, rev *models.ContentRevision) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO content_revisions (content_type, content_id, version, title, data, metadata, status, changed_by, change_summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, rev.ContentType, rev.ContentID, rev.Version, rev.Title, rev.Data,
		rev.Metadata, rev.Status, rev.ChangedBy, rev.ChangeSummary,
	).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		return apperrors.Storage("failed to write revision", err)
	}
	return nil
}

func scanRevision(row pgx.Row) (*models.ContentRevision, error) {
	var rev models.ContentRevision
	err := row.Scan(&rev.ID, &rev.ContentType, &rev.ContentID, &rev.Version,
		&rev.Title, &rev.Data, &rev.Metadata, &rev.Status, &rev.ChangedBy,
		&rev.ChangeSummary, &rev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// GetByVersionTx looks up the snapshot for one past version. Version numbers
// are not guaranteed contiguous once retention has pruned old rows, so a
// missing version is a NotFound naming it, not an internal error.
func (r *RevisionRepo) GetByVersionTx(ctx context.Context, tx pgx.Tx, ctype string, contentID uuid.UUID, version int) (*models.ContentRevision, error) {
	rev, err := scanRevision(tx.QueryRow(ctx,
		`SELECT`+revisionColumns+` FROM content_revisions WHERE content_type = $1 AND content_id = $2 AND version = $3`,
		ctype, contentID, version))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("revision", "version %d", version)
	}
	if err != nil {
		return nil, apperrors.Storage("failed to load revision", err)
	}
	return rev, nil
}

// ListByContent returns snapshots newest-version-first.
func (r *RevisionRepo) ListByContent(ctx context.Context, ctype string, contentID uuid.UUID, limit int) ([]models.ContentRevision, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx,
		`SELECT`+revisionColumns+` FROM content_revisions
		 WHERE content_type = $1 AND content_id = $2
		 ORDER BY version DESC LIMIT $3`,
		ctype, contentID, limit)
	if err != nil {
		return nil, apperrors.Storage("failed to list revisions", err)
	}
	defer rows.Close()

	var out []models.ContentRevision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, apperrors.Storage("failed to scan revision", err)
		}
		out = append(out, *rev)
	}
	return out, rows.Err()
}

// DeleteOlderThan removes snapshots past the retention window and returns
// how many were dropped. Invoked by the worker, never by request-path code.
func (r *RevisionRepo) DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	tag, err := r.pool.Exec(ctx, `DELETE FROM content_revisions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, apperrors.Storage(fmt.Sprintf("failed to prune revisions older than %s", maxAge), err)
	}
	return tag.RowsAffected(), nil
}
