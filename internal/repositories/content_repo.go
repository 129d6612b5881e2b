package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/models"
)

const contentColumns = `
	id, type, slug, title, data, metadata, status, version, excerpt, word_count,
	author_id, last_modified_by, published_at, scheduled_at, created_at, updated_at`

// ContentRepo is the versioned record store: the current truth for pages and
// posts. Updates go through UpdateTx so callers can bundle the row write with
// the revision snapshot and the audit entry in one transaction.
type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

func scanContent(row pgx.Row) (*models.Content, error) {
	var c models.Content
	err := row.Scan(&c.ID, &c.Type, &c.Slug, &c.Title, &c.Data, &c.Metadata,
		&c.Status, &c.Version, &c.Excerpt, &c.WordCount, &c.AuthorID,
		&c.LastModifiedBy, &c.PublishedAt, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepo) CreateTx(ctx context.Context, tx pgx.Tx, c *models.Content) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO contents (type, slug, title, data, metadata, status, version,
			excerpt, word_count, author_id, last_modified_by, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, c.Type, c.Slug, c.Title, c.Data, c.Metadata, c.Status, c.Version,
		c.Excerpt, c.WordCount, c.AuthorID, c.LastModifiedBy, c.PublishedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.Conflict("slug", c.Slug)
	}
	if err != nil {
		return apperrors.Storage("failed to create content", err)
	}
	return nil
}

func (r *ContentRepo) GetBySlug(ctx context.Context, ctype, slug string) (*models.Content, error) {
	c, err := scanContent(r.pool.QueryRow(ctx,
		`SELECT`+contentColumns+` FROM contents WHERE type = $1 AND slug = $2`, ctype, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound(ctype, slug)
	}
	if err != nil {
		return nil, apperrors.Storage("failed to load content", err)
	}
	return c, nil
}

// GetBySlugForUpdateTx locks the row so the diff and the snapshot are
// computed against the state actually being replaced.
func (r *ContentRepo) GetBySlugForUpdateTx(ctx context.Context, tx pgx.Tx, ctype, slug string) (*models.Content, error) {
	c, err := scanContent(tx.QueryRow(ctx,
		`SELECT`+contentColumns+` FROM contents WHERE type = $1 AND slug = $2 FOR UPDATE`, ctype, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound(ctype, slug)
	}
	if err != nil {
		return nil, apperrors.Storage("failed to load content", err)
	}
	return c, nil
}

func (r *ContentRepo) UpdateTx(ctx context.Context, tx pgx.Tx, c *models.Content) error {
	tag, err := tx.Exec(ctx, `
		UPDATE contents SET
			slug = $1, title = $2, data = $3, metadata = $4, status = $5,
			version = $6, excerpt = $7, word_count = $8, last_modified_by = $9,
			published_at = $10, scheduled_at = $11, updated_at = now()
		WHERE id = $12
	`, c.Slug, c.Title, c.Data, c.Metadata, c.Status, c.Version, c.Excerpt,
		c.WordCount, c.LastModifiedBy, c.PublishedAt, c.ScheduledAt, c.ID)
	if isUniqueViolation(err) {
		return apperrors.Conflict("slug", c.Slug)
	}
	if err != nil {
		return apperrors.Storage("failed to update content", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(c.Type, c.Slug)
	}
	return nil
}

func (r *ContentRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return apperrors.Storage("failed to delete content", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("content", id.String())
	}
	return nil
}

type ContentFilter struct {
	Type   string
	Status *string
	Limit  int
	Offset int
}

func (r *ContentRepo) List(ctx context.Context, f ContentFilter) ([]models.Content, error) {
	query := `SELECT` + contentColumns + ` FROM contents WHERE type = $1`
	args := []any{f.Type}
	argIdx := 2

	if f.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *f.Status)
		argIdx++
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage("failed to list contents", err)
	}
	defer rows.Close()

	var out []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, apperrors.Storage("failed to scan content", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
