package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/models"
)

type SnippetRepo struct {
	pool *pgxpool.Pool
}

func NewSnippetRepo(pool *pgxpool.Pool) *SnippetRepo {
	return &SnippetRepo{pool: pool}
}

func (r *SnippetRepo) CreateTx(ctx context.Context, tx pgx.Tx, s *models.Snippet) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO snippets (name, location, code, enabled, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Location, s.Code, s.Enabled, s.CreatedBy,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.Conflict("name", s.Name)
	}
	if err != nil {
		return apperrors.Storage("failed to create snippet", err)
	}
	return nil
}

func (r *SnippetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Snippet, error) {
	var s models.Snippet
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, location, code, enabled, created_by, created_at, updated_at
		FROM snippets WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Location, &s.Code, &s.Enabled, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("snippet", id.String())
	}
	if err != nil {
		return nil, apperrors.Storage("failed to load snippet", err)
	}
	return &s, nil
}

func (r *SnippetRepo) UpdateTx(ctx context.Context, tx pgx.Tx, s *models.Snippet) error {
	tag, err := tx.Exec(ctx, `
		UPDATE snippets SET name = $1, location = $2, code = $3, enabled = $4, updated_at = now()
		WHERE id = $5
	`, s.Name, s.Location, s.Code, s.Enabled, s.ID)
	if isUniqueViolation(err) {
		return apperrors.Conflict("name", s.Name)
	}
	if err != nil {
		return apperrors.Storage("failed to update snippet", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("snippet", s.ID.String())
	}
	return nil
}

func (r *SnippetRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM snippets WHERE id = $1`, id)
	if err != nil {
		return apperrors.Storage("failed to delete snippet", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("snippet", id.String())
	}
	return nil
}

func (r *SnippetRepo) List(ctx context.Context, onlyEnabled bool) ([]models.Snippet, error) {
	query := `SELECT id, name, location, code, enabled, created_by, created_at, updated_at FROM snippets`
	if onlyEnabled {
		query += ` WHERE enabled`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Storage("failed to list snippets", err)
	}
	defer rows.Close()

	var out []models.Snippet
	for rows.Next() {
		var s models.Snippet
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Code, &s.Enabled, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, apperrors.Storage("failed to scan snippet", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
