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

type MediaRepo struct {
	pool *pgxpool.Pool
}

func NewMediaRepo(pool *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{pool: pool}
}

func (r *MediaRepo) CreateTx(ctx context.Context, tx pgx.Tx, m *models.MediaAsset) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO media_assets (filename, mime_type, size_bytes, storage_path, alt_text, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, m.Filename, m.MimeType, m.SizeBytes, m.StoragePath, m.AltText, m.UploadedBy,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return apperrors.Storage("failed to create media asset", err)
	}
	return nil
}

func (r *MediaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	var m models.MediaAsset
	err := r.pool.QueryRow(ctx, `
		SELECT id, filename, mime_type, size_bytes, storage_path, alt_text, uploaded_by, created_at, updated_at
		FROM media_assets WHERE id = $1
	`, id).Scan(&m.ID, &m.Filename, &m.MimeType, &m.SizeBytes, &m.StoragePath,
		&m.AltText, &m.UploadedBy, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("media asset", id.String())
	}
	if err != nil {
		return nil, apperrors.Storage("failed to load media asset", err)
	}
	return &m, nil
}

func (r *MediaRepo) UpdateTx(ctx context.Context, tx pgx.Tx, m *models.MediaAsset) error {
	tag, err := tx.Exec(ctx, `
		UPDATE media_assets SET filename = $1, alt_text = $2, updated_at = now()
		WHERE id = $3
	`, m.Filename, m.AltText, m.ID)
	if err != nil {
		return apperrors.Storage("failed to update media asset", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("media asset", m.ID.String())
	}
	return nil
}

func (r *MediaRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM media_assets WHERE id = $1`, id)
	if err != nil {
		return apperrors.Storage("failed to delete media asset", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("media asset", id.String())
	}
	return nil
}

func (r *MediaRepo) List(ctx context.Context, limit, offset int) ([]models.MediaAsset, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, filename, mime_type, size_bytes, storage_path, alt_text, uploaded_by, created_at, updated_at
		FROM media_assets ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apperrors.Storage("failed to list media assets", err)
	}
	defer rows.Close()

	var out []models.MediaAsset
	for rows.Next() {
		var m models.MediaAsset
		if err := rows.Scan(&m.ID, &m.Filename, &m.MimeType, &m.SizeBytes, &m.StoragePath,
			&m.AltText, &m.UploadedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperrors.Storage("failed to scan media asset", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
