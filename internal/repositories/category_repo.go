package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/models"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (r *CategoryRepo) CreateTx(ctx context.Context, tx pgx.Tx, c *models.Category) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO categories (kind, name, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.Kind, c.Name, c.Slug, c.Description).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.Conflict("slug", c.Slug)
	}
	if err != nil {
		return apperrors.Storage("failed to create category", err)
	}
	return nil
}

func (r *CategoryRepo) GetBySlug(ctx context.Context, kind, slug string) (*models.Category, error) {
	var c models.Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, kind, name, slug, description, created_at, updated_at
		FROM categories WHERE kind = $1 AND slug = $2
	`, kind, slug).Scan(&c.ID, &c.Kind, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound(kind, slug)
	}
	if err != nil {
		return nil, apperrors.Storage("failed to load category", err)
	}
	return &c, nil
}

func (r *CategoryRepo) UpdateTx(ctx context.Context, tx pgx.Tx, c *models.Category) error {
	tag, err := tx.Exec(ctx, `
		UPDATE categories SET name = $1, slug = $2, description = $3, updated_at = now()
		WHERE id = $4
	`, c.Name, c.Slug, c.Description, c.ID)
	if isUniqueViolation(err) {
		return apperrors.Conflict("slug", c.Slug)
	}
	if err != nil {
		return apperrors.Storage("failed to update category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(c.Kind, c.Slug)
	}
	return nil
}

func (r *CategoryRepo) DeleteTx(ctx context.Context, tx pgx.Tx, c *models.Category) error {
	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, c.ID)
	if err != nil {
		return apperrors.Storage("failed to delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(c.Kind, c.Slug)
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context, kind *string) ([]models.Category, error) {
	query := `SELECT id, kind, name, slug, description, created_at, updated_at FROM categories`
	args := []any{}
	if kind != nil {
		query += ` WHERE kind = $1`
		args = append(args, *kind)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage("failed to list categories", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Kind, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperrors.Storage("failed to scan category", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
