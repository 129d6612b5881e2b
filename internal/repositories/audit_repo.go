package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/models"
)

// AuditRepo is the append-only change trail. Entries for content mutations
// are written through InsertTx inside the same transaction as the mutation;
// the only delete path is the age-based retention sweep.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

const auditInsert = `
	INSERT INTO audit_log (table_name, record_id, action, actor_id, actor_label, old_values, new_values, changed_fields)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *AuditRepo) InsertTx(ctx context.Context, tx pgx.Tx, e *models.AuditEntry) error {
	_, err := tx.Exec(ctx, auditInsert, e.TableName, e.RecordID, e.Action,
		e.ActorID, e.ActorLabel, e.OldValues, e.NewValues, e.ChangedFields)
	if err != nil {
		return apperrors.Storage("failed to write audit entry", err)
	}
	return nil
}

type AuditFilter struct {
	TableName *string
	RecordID  *uuid.UUID
	Limit     int
	Offset    int
}

func (r *AuditRepo) List(ctx context.Context, f AuditFilter) ([]models.AuditEntry, error) {
	query := `
		SELECT id, table_name, record_id, action, actor_id, actor_label,
		       old_values, new_values, changed_fields, created_at
		FROM audit_log`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.TableName != nil {
		where = append(where, fmt.Sprintf("table_name = $%d", argIdx))
		args = append(args, *f.TableName)
		argIdx++
	}
	if f.RecordID != nil {
		where = append(where, fmt.Sprintf("record_id = $%d", argIdx))
		args = append(args, *f.RecordID)
		argIdx++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage("failed to list audit entries", err)
	}
	defer rows.Close()

	var out []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.TableName, &e.RecordID, &e.Action,
			&e.ActorID, &e.ActorLabel, &e.OldValues, &e.NewValues,
			&e.ChangedFields, &e.CreatedAt); err != nil {
			return nil, apperrors.Storage("failed to scan audit entry", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *AuditRepo) DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	tag, err := r.pool.Exec(ctx, `DELETE FROM audit_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, apperrors.Storage("failed to prune audit log", err)
	}
	return tag.RowsAffected(), nil
}
