package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditActionInsert = "INSERT"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditEntry is one row of the generic change trail. It is append-only and
// independent of content versioning: every watched table feeds it, versioned
// or not, and the restore path never reads it.
//
// ActorLabel is denormalized (typically the actor's email) so the trail stays
// readable after the account is deleted. OldValues is nil on INSERT,
// NewValues is nil on DELETE. For UPDATE, ChangedFields lists the columns
// whose value differs; an update with an empty diff is never logged.
type AuditEntry struct {
	ID            uuid.UUID      `json:"id"`
	TableName     string         `json:"table_name"`
	RecordID      uuid.UUID      `json:"record_id"`
	Action        string         `json:"action"`
	ActorID       *uuid.UUID     `json:"actor_id,omitempty"`
	ActorLabel    string         `json:"actor_label"`
	OldValues     map[string]any `json:"old_values,omitempty"`
	NewValues     map[string]any `json:"new_values,omitempty"`
	ChangedFields []string       `json:"changed_fields,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Actor identifies who performs a mutation. Supplied by the auth layer; the
// core trusts it without re-verification.
type Actor struct {
	ID    uuid.UUID
	Label string
}
