package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an editor/admin account. Password digests are stored, never the
// password itself; PasswordHash is excluded from JSON and from audit values.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	Role         string     `json:"role"` // editor / admin
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

func (u *User) AuditValues() map[string]any {
	return map[string]any{
		"email":        u.Email,
		"display_name": u.DisplayName,
		"role":         u.Role,
	}
}
