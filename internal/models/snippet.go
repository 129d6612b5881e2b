package models

import (
	"time"

	"github.com/google/uuid"
)

// Snippet injection locations
const (
	SnippetLocationHead      = "head"
	SnippetLocationBodyStart = "body_start"
	SnippetLocationBodyEnd   = "body_end"
)

func IsValidSnippetLocation(l string) bool {
	return l == SnippetLocationHead || l == SnippetLocationBodyStart || l == SnippetLocationBodyEnd
}

// Snippet is a custom code block injected into rendered pages (analytics
// tags, meta pixels and the like).
type Snippet struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Code      string    `json:"code"`
	Enabled   bool      `json:"enabled"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Snippet) AuditValues() map[string]any {
	return map[string]any{
		"name":     s.Name,
		"location": s.Location,
		"code":     s.Code,
		"enabled":  s.Enabled,
	}
}
