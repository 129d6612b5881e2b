package models

import (
	"time"

	"github.com/google/uuid"
)

// Category kinds: categories and tags share one table.
const (
	CategoryKindCategory = "category"
	CategoryKindTag      = "tag"
)

func IsValidCategoryKind(k string) bool {
	return k == CategoryKindCategory || k == CategoryKindTag
}

// Category is a taxonomy term. Slug is unique per kind. Not versioned, but
// every mutation is audited.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) AuditValues() map[string]any {
	return map[string]any{
		"kind":        c.Kind,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
	}
}
