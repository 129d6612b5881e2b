package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes pages and blog posts in the shared contents table.
const (
	ContentTypePage = "page"
	ContentTypePost = "post"
)

func IsValidContentType(t string) bool {
	return t == ContentTypePage || t == ContentTypePost
}

// Content statuses
const (
	StatusDraft     = "draft"
	StatusReview    = "review"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var contentStatuses = []string{
	StatusDraft, StatusReview, StatusScheduled, StatusPublished, StatusArchived,
}

func IsValidStatus(s string) bool {
	for _, v := range contentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// JSONDoc is an opaque structured document. Content bodies and metadata are
// free-form JSON; their internal shape is not constrained by the backend.
type JSONDoc map[string]any

// Clone returns a shallow copy one level deep, enough to keep a snapshot from
// aliasing the live row's top-level keys.
func (d JSONDoc) Clone() JSONDoc {
	if d == nil {
		return nil
	}
	out := make(JSONDoc, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Content is a versioned record: a page or a blog post addressed by slug.
// Version starts at 1 and bumps by exactly one whenever a tracked field
// (title, data, metadata, status) changes.
type Content struct {
	ID             uuid.UUID  `json:"id"`
	Type           string     `json:"type"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Data           JSONDoc    `json:"data,omitempty"`
	Metadata       JSONDoc    `json:"metadata,omitempty"`
	Status         string     `json:"status"`
	Version        int        `json:"version"`
	Excerpt        *string    `json:"excerpt,omitempty"`
	WordCount      int        `json:"word_count"`
	AuthorID       uuid.UUID  `json:"author_id"`
	LastModifiedBy uuid.UUID  `json:"last_modified_by"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (c *Content) IsPublished() bool {
	return c.Status == StatusPublished
}

// Snapshot captures the row as it is right now, for writing a revision before
// a tracked-field change replaces these values. ChangedBy is filled by the
// caller with the actor performing the superseding update.
func (c *Content) Snapshot() *ContentRevision {
	return &ContentRevision{
		ContentType: c.Type,
		ContentID:   c.ID,
		Version:     c.Version,
		Title:       c.Title,
		Data:        c.Data.Clone(),
		Metadata:    c.Metadata.Clone(),
		Status:      c.Status,
	}
}

// AuditValues flattens the row into the map stored in audit old/new values.
// Bookkeeping fields (updated_at, last_modified_by, derived version and body
// stats) are left out so that a save that changes nothing meaningful produces
// an empty diff and no audit entry.
func (c *Content) AuditValues() map[string]any {
	return map[string]any{
		"slug":         c.Slug,
		"title":        c.Title,
		"data":         map[string]any(c.Data),
		"metadata":     map[string]any(c.Metadata),
		"status":       c.Status,
		"published_at": c.PublishedAt,
		"scheduled_at": c.ScheduledAt,
	}
}

// ContentPatch is a partial update. Nil fields are left untouched.
type ContentPatch struct {
	Slug          *string
	Title         *string
	Data          JSONDoc
	Metadata      JSONDoc
	Status        *string
	ScheduledAt   *time.Time
	ChangeSummary *string
}

func (p ContentPatch) IsEmpty() bool {
	return p.Slug == nil && p.Title == nil && p.Data == nil &&
		p.Metadata == nil && p.Status == nil && p.ScheduledAt == nil
}

// Tracked fields whose change bumps the version and triggers a snapshot.
const (
	FieldTitle    = "title"
	FieldData     = "data"
	FieldMetadata = "metadata"
	FieldStatus   = "status"
)

// ApplyPatch writes the patch onto c and returns the tracked fields that
// actually changed value. Slug and scheduled_at are applied but never appear
// in the result; they do not participate in versioning.
//
// Status side effects: the first transition into published stamps
// published_at (once, preserved afterwards); any transition out of published
// clears scheduled_at.
func ApplyPatch(c *Content, p ContentPatch, now time.Time) []string {
	var changed []string

	if p.Slug != nil && *p.Slug != c.Slug {
		c.Slug = *p.Slug
	}
	if p.Title != nil && *p.Title != c.Title {
		c.Title = *p.Title
		changed = append(changed, FieldTitle)
	}
	if p.Data != nil && !EqualDocs(p.Data, c.Data) {
		c.Data = p.Data.Clone()
		changed = append(changed, FieldData)
	}
	if p.Metadata != nil && !EqualDocs(p.Metadata, c.Metadata) {
		c.Metadata = p.Metadata.Clone()
		changed = append(changed, FieldMetadata)
	}
	if p.ScheduledAt != nil && !equalTimePtr(p.ScheduledAt, c.ScheduledAt) {
		t := *p.ScheduledAt
		c.ScheduledAt = &t
	}
	if p.Status != nil && *p.Status != c.Status {
		prev := c.Status
		c.Status = *p.Status
		changed = append(changed, FieldStatus)

		if c.Status == StatusPublished && c.PublishedAt == nil {
			t := now
			c.PublishedAt = &t
		}
		if prev == StatusPublished {
			c.ScheduledAt = nil
		}
	}

	return changed
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
