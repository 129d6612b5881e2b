package dto

import "time"

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// CreateContentRequest creates a page or post; the content type comes from
// the URL, not the body.
type CreateContentRequest struct {
	Slug     string         `json:"slug"`
	Title    string         `json:"title"`
	Data     map[string]any `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Status   string         `json:"status,omitempty"` // defaults to draft
}

type UpdateContentRequest struct {
	Slug          *string        `json:"slug,omitempty"`
	Title         *string        `json:"title,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Status        *string        `json:"status,omitempty"`
	ScheduledAt   *time.Time     `json:"scheduled_at,omitempty"`
	ChangeSummary *string        `json:"change_summary,omitempty"`
}

type RestoreContentRequest struct {
	Version int `json:"version"`
}

type CreateCategoryRequest struct {
	Kind        string `json:"kind"` // category / tag
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateMediaRequest struct {
	Filename    string  `json:"filename"`
	MimeType    string  `json:"mime_type"`
	SizeBytes   int64   `json:"size_bytes"`
	StoragePath string  `json:"storage_path"`
	AltText     *string `json:"alt_text,omitempty"`
}

type UpdateMediaRequest struct {
	Filename *string `json:"filename,omitempty"`
	AltText  *string `json:"alt_text,omitempty"`
}

type CreateSnippetRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"` // head / body_start / body_end
	Code     string `json:"code"`
	Enabled  bool   `json:"enabled"`
}

type UpdateSnippetRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Code     *string `json:"code,omitempty"`
	Enabled  *bool   `json:"enabled,omitempty"`
}
