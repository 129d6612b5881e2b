package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaAsset is a media library record. Only metadata lives here; the bytes
// themselves sit in object storage addressed by StoragePath.
type MediaAsset struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StoragePath string    `json:"storage_path"`
	AltText     *string   `json:"alt_text,omitempty"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *MediaAsset) AuditValues() map[string]any {
	return map[string]any{
		"filename":     m.Filename,
		"mime_type":    m.MimeType,
		"size_bytes":   m.SizeBytes,
		"storage_path": m.StoragePath,
		"alt_text":     m.AltText,
	}
}
