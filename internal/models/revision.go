package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentRevision is an immutable snapshot of a content row at a past version.
// One row exists per superseded version, unique on (content_type, content_id,
// version). The snapshot holds the values as they were BEFORE the update that
// created it, tagged with the version the row had at that moment.
//
// ChangedBy is the actor whose update superseded this version, not the author
// of the version itself: each revision records who moved away from it.
type ContentRevision struct {
	ID            uuid.UUID `json:"id"`
	ContentType   string    `json:"content_type"`
	ContentID     uuid.UUID `json:"content_id"`
	Version       int       `json:"version"`
	Title         string    `json:"title"`
	Data          JSONDoc   `json:"data,omitempty"`
	Metadata      JSONDoc   `json:"metadata,omitempty"`
	Status        string    `json:"status"`
	ChangedBy     uuid.UUID `json:"changed_by"`
	ChangeSummary *string   `json:"change_summary,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RestorePatch builds the patch that writes this snapshot's tracked fields
// back onto the live row through the ordinary update path.
func (r *ContentRevision) RestorePatch(summary string) ContentPatch {
	title := r.Title
	status := r.Status
	data := r.Data.Clone()
	if data == nil {
		data = JSONDoc{}
	}
	meta := r.Metadata.Clone()
	if meta == nil {
		meta = JSONDoc{}
	}
	return ContentPatch{
		Title:         &title,
		Data:          data,
		Metadata:      meta,
		Status:        &status,
		ChangeSummary: &summary,
	}
}
