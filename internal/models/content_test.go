package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusDraft, true},
		{StatusReview, true},
		{StatusScheduled, true},
		{StatusPublished, true},
		{StatusArchived, true},
		{"", false},
		{"Published", false},
		{"deleted", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsValidStatus(tt.status); got != tt.expected {
				t.Errorf("IsValidStatus(%q) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestApplyPatchTrackedChanges(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		patch   ContentPatch
		changed []string
	}{
		{
			name:    "title change",
			patch:   ContentPatch{Title: strPtr("New Title")},
			changed: []string{FieldTitle},
		},
		{
			name:    "identical title",
			patch:   ContentPatch{Title: strPtr("Home")},
			changed: nil,
		},
		{
			name:    "data change",
			patch:   ContentPatch{Data: JSONDoc{"html": "<p>new</p>"}},
			changed: []string{FieldData},
		},
		{
			name:    "identical data",
			patch:   ContentPatch{Data: JSONDoc{"html": "<p>hello</p>"}},
			changed: nil,
		},
		{
			name:    "metadata change",
			patch:   ContentPatch{Metadata: JSONDoc{"seo": "on"}},
			changed: []string{FieldMetadata},
		},
		{
			name:    "status change",
			patch:   ContentPatch{Status: strPtr(StatusReview)},
			changed: []string{FieldStatus},
		},
		{
			name:    "slug only is not tracked",
			patch:   ContentPatch{Slug: strPtr("home-page")},
			changed: nil,
		},
		{
			name: "everything at once",
			patch: ContentPatch{
				Title:    strPtr("Other"),
				Data:     JSONDoc{"html": "<p>x</p>"},
				Metadata: JSONDoc{"a": 1},
				Status:   strPtr(StatusArchived),
			},
			changed: []string{FieldTitle, FieldData, FieldMetadata, FieldStatus},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Content{
				Type:   ContentTypePage,
				Slug:   "home",
				Title:  "Home",
				Data:   JSONDoc{"html": "<p>hello</p>"},
				Status: StatusDraft,
			}
			changed := ApplyPatch(c, tt.patch, now)
			if len(changed) != len(tt.changed) {
				t.Fatalf("changed = %v, want %v", changed, tt.changed)
			}
			for i := range changed {
				if changed[i] != tt.changed[i] {
					t.Errorf("changed = %v, want %v", changed, tt.changed)
				}
			}
		})
	}
}

func TestApplyPatchPublishStamps(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &Content{Status: StatusDraft}

	ApplyPatch(c, ContentPatch{Status: strPtr(StatusPublished)}, now)
	if c.PublishedAt == nil || !c.PublishedAt.Equal(now) {
		t.Fatalf("published_at not stamped on first publish: %v", c.PublishedAt)
	}

	// Unpublish, then republish later: the original timestamp is preserved.
	later := now.Add(48 * time.Hour)
	ApplyPatch(c, ContentPatch{Status: strPtr(StatusArchived)}, later)
	ApplyPatch(c, ContentPatch{Status: strPtr(StatusPublished)}, later.Add(time.Hour))
	if !c.PublishedAt.Equal(now) {
		t.Errorf("published_at changed on republish: got %v, want %v", c.PublishedAt, now)
	}
}

func TestApplyPatchLeavingPublishedClearsSchedule(t *testing.T) {
	now := time.Now()
	sched := now.Add(time.Hour)
	c := &Content{Status: StatusPublished, ScheduledAt: &sched}

	ApplyPatch(c, ContentPatch{Status: strPtr(StatusArchived)}, now)
	if c.ScheduledAt != nil {
		t.Errorf("scheduled_at not cleared on leaving published: %v", c.ScheduledAt)
	}
}

func TestApplyPatchNilVsEmptyDoc(t *testing.T) {
	now := time.Now()
	c := &Content{Data: nil}

	// Restoring a snapshot that had no data sends an empty doc; that is not
	// a change against a nil doc.
	changed := ApplyPatch(c, ContentPatch{Data: JSONDoc{}}, now)
	if len(changed) != 0 {
		t.Errorf("empty doc against nil doc reported as change: %v", changed)
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(ContentPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (ContentPatch{Title: strPtr("x")}).IsEmpty() {
		t.Error("patch with title should not be empty")
	}
	if (ContentPatch{Metadata: JSONDoc{}}).IsEmpty() {
		t.Error("patch with metadata should not be empty")
	}
}

func TestSnapshotDoesNotAliasLiveDocs(t *testing.T) {
	c := &Content{
		Title:   "v1",
		Version: 1,
		Data:    JSONDoc{"html": "<p>v1</p>"},
	}
	snap := c.Snapshot()

	c.Data["html"] = "<p>v2</p>"
	if snap.Data["html"] != "<p>v1</p>" {
		t.Error("snapshot data mutated through live row")
	}
	if snap.Version != 1 || snap.Title != "v1" {
		t.Errorf("snapshot = %+v, want version 1 title v1", snap)
	}
}
