package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/slatecms/backend/internal/models"
)

func TestNewContentDraft(t *testing.T) {
	actor := models.Actor{ID: uuid.New(), Label: "editor@example.com"}
	now := time.Now().UTC()

	c := newContent(CreateContentInput{
		Type:   models.ContentTypePage,
		Slug:   "home",
		Title:  "Home",
		Status: models.StatusDraft,
	}, actor, now)

	if c.Version != 1 {
		t.Errorf("version = %d, want 1", c.Version)
	}
	if c.PublishedAt != nil {
		t.Error("draft must not carry published_at")
	}
	if c.Data == nil || c.Metadata == nil {
		t.Error("nil input docs must be coerced to empty docs")
	}
	if c.AuthorID != actor.ID || c.LastModifiedBy != actor.ID {
		t.Error("author and last_modified_by must be the creating actor")
	}
}

func TestNewContentBornPublished(t *testing.T) {
	actor := models.Actor{ID: uuid.New(), Label: "editor@example.com"}
	now := time.Now().UTC()

	c := newContent(CreateContentInput{
		Type:   models.ContentTypePost,
		Slug:   "launch",
		Title:  "Launch",
		Data:   models.JSONDoc{"html": "<h1>Launch</h1><p>We are live today.</p>"},
		Status: models.StatusPublished,
	}, actor, now)

	if c.PublishedAt == nil {
		t.Fatal("content created as published must have published_at stamped")
	}
	if !c.PublishedAt.Equal(now) {
		t.Errorf("published_at = %v, want %v", c.PublishedAt, now)
	}
	if c.WordCount != 5 {
		t.Errorf("word count = %d, want 5", c.WordCount)
	}
	if c.Excerpt == nil || *c.Excerpt != "Launch We are live today." {
		t.Errorf("excerpt = %v, want %q", c.Excerpt, "Launch We are live today.")
	}
}
