package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// versionedStore drives the same sequence the update transaction performs:
// snapshot the row before mutating, apply the patch, and only when a tracked
// field changed record the snapshot and bump the version.
type versionedStore struct {
	live      *Content
	revisions []*ContentRevision
}

func newVersionedStore(title string) *versionedStore {
	return &versionedStore{
		live: &Content{
			ID:      uuid.New(),
			Type:    ContentTypePage,
			Slug:    "home",
			Title:   title,
			Data:    JSONDoc{},
			Status:  StatusDraft,
			Version: 1,
		},
	}
}

func (s *versionedStore) update(t *testing.T, patch ContentPatch, actor uuid.UUID) []string {
	t.Helper()
	snap := s.live.Snapshot()
	changed := ApplyPatch(s.live, patch, time.Now())
	if len(changed) > 0 {
		snap.ChangedBy = actor
		snap.ChangeSummary = patch.ChangeSummary
		s.revisions = append(s.revisions, snap)
		s.live.Version = snap.Version + 1
	}
	return changed
}

func (s *versionedStore) revisionAt(version int) *ContentRevision {
	for _, r := range s.revisions {
		if r.Version == version {
			return r
		}
	}
	return nil
}

func (s *versionedStore) restore(t *testing.T, version int, actor uuid.UUID) error {
	t.Helper()
	// The live version has no snapshot row; restoring to it is an
	// idempotent success, not a lookup.
	if version == s.live.Version {
		return nil
	}
	rev := s.revisionAt(version)
	if rev == nil {
		return fmt.Errorf("revision not found: version %d", version)
	}
	s.update(t, rev.RestorePatch(fmt.Sprintf("restored from version %d", version)), actor)
	return nil
}

func TestVersionMonotonic(t *testing.T) {
	store := newVersionedStore("v0")
	actor := uuid.New()

	const n = 7
	for i := 1; i <= n; i++ {
		title := fmt.Sprintf("title %d", i)
		changed := store.update(t, ContentPatch{Title: &title}, actor)
		require.Equal(t, []string{FieldTitle}, changed)
	}

	assert.Equal(t, 1+n, store.live.Version)
	require.Len(t, store.revisions, n)

	seen := map[int]bool{}
	for _, rev := range store.revisions {
		assert.False(t, seen[rev.Version], "duplicate revision version %d", rev.Version)
		seen[rev.Version] = true
		assert.GreaterOrEqual(t, rev.Version, 1)
		assert.LessOrEqual(t, rev.Version, n)
	}
}

func TestNoOpUpdateKeepsVersion(t *testing.T) {
	store := newVersionedStore("Home")
	actor := uuid.New()

	changed := store.update(t, ContentPatch{
		Title:  strPtr("Home"),
		Status: strPtr(StatusDraft),
		Data:   JSONDoc{},
	}, actor)

	assert.Empty(t, changed)
	assert.Equal(t, 1, store.live.Version)
	assert.Empty(t, store.revisions)
}

func TestScenarioTitleRename(t *testing.T) {
	store := newVersionedStore("Home")
	actor := uuid.New()
	require.Equal(t, 1, store.live.Version)

	store.update(t, ContentPatch{Title: strPtr("Home Page")}, actor)
	assert.Equal(t, 2, store.live.Version)
	require.Len(t, store.revisions, 1)
	assert.Equal(t, 1, store.revisions[0].Version)
	assert.Equal(t, "Home", store.revisions[0].Title)
	assert.Equal(t, actor, store.revisions[0].ChangedBy)

	// Saving the identical title again must not move anything.
	store.update(t, ContentPatch{Title: strPtr("Home Page")}, actor)
	assert.Equal(t, 2, store.live.Version)
	assert.Len(t, store.revisions, 1)
}

func TestScenarioRestoreMidHistory(t *testing.T) {
	store := newVersionedStore("post")
	actor := uuid.New()

	for i := 1; i <= 5; i++ {
		store.update(t, ContentPatch{Data: JSONDoc{"body": fmt.Sprintf("draft %d", i)}}, actor)
	}
	require.Equal(t, 6, store.live.Version)
	require.Len(t, store.revisions, 5)
	preRestoreData := store.live.Data.Clone()

	require.NoError(t, store.restore(t, 2, actor))

	assert.Equal(t, 7, store.live.Version)
	assert.Equal(t, JSONDoc{"body": "draft 1"}, store.live.Data,
		"live content must equal version 2's snapshot (values as they were at version 2)")

	// The restore itself snapshots what was live at version 6.
	require.Len(t, store.revisions, 6)
	v6 := store.revisionAt(6)
	require.NotNil(t, v6)
	assert.True(t, EqualDocs(preRestoreData, v6.Data))
}

func TestRestoreToCurrentVersionIsNoOp(t *testing.T) {
	store := newVersionedStore("Home")
	actor := uuid.New()

	store.update(t, ContentPatch{Title: strPtr("Home Page")}, actor)
	require.Equal(t, 2, store.live.Version)

	// Restoring the version that is already live must succeed and move
	// nothing: neither the version counter nor the revision count.
	require.NoError(t, store.restore(t, 2, actor))
	assert.Equal(t, 2, store.live.Version)
	assert.Len(t, store.revisions, 1)
	assert.Equal(t, "Home Page", store.live.Title)

	// Re-applying a snapshot whose values match the live row changes nothing.
	changed := store.update(t, store.live.Snapshot().RestorePatch("noop"), actor)
	assert.Empty(t, changed)
	assert.Equal(t, 2, store.live.Version)
	assert.Len(t, store.revisions, 1)
}

func TestRestoreUnknownVersion(t *testing.T) {
	store := newVersionedStore("Home")
	actor := uuid.New()

	for i := 0; i < 5; i++ {
		store.update(t, ContentPatch{Title: strPtr(fmt.Sprintf("t%d", i))}, actor)
	}
	require.Equal(t, 6, store.live.Version)

	err := store.restore(t, 99, actor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version 99")
}

func TestHistorySurvivesDelete(t *testing.T) {
	store := newVersionedStore("Home")
	actor := uuid.New()
	store.update(t, ContentPatch{Title: strPtr("Home Page")}, actor)

	// Hard delete removes the live row only; revisions keep their rows.
	id := store.live.ID
	store.live = nil

	require.Len(t, store.revisions, 1)
	assert.Equal(t, id, store.revisions[0].ContentID)
}

func TestAuditDiffSingleColumn(t *testing.T) {
	store := newVersionedStore("Home")
	actor := uuid.New()

	oldValues := store.live.AuditValues()
	store.update(t, ContentPatch{Title: strPtr("Home Page")}, actor)
	newValues := store.live.AuditValues()

	fields := ChangedFields(oldValues, newValues)
	assert.Equal(t, []string{"title"}, fields)
}

func TestAuditDiffNoOpProducesNoFields(t *testing.T) {
	store := newVersionedStore("Home")
	actor := uuid.New()

	oldValues := store.live.AuditValues()
	store.update(t, ContentPatch{Title: strPtr("Home")}, actor)
	newValues := store.live.AuditValues()

	assert.Empty(t, ChangedFields(oldValues, newValues))
}
