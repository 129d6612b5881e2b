package models

import (
	"reflect"
	"testing"
	"time"
)

func TestChangedFields(t *testing.T) {
	tests := []struct {
		name     string
		old      map[string]any
		new      map[string]any
		expected []string
	}{
		{
			name:     "identical rows",
			old:      map[string]any{"title": "Home", "status": "draft"},
			new:      map[string]any{"title": "Home", "status": "draft"},
			expected: nil,
		},
		{
			name:     "single column",
			old:      map[string]any{"title": "Home", "status": "draft"},
			new:      map[string]any{"title": "Home Page", "status": "draft"},
			expected: []string{"title"},
		},
		{
			name:     "multiple columns sorted",
			old:      map[string]any{"title": "a", "slug": "a", "status": "draft"},
			new:      map[string]any{"title": "b", "slug": "b", "status": "draft"},
			expected: []string{"slug", "title"},
		},
		{
			name:     "key only in new",
			old:      map[string]any{"title": "a"},
			new:      map[string]any{"title": "a", "excerpt": "x"},
			expected: []string{"excerpt"},
		},
		{
			name:     "int vs float after jsonb round trip",
			old:      map[string]any{"count": 3},
			new:      map[string]any{"count": float64(3)},
			expected: nil,
		},
		{
			name:     "nil map value vs empty map",
			old:      map[string]any{"metadata": map[string]any{"a": 1}},
			new:      map[string]any{"metadata": map[string]any{"a": float64(1)}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChangedFields(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ChangedFields() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestChangedFieldsTypedNilPointer(t *testing.T) {
	var ts *time.Time
	old := map[string]any{"published_at": ts}
	new := map[string]any{"published_at": nil}
	if got := ChangedFields(old, new); got != nil {
		t.Errorf("typed nil vs untyped nil reported as change: %v", got)
	}
}

func TestEqualDocs(t *testing.T) {
	if !EqualDocs(nil, JSONDoc{}) {
		t.Error("nil and empty docs should be equal")
	}
	if !EqualDocs(JSONDoc{"n": 1}, JSONDoc{"n": float64(1)}) {
		t.Error("numeric shapes should be normalized before comparison")
	}
	if EqualDocs(JSONDoc{"a": "x"}, JSONDoc{"a": "y"}) {
		t.Error("different values reported equal")
	}
	if EqualDocs(JSONDoc{"a": "x"}, JSONDoc{"a": "x", "b": "y"}) {
		t.Error("extra key reported equal")
	}
}
