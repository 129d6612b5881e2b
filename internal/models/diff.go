package models

import (
	"encoding/json"
	"reflect"
	"sort"
)

// EqualDocs compares two documents by value. Nil and empty are the same
// document as far as versioning is concerned.
func EqualDocs(a, b JSONDoc) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(normalize(map[string]any(a)), normalize(map[string]any(b)))
}

// ChangedFields returns the sorted set of keys whose value differs between
// old and new. An empty result means the update touched nothing meaningful
// and must not be audited.
func ChangedFields(oldValues, newValues map[string]any) []string {
	keys := map[string]struct{}{}
	for k := range oldValues {
		keys[k] = struct{}{}
	}
	for k := range newValues {
		keys[k] = struct{}{}
	}

	var changed []string
	for k := range keys {
		if !reflect.DeepEqual(normalize(oldValues[k]), normalize(newValues[k])) {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed
}

// normalize round-trips a value through JSON so that comparisons do not
// depend on Go's concrete numeric or struct types. Values read back from
// Postgres jsonb arrive as float64/map[string]any; values built in memory may
// be int or time.Time. After the round trip both sides use the same shapes.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
