package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		notFound   bool
		conflict   bool
		validation bool
	}{
		{"not found", NotFound("content", "home"), true, false, false},
		{"not found formatted", NotFoundf("revision", "version %d", 99), true, false, false},
		{"conflict", Conflict("slug", "home"), false, true, false},
		{"validation", Validation("title", "required"), false, false, true},
		{"wrapped not found", fmt.Errorf("lookup: %w", NotFound("content", "home")), true, false, false},
		{"storage", Storage("write failed", errors.New("boom")), false, false, false},
		{"plain", errors.New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tt.notFound)
			}
			if got := IsConflict(tt.err); got != tt.conflict {
				t.Errorf("IsConflict = %v, want %v", got, tt.conflict)
			}
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	if got := NotFoundf("revision", "version %d", 99).Error(); got != `revision "version 99" not found` {
		t.Errorf("unexpected message: %s", got)
	}
	if got := Conflict("slug", "home").Error(); got != `slug "home" already exists` {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestStorageUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("failed to write revision", cause)
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}
