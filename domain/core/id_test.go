package core

import (
	"errors"
	"testing"
)

func TestNewFileIDRoundTrip(t *testing.T) {
	id := NewFileID()
	parsed, err := ParseFileID(id.String())
	if err != nil {
		t.Fatalf("ParseFileID(%q) failed: %v", id, err)
	}
	if parsed != id {
		t.Errorf("expected %q, got %q", id, parsed)
	}
}

func TestParseFileIDRejectsPaths(t *testing.T) {
	for _, raw := range []string{"", "   ", "../etc/passwd", "abc"} {
		if _, err := ParseFileID(raw); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseFileID(%q): expected ErrInvalidID, got %v", raw, err)
		}
	}
}

func TestErrorClassification(t *testing.T) {
	if !IsBindingError(ErrColumnNotFound) {
		t.Error("column not found should be a binding error")
	}
	if IsBindingError(ErrCompute) {
		t.Error("compute error should not be a binding error")
	}
	if !IsLoadError(NewLoadError("csv", errors.New("bad quote"))) {
		t.Error("NewLoadError should be classified as a load error")
	}
	if !IsNotFoundError(ErrProfileNotFound) {
		t.Error("profile not found should wrap ErrNotFound")
	}
}
