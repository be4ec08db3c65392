package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// FileID identifies an uploaded table and every artifact derived from it
// (stored file, profile, rendered charts).
type FileID ID

func (id FileID) String() string { return ID(id).String() }

// NewFileID allocates a fresh file identifier
func NewFileID() FileID {
	return FileID(NewID())
}

// ParseFileID parses a string into FileID. File ids are used to build paths
// on disk, so anything that is not a UUID is rejected.
func ParseFileID(s string) (FileID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: file ID cannot be empty", ErrInvalidID)
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a valid file ID", ErrInvalidID, s)
	}
	return FileID(parsed.String()), nil
}
