package ports

import (
	"context"

	"datasight/domain/core"
	"datasight/domain/profile"
)

// ProfileStore persists computed profiles keyed by upload id
type ProfileStore interface {
	// Save inserts or replaces the profile for p.FileID
	Save(ctx context.Context, p *profile.StoredProfile) error
	// Get returns core.ErrProfileNotFound when nothing is stored for id
	Get(ctx context.Context, id core.FileID) (*profile.StoredProfile, error)
	// List returns the most recent profiles first
	List(ctx context.Context, limit int) ([]*profile.StoredProfile, error)
	Delete(ctx context.Context, id core.FileID) error
}
