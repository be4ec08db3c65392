// Package memory holds in-process adapters used when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"datasight/domain/core"
	"datasight/domain/profile"
)

// ProfileStore is a concurrency-safe in-memory ports.ProfileStore
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[core.FileID]*profile.StoredProfile
}

// NewProfileStore creates an empty store
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[core.FileID]*profile.StoredProfile)}
}

func (s *ProfileStore) Save(ctx context.Context, p *profile.StoredProfile) error {
	if p == nil || p.FileID == "" {
		return core.ErrInvalidID
	}
	cp := *p
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = core.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.FileID] = &cp
	return nil
}

func (s *ProfileStore) Get(ctx context.Context, id core.FileID) (*profile.StoredProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, core.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *ProfileStore) List(ctx context.Context, limit int) ([]*profile.StoredProfile, error) {
	s.mu.RLock()
	out := make([]*profile.StoredProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		cp := *p
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt.Time(), out[j].CreatedAt.Time()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].FileID > out[j].FileID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ProfileStore) Delete(ctx context.Context, id core.FileID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, id)
	return nil
}
