// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"sort"
	"sync"

	"github.com/danielhkuo/unielect/models"
)

// MemStore is an in-memory Store for tests and single-node dev runs.
type MemStore struct {
	mu         sync.RWMutex
	voters     map[string]models.Identity
	candidates map[string]models.Candidate
}

func NewMemStore() *MemStore {
	return &MemStore{
		voters:     make(map[string]models.Identity),
		candidates: make(map[string]models.Candidate),
	}
}

func (s *MemStore) GetIdentity(id string) (models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.voters[id]; ok {
		return v, nil
	}
	if c, ok := s.candidates[id]; ok {
		return c.Identity, nil
	}
	return models.Identity{}, ErrNotFound
}

func (s *MemStore) GetCandidate(id string) (models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return models.Candidate{}, ErrNotFound
	}
	return c, nil
}

func (s *MemStore) ListCandidates() ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) ListIdentities() ([]models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Identity, 0, len(s.voters)+len(s.candidates))
	for _, v := range s.voters {
		out = append(out, v)
	}
	for _, c := range s.candidates {
		out = append(out, c.Identity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CreateVoter(v models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken(v.ID) {
		return ErrDuplicateID
	}
	v.Role = models.RoleVoter
	s.voters[v.ID] = v
	return nil
}

func (s *MemStore) CreateCandidate(c models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken(c.ID) {
		return ErrDuplicateID
	}
	c.Role = models.RoleCandidate
	s.candidates[c.ID] = c
	return nil
}

func (s *MemStore) HasVoted(id string) (bool, error) {
	ident, err := s.GetIdentity(id)
	if err != nil {
		return false, err
	}
	return ident.HasVoted, nil
}

func (s *MemStore) SetVoted(id string, voted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.voters[id]; ok {
		v.HasVoted = voted
		s.voters[id] = v
		return nil
	}
	if c, ok := s.candidates[id]; ok {
		c.HasVoted = voted
		s.candidates[id] = c
		return nil
	}
	return ErrNotFound
}

// taken reports whether any identity holds the ID. Caller must hold mu.
func (s *MemStore) taken(id string) bool {
	if _, ok := s.voters[id]; ok {
		return true
	}
	_, ok := s.candidates[id]
	return ok
}
