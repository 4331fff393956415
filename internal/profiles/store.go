// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package profiles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/validation"
)

// ErrNotFound is returned when a profile does not exist.
var ErrNotFound = errors.New("profile not found")

// Provider reads profiles.
type Provider interface {
	GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error)
	GetJob(ctx context.Context, id string) (*models.JobProfile, error)
}

// Store is a Provider that also accepts writes.
type Store interface {
	Provider
	UpsertCandidate(ctx context.Context, c *models.CandidateProfile) error
	UpsertJob(ctx context.Context, j *models.JobProfile) error
}

// MemoryStore keeps profiles in maps guarded by a RWMutex. Profiles are
// stored and returned as copies, so callers may not mutate shared state.
type MemoryStore struct {
	mu         sync.RWMutex
	candidates map[string]*models.CandidateProfile
	jobs       map[string]*models.JobProfile
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		candidates: make(map[string]*models.CandidateProfile),
		jobs:       make(map[string]*models.JobProfile),
	}
}

// GetCandidate returns a copy of the candidate or ErrNotFound.
func (s *MemoryStore) GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate %q: %w", id, ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

// GetJob returns a copy of the job or ErrNotFound.
func (s *MemoryStore) GetJob(ctx context.Context, id string) (*models.JobProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %q: %w", id, ErrNotFound)
	}
	cp := *j
	return &cp, nil
}

// UpsertCandidate validates and stores a candidate.
func (s *MemoryStore) UpsertCandidate(ctx context.Context, c *models.CandidateProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	cp := *c
	s.mu.Lock()
	s.candidates[c.ID] = &cp
	s.mu.Unlock()
	return nil
}

// UpsertJob validates and stores a job.
func (s *MemoryStore) UpsertJob(ctx context.Context, j *models.JobProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if verr := validation.ValidateStruct(j); verr != nil {
		return verr
	}
	cp := *j
	s.mu.Lock()
	s.jobs[j.ID] = &cp
	s.mu.Unlock()
	return nil
}

// CandidateIDs returns all candidate IDs in sorted order.
func (s *MemoryStore) CandidateIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.candidates)
}

// JobIDs returns all job IDs in sorted order.
func (s *MemoryStore) JobIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.jobs)
}

// Counts returns the number of stored candidates and jobs.
func (s *MemoryStore) Counts() (candidates, jobs int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates), len(s.jobs)
}

// Features returns the lowercased descriptive terms of an item for
// content-based recommendation: skills, keywords and industry for jobs;
// skills, keywords and past industries for candidates.
func (s *MemoryStore) Features(itemID string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if j, ok := s.jobs[itemID]; ok {
		out := make([]string, 0, len(j.Skills)+len(j.Keywords)+1)
		for i := range j.Skills {
			out = append(out, j.Skills[i].Name)
		}
		out = append(out, j.Keywords...)
		if j.Industry != "" {
			out = append(out, j.Industry)
		}
		return lower(out), true
	}
	if c, ok := s.candidates[itemID]; ok {
		out := make([]string, 0, len(c.Skills)+len(c.Keywords)+len(c.Experience))
		for i := range c.Skills {
			out = append(out, c.Skills[i].Name)
		}
		out = append(out, c.Keywords...)
		for i := range c.Experience {
			if c.Experience[i].Industry != "" {
				out = append(out, c.Experience[i].Industry)
			}
		}
		return lower(out), true
	}
	return nil, false
}

func lower(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return values
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
