// Package memory holds read-only JobStore and ProfileStore implementations
// backed by in-process snapshots, used by the CLI and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go-matching-backend/internal/domain"
)

type JobStore struct {
	jobs  []domain.JobPosting
	index map[string]int
}

func NewJobStore(jobs []domain.JobPosting) *JobStore {
	s := &JobStore{jobs: append([]domain.JobPosting(nil), jobs...), index: make(map[string]int, len(jobs))}
	for i, j := range s.jobs {
		if _, dup := s.index[j.ID]; !dup {
			s.index[j.ID] = i
		}
	}
	return s
}

func (s *JobStore) GetByID(_ context.Context, id string) (*domain.JobPosting, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	job := s.jobs[i]
	return &job, nil
}

func (s *JobStore) ListAll(_ context.Context) ([]domain.JobPosting, error) {
	return append([]domain.JobPosting{}, s.jobs...), nil
}

type ProfileStore struct {
	profiles []domain.CandidateProfile
	index    map[string]int
}

func NewProfileStore(profiles []domain.CandidateProfile) *ProfileStore {
	s := &ProfileStore{profiles: append([]domain.CandidateProfile(nil), profiles...), index: make(map[string]int, len(profiles))}
	for i, p := range s.profiles {
		if _, dup := s.index[p.ID]; !dup {
			s.index[p.ID] = i
		}
	}
	return s
}

func (s *ProfileStore) GetByID(_ context.Context, id string) (*domain.CandidateProfile, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := s.profiles[i]
	return &p, nil
}

func (s *ProfileStore) ListAll(_ context.Context) ([]domain.CandidateProfile, error) {
	return append([]domain.CandidateProfile{}, s.profiles...), nil
}

// LoadJobs reads a JSON array of postings from path
func LoadJobs(path string) (*JobStore, error) {
	var jobs []domain.JobPosting
	if err := readJSON(path, &jobs); err != nil {
		return nil, err
	}
	return NewJobStore(jobs), nil
}

// LoadProfiles reads a JSON array of candidate profiles from path
func LoadProfiles(path string) (*ProfileStore, error) {
	var profiles []domain.CandidateProfile
	if err := readJSON(path, &profiles); err != nil {
		return nil, err
	}
	return NewProfileStore(profiles), nil
}

func readJSON(path string, v interface{}) error {
	if path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
