package domain

import (
	"context"
	"errors"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Experience levels accepted on a job posting
const (
	LevelEntry  = "entry"
	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"
)

// ExperienceLevels lists the recognised posting levels, lowest first
var ExperienceLevels = []string{LevelEntry, LevelJunior, LevelMid, LevelSenior}

// JobPosting is a read-only snapshot of a posting owned by the job store.
type JobPosting struct {
	ID              string   `json:"id"`
	Title           string   `json:"title,omitempty"`
	Location        string   `json:"location"`
	RequiredSkills  []string `json:"required_skills"`
	ExperienceLevel string   `json:"experience_level" validate:"omitempty,experience_level"`
	SalaryMin       *int64   `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *int64   `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	VisaSponsorship bool     `json:"visa_sponsorship"`
}

// HasSalaryRange reports whether both ends of the salary band are set
func (j *JobPosting) HasSalaryRange() bool {
	return j.SalaryMin != nil && j.SalaryMax != nil
}

// JobStore is the job-posting collaborator. Every call reads the current snapshot.
type JobStore interface {
	GetByID(ctx context.Context, id string) (*JobPosting, error)
	ListAll(ctx context.Context) ([]JobPosting, error)
}
