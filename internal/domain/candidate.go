package domain

import (
	"context"
)

// Visa statuses that allow employment without employer sponsorship
var SponsorshipExemptVisas = []string{"F-2", "F-4", "F-5", "F-6"}

type CandidateProfile struct {
	ID                string   `json:"id"`
	FullName          string   `json:"full_name,omitempty"`
	PreferredLocation string   `json:"preferred_location"`
	Skills            []string `json:"skills"`
	ExperienceYears   int      `json:"experience_years" validate:"gte=0"`
	VisaStatus        string   `json:"visa_status" validate:"omitempty,visa_status"`
	SalaryExpectation *int64   `json:"salary_expectation,omitempty" validate:"omitempty,gte=0"`
}

// ProfileStore is the candidate-profile collaborator.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*CandidateProfile, error)
	ListAll(ctx context.Context) ([]CandidateProfile, error)
}
