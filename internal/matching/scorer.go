// Package matching scores job postings against candidate profiles and ranks
// the results. Every function in this package is pure: no I/O, no shared
// mutable state, and inputs are never modified.
package matching

import (
	"strings"

	"go-matching-backend/internal/domain"
)

// Criterion identifies one scoring dimension
type Criterion string

const (
	CriterionSkills     Criterion = "skills"
	CriterionLocation   Criterion = "location"
	CriterionExperience Criterion = "experience"
	CriterionVisa       Criterion = "visa"
	CriterionSalary     Criterion = "salary"
)

// Scorer evaluates a single criterion for one posting/candidate pair.
// Score may return any value; the engine clamps it to [0, Max()].
type Scorer interface {
	Criterion() Criterion
	Max() float64
	Score(job *domain.JobPosting, candidate *domain.CandidateProfile) (float64, []string)
}

// DefaultScorers returns the five criteria in reason order.
func DefaultScorers() []Scorer {
	return []Scorer{
		SkillScorer{},
		NewLocationScorer(),
		ExperienceScorer{},
		VisaScorer{},
		SalaryScorer{},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsEither reports whether a contains b or b contains a. Empty values never match.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
