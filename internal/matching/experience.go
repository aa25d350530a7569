package matching

import (
	"fmt"

	"go-matching-backend/internal/domain"
)

const (
	experienceGoodFit     = 15
	experienceFloor       = 10
	experienceSeniorFloor = 5
)

// ExperienceScorer tiers the candidate's years against the posting level.
//
//	entry   20: <=1   15: <=3    else 10
//	junior  20: 1-3   15: <=5    else 10
//	mid     20: 3-7   15: 1-10   else 10
//	senior  20: >=5   15: >=3    else 5
//
// Unknown levels score 10.
type ExperienceScorer struct{}

func (ExperienceScorer) Criterion() Criterion { return CriterionExperience }

func (ExperienceScorer) Max() float64 { return domain.MaxExperienceScore }

func (ExperienceScorer) Score(job *domain.JobPosting, candidate *domain.CandidateProfile) (float64, []string) {
	years := candidate.ExperienceYears
	if years < 0 {
		years = 0
	}

	level := normalize(job.ExperienceLevel)
	var best, good bool
	floor := experienceFloor

	switch level {
	case domain.LevelEntry:
		best, good = years <= 1, years <= 3
	case domain.LevelJunior:
		best, good = years >= 1 && years <= 3, years <= 5
	case domain.LevelMid:
		best, good = years >= 3 && years <= 7, years >= 1 && years <= 10
	case domain.LevelSenior:
		best, good = years >= 5, years >= 3
		floor = experienceSeniorFloor
	default:
		return experienceFloor, nil
	}

	switch {
	case best:
		return domain.MaxExperienceScore, []string{fmt.Sprintf("%d years of experience fits %s level", years, level)}
	case good:
		return experienceGoodFit, nil
	default:
		return float64(floor), nil
	}
}
