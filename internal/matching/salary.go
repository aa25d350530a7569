package matching

import (
	"math"

	"go-matching-backend/internal/domain"
)

// Relative distance from the band midpoint for partial credit.
const (
	salaryNearTolerance = 0.2
	salaryFarTolerance  = 0.4
)

// SalaryScorer is informational: it contributes up to 5 points but never
// produces a reason string. Missing or inconsistent figures score 0.
type SalaryScorer struct{}

func (SalaryScorer) Criterion() Criterion { return CriterionSalary }

func (SalaryScorer) Max() float64 { return domain.MaxSalaryScore }

func (SalaryScorer) Score(job *domain.JobPosting, candidate *domain.CandidateProfile) (float64, []string) {
	if !job.HasSalaryRange() || candidate.SalaryExpectation == nil {
		return 0, nil
	}

	lo, hi, want := *job.SalaryMin, *job.SalaryMax, *candidate.SalaryExpectation
	if lo < 0 || hi < 0 || want < 0 || lo > hi {
		return 0, nil
	}

	if want >= lo && want <= hi {
		return domain.MaxSalaryScore, nil
	}

	avg := (float64(lo) + float64(hi)) / 2
	if avg <= 0 {
		return 0, nil
	}

	diff := math.Abs(float64(want)-avg) / avg
	switch {
	case diff <= salaryNearTolerance:
		return 3, nil
	case diff <= salaryFarTolerance:
		return 1, nil
	default:
		return 0, nil
	}
}
