package matching

import (
	"go-matching-backend/internal/domain"
)

const reasonSponsorship = "visa sponsorship provided"

// VisaScorer gives full marks when the employer sponsors, or when the
// candidate already holds a status that needs no sponsorship. The two
// conditions are not additive.
type VisaScorer struct{}

func (VisaScorer) Criterion() Criterion { return CriterionVisa }

func (VisaScorer) Max() float64 { return domain.MaxVisaScore }

func (VisaScorer) Score(job *domain.JobPosting, candidate *domain.CandidateProfile) (float64, []string) {
	if job.VisaSponsorship {
		return domain.MaxVisaScore, []string{reasonSponsorship}
	}
	if IsSponsorshipExempt(candidate.VisaStatus) {
		return domain.MaxVisaScore, nil
	}
	return 0, nil
}

// IsSponsorshipExempt reports whether status permits work without employer sponsorship.
func IsSponsorshipExempt(status string) bool {
	s := normalize(status)
	for _, exempt := range domain.SponsorshipExemptVisas {
		if s == normalize(exempt) {
			return true
		}
	}
	return false
}
