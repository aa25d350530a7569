package matching

import (
	"math"

	"go-matching-backend/internal/domain"
)

// Evaluation is the engine output for a single pair.
type Evaluation struct {
	Score     int
	Reasons   []string
	Breakdown domain.ScoreBreakdown
}

// Engine composes a fixed, ordered list of scorers into a 0-100 score.
// It is stateless and safe for concurrent use.
type Engine struct {
	scorers []Scorer
}

// NewEngine builds an engine over scorers, or over DefaultScorers when none are given.
func NewEngine(scorers ...Scorer) *Engine {
	if len(scorers) == 0 {
		scorers = DefaultScorers()
	}
	return &Engine{scorers: scorers}
}

// Score runs every scorer in order, clamps each sub-score to its cap, and
// rounds the sum to the nearest integer. Reasons keep scorer order.
func (e *Engine) Score(job *domain.JobPosting, candidate *domain.CandidateProfile) Evaluation {
	var (
		breakdown domain.ScoreBreakdown
		reasons   = []string{}
		total     float64
	)

	for _, s := range e.scorers {
		raw, why := s.Score(job, candidate)
		sub := clamp(raw, 0, s.Max())
		total += sub
		setCriterion(&breakdown, s.Criterion(), sub)
		if sub > 0 {
			reasons = append(reasons, why...)
		}
	}

	return Evaluation{
		Score:     int(clamp(math.Round(total), 0, 100)),
		Reasons:   reasons,
		Breakdown: breakdown,
	}
}

func setCriterion(b *domain.ScoreBreakdown, c Criterion, v float64) {
	switch c {
	case CriterionSkills:
		b.Skills += v
	case CriterionLocation:
		b.Location += v
	case CriterionExperience:
		b.Experience += v
	case CriterionVisa:
		b.Visa += v
	case CriterionSalary:
		b.Salary += v
	}
}
