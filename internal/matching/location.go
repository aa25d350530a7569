package matching

import (
	"fmt"
	"strings"

	"go-matching-backend/internal/domain"
)

const adjacentLocationScore = 15

// Region is a named area and the spellings that identify it in free text.
type Region struct {
	Name    string
	Aliases []string
}

func (r Region) mentionedIn(text string) bool {
	for _, alias := range append([]string{r.Name}, r.Aliases...) {
		if a := normalize(alias); a != "" && strings.Contains(text, a) {
			return true
		}
	}
	return false
}

// Seoul and Gyeonggi are treated as commutable from one another.
var (
	RegionSeoul    = Region{Name: "Seoul", Aliases: []string{"서울"}}
	RegionGyeonggi = Region{Name: "Gyeonggi", Aliases: []string{"경기"}}
)

// LocationScorer gives 25 points for agreeing locations, including the same
// region under different spellings, and 15 for an adjacent (commutable) pair.
type LocationScorer struct {
	regions  []Region
	adjacent [][2]Region
}

func NewLocationScorer() LocationScorer {
	return LocationScorer{
		regions:  []Region{RegionSeoul, RegionGyeonggi},
		adjacent: [][2]Region{{RegionSeoul, RegionGyeonggi}},
	}
}

func (LocationScorer) Criterion() Criterion { return CriterionLocation }

func (LocationScorer) Max() float64 { return domain.MaxLocationScore }

func (s LocationScorer) Score(job *domain.JobPosting, candidate *domain.CandidateProfile) (float64, []string) {
	posting := normalize(job.Location)
	preferred := normalize(candidate.PreferredLocation)

	if containsEither(posting, preferred) {
		return domain.MaxLocationScore, locationReason(job)
	}

	if posting == "" || preferred == "" {
		return 0, nil
	}

	for _, r := range s.regions {
		if r.mentionedIn(posting) && r.mentionedIn(preferred) {
			return domain.MaxLocationScore, locationReason(job)
		}
	}

	for _, pair := range s.adjacent {
		a, b := pair[0], pair[1]
		if (a.mentionedIn(posting) && b.mentionedIn(preferred)) ||
			(b.mentionedIn(posting) && a.mentionedIn(preferred)) {
			return adjacentLocationScore, nil
		}
	}
	return 0, nil
}

func locationReason(job *domain.JobPosting) []string {
	return []string{fmt.Sprintf("location matches: %s", strings.TrimSpace(job.Location))}
}
