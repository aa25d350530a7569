package matching

import (
	"fmt"
	"strings"

	"go-matching-backend/internal/domain"
)

// SkillScorer awards up to 40 points for the share of required skills the
// candidate covers. Matching is case-insensitive substring containment in
// either direction, so "React" matches "React.js".
type SkillScorer struct{}

func (SkillScorer) Criterion() Criterion { return CriterionSkills }

func (SkillScorer) Max() float64 { return domain.MaxSkillScore }

func (s SkillScorer) Score(job *domain.JobPosting, candidate *domain.CandidateProfile) (float64, []string) {
	required := distinctSkills(job.RequiredSkills)
	if len(required) == 0 {
		return 0, nil
	}

	have := make([]string, 0, len(candidate.Skills))
	for _, skill := range candidate.Skills {
		if n := normalize(skill); n != "" {
			have = append(have, n)
		}
	}

	var matched []string
	for _, req := range required {
		key := normalize(req)
		for _, h := range have {
			if containsEither(key, h) {
				matched = append(matched, strings.TrimSpace(req))
				break
			}
		}
	}

	if len(matched) == 0 {
		return 0, nil
	}

	score := float64(domain.MaxSkillScore) * float64(len(matched)) / float64(len(required))
	return score, []string{fmt.Sprintf("skills matched: %s", strings.Join(matched, ", "))}
}

// distinctSkills drops blanks and case-insensitive duplicates, keeping first spelling.
func distinctSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		key := normalize(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
