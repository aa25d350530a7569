package matching

import (
	"testing"

	"go-matching-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64 { return &v }

func TestSkillScorer(t *testing.T) {
	s := SkillScorer{}

	t.Run("No required skills scores exactly zero", func(t *testing.T) {
		score, reasons := s.Score(&domain.JobPosting{RequiredSkills: []string{}}, &domain.CandidateProfile{Skills: []string{"Go"}})
		assert.Equal(t, 0.0, score)
		assert.Empty(t, reasons)

		score, _ = s.Score(&domain.JobPosting{RequiredSkills: []string{" ", ""}}, &domain.CandidateProfile{Skills: []string{"Go"}})
		assert.Equal(t, 0.0, score)
	})

	t.Run("Substring match works in both directions", func(t *testing.T) {
		job := &domain.JobPosting{RequiredSkills: []string{"React", "Node.js Backend"}}
		cand := &domain.CandidateProfile{Skills: []string{"react.js", "Node.js"}}
		score, reasons := s.Score(job, cand)
		assert.Equal(t, 40.0, score)
		assert.Equal(t, []string{"skills matched: React, Node.js Backend"}, reasons)
	})

	t.Run("Partial coverage is proportional", func(t *testing.T) {
		job := &domain.JobPosting{RequiredSkills: []string{"Go", "Kubernetes", "PostgreSQL", "Kafka"}}
		cand := &domain.CandidateProfile{Skills: []string{"go", "kafka"}}
		score, _ := s.Score(job, cand)
		assert.Equal(t, 20.0, score)
	})

	t.Run("Full match ceiling ignores extra candidate skills", func(t *testing.T) {
		job := &domain.JobPosting{RequiredSkills: []string{"Python"}}
		cand := &domain.CandidateProfile{Skills: []string{"Python", "Excel", "Photoshop", "Marketing", "SQL"}}
		score, _ := s.Score(job, cand)
		assert.Equal(t, 40.0, score)
	})

	t.Run("Duplicate required skills count once", func(t *testing.T) {
		job := &domain.JobPosting{RequiredSkills: []string{"Java", "java ", "Spring"}}
		cand := &domain.CandidateProfile{Skills: []string{"Java"}}
		score, _ := s.Score(job, cand)
		assert.Equal(t, 20.0, score)
	})

	t.Run("Blank candidate skills never match", func(t *testing.T) {
		job := &domain.JobPosting{RequiredSkills: []string{"Go"}}
		cand := &domain.CandidateProfile{Skills: []string{"", "  "}}
		score, reasons := s.Score(job, cand)
		assert.Equal(t, 0.0, score)
		assert.Nil(t, reasons)
	})

	t.Run("Adding a matching skill never lowers the score", func(t *testing.T) {
		job := &domain.JobPosting{RequiredSkills: []string{"Go", "Docker", "AWS", "Terraform"}}
		cand := &domain.CandidateProfile{}
		prev, _ := s.Score(job, cand)
		for _, skill := range []string{"Photoshop", "docker", "Terraform", "Go", "aws"} {
			cand.Skills = append(cand.Skills, skill)
			next, _ := s.Score(job, cand)
			assert.GreaterOrEqual(t, next, prev, "after adding %q", skill)
			prev = next
		}
		assert.Equal(t, 40.0, prev)
	})
}

func TestLocationScorer(t *testing.T) {
	s := NewLocationScorer()

	tests := []struct {
		name      string
		posting   string
		preferred string
		want      float64
		reason    bool
	}{
		{"exact", "Seoul", "seoul", 25, true},
		{"candidate lists several regions", "Seoul", "Seoul/Gyeonggi", 25, true},
		{"posting more specific", "Seoul Gangnam-gu", "Seoul", 25, true},
		{"adjacent pair", "Gyeonggi-do Suwon", "Seoul", 15, false},
		{"adjacent pair reversed", "Seoul", "Gyeonggi", 15, false},
		{"adjacent pair in hangul", "경기도 성남시", "서울", 15, false},
		{"same region in hangul and latin", "서울", "Seoul", 25, true},
		{"same region latin posting", "Gyeonggi-do Suwon", "경기", 25, true},
		{"same region outranks neighbour", "서울 강남구", "Seoul/Busan", 25, true},
		{"unrelated", "Busan", "Seoul", 0, false},
		{"empty posting", "", "Seoul", 0, false},
		{"both empty", "", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasons := s.Score(&domain.JobPosting{Location: tt.posting}, &domain.CandidateProfile{PreferredLocation: tt.preferred})
			assert.Equal(t, tt.want, score)
			if tt.reason {
				assert.Len(t, reasons, 1)
			} else {
				assert.Empty(t, reasons)
			}
		})
	}
}

func TestExperienceScorer(t *testing.T) {
	s := ExperienceScorer{}

	tests := []struct {
		level string
		years int
		want  float64
	}{
		{"entry", 0, 20}, {"entry", 1, 20}, {"entry", 2, 15}, {"entry", 3, 15}, {"entry", 4, 10},
		{"junior", 0, 15}, {"junior", 1, 20}, {"junior", 3, 20}, {"junior", 5, 15}, {"junior", 6, 10},
		{"mid", 0, 10}, {"mid", 1, 15}, {"mid", 3, 20}, {"mid", 7, 20}, {"mid", 8, 15}, {"mid", 10, 15}, {"mid", 11, 10},
		{"senior", 0, 5}, {"senior", 2, 5}, {"senior", 3, 15}, {"senior", 4, 15}, {"senior", 5, 20}, {"senior", 20, 20},
		{"Senior ", 6, 20},
		{"principal", 12, 10},
		{"", 3, 10},
		{"mid", -2, 10},
	}

	for _, tt := range tests {
		score, reasons := s.Score(&domain.JobPosting{ExperienceLevel: tt.level}, &domain.CandidateProfile{ExperienceYears: tt.years})
		assert.Equal(t, tt.want, score, "level=%q years=%d", tt.level, tt.years)
		if tt.want == 20 {
			assert.Len(t, reasons, 1)
		} else {
			assert.Empty(t, reasons)
		}
	}
}

func TestVisaScorer(t *testing.T) {
	s := VisaScorer{}

	score, reasons := s.Score(&domain.JobPosting{VisaSponsorship: true}, &domain.CandidateProfile{VisaStatus: "D-2"})
	assert.Equal(t, 10.0, score)
	assert.Equal(t, []string{"visa sponsorship provided"}, reasons)

	// sponsorship and exempt status do not stack
	score, _ = s.Score(&domain.JobPosting{VisaSponsorship: true}, &domain.CandidateProfile{VisaStatus: "F-5"})
	assert.Equal(t, 10.0, score)

	for _, status := range []string{"F-2", "F-4", "f-5", " F-6 "} {
		score, reasons = s.Score(&domain.JobPosting{}, &domain.CandidateProfile{VisaStatus: status})
		assert.Equal(t, 10.0, score, status)
		assert.Empty(t, reasons)
	}

	for _, status := range []string{"E-7", "D-2", "D-10", ""} {
		score, _ = s.Score(&domain.JobPosting{}, &domain.CandidateProfile{VisaStatus: status})
		assert.Equal(t, 0.0, score, status)
	}
}

func TestSalaryScorer(t *testing.T) {
	s := SalaryScorer{}
	band := &domain.JobPosting{SalaryMin: i64(4000), SalaryMax: i64(5000)}

	tests := []struct {
		name string
		job  *domain.JobPosting
		want *int64
		out  float64
	}{
		{"within range", band, i64(4500), 5},
		{"range edge", band, i64(5000), 5},
		{"within 20 percent of midpoint", band, i64(5300), 3},
		{"within 40 percent of midpoint", band, i64(3000), 1},
		{"far away", band, i64(9000), 0},
		{"no expectation", band, nil, 0},
		{"missing max", &domain.JobPosting{SalaryMin: i64(4000)}, i64(4000), 0},
		{"inverted range", &domain.JobPosting{SalaryMin: i64(5000), SalaryMax: i64(4000)}, i64(4500), 0},
		{"zero band", &domain.JobPosting{SalaryMin: i64(0), SalaryMax: i64(0)}, i64(100), 0},
		{"negative expectation", band, i64(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasons := s.Score(tt.job, &domain.CandidateProfile{SalaryExpectation: tt.want})
			assert.Equal(t, tt.out, score)
			assert.Empty(t, reasons)
		})
	}
}
