package validation

import (
	"testing"

	"go-matching-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMatchRequestValidation(t *testing.T) {
	v := New()

	t.Run("Valid request passes", func(t *testing.T) {
		err := v.Struct(domain.MatchRequest{Mode: domain.ModeCandidatesForPosting, SubjectID: "job-1"})
		assert.NoError(t, err)
	})

	t.Run("Unknown mode is rejected with readable message", func(t *testing.T) {
		err := v.Struct(domain.MatchRequest{Mode: "everything", SubjectID: "job-1"})
		assert.Error(t, err)
		assert.Contains(t, Message(err), "postings_for_candidate or candidates_for_posting")
	})

	t.Run("Missing subject and bad score range", func(t *testing.T) {
		err := v.Struct(domain.MatchRequest{Mode: domain.ModePostingsForCandidate, MinScore: 150})
		msgs := FormatValidationErrors(err)
		assert.Len(t, msgs, 2)
		assert.Contains(t, msgs[0], "Subject ID: is required")
		assert.Contains(t, msgs[1], "Minimum score: must be at most 100")
	})
}

func TestRecordValidation(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(domain.JobPosting{ExperienceLevel: "Senior"}))
	assert.NoError(t, v.Struct(domain.JobPosting{}))
	assert.Error(t, v.Struct(domain.JobPosting{ExperienceLevel: "guru"}))

	for _, status := range []string{"E-7", "F-2", "D-10", "E-7-4", ""} {
		assert.NoError(t, v.Struct(domain.CandidateProfile{VisaStatus: status}), status)
	}
	for _, status := range []string{"tourist", "F2", "FF-2"} {
		assert.Error(t, v.Struct(domain.CandidateProfile{VisaStatus: status}), status)
	}
	assert.Error(t, v.Struct(domain.CandidateProfile{ExperienceYears: -1}))
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	assert.Equal(t, []string{"boom"}, FormatValidationErrors(assertErr("boom")))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
