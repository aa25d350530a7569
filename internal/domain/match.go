package domain

import "context"

// MatchMode selects which side of the match is fixed
type MatchMode string

const (
	ModePostingsForCandidate MatchMode = "postings_for_candidate"
	ModeCandidatesForPosting MatchMode = "candidates_for_posting"
)

// Valid reports whether m is one of the two supported modes
func (m MatchMode) Valid() bool {
	return m == ModePostingsForCandidate || m == ModeCandidatesForPosting
}

// Per-criterion caps. They sum to 100.
const (
	MaxSkillScore      = 40
	MaxLocationScore   = 25
	MaxExperienceScore = 20
	MaxVisaScore       = 10
	MaxSalaryScore     = 5
)

// ScoreBreakdown carries the clamped sub-score of every criterion.
type ScoreBreakdown struct {
	Skills     float64 `json:"skills"`
	Location   float64 `json:"location"`
	Experience float64 `json:"experience"`
	Visa       float64 `json:"visa"`
	Salary     float64 `json:"salary"`
}

// Total sums all sub-scores
func (b ScoreBreakdown) Total() float64 {
	return b.Skills + b.Location + b.Experience + b.Visa + b.Salary
}

// MatchResult is one ranked entry. It is never persisted.
type MatchResult struct {
	SubjectID   string         `json:"subject_id"`
	SubjectName string         `json:"subject_name,omitempty"`
	Score       int            `json:"score"`
	Reasons     []string       `json:"reasons"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
}

// MatchRequest is the input envelope.
// Limit and MinScore are display options applied after ranking; zero values mean "all" and "> 0".
type MatchRequest struct {
	Mode      MatchMode `json:"mode" binding:"required" validate:"required,match_mode"`
	SubjectID string    `json:"subject_id" binding:"required" validate:"required,max=128"`
	Limit     int       `json:"limit" validate:"gte=0"`
	MinScore  int       `json:"min_score" validate:"gte=0,lte=100"`
}

// MatchResponse is the output envelope.
// Subject is either a *JobPosting or a *CandidateProfile depending on mode.
// TotalMatches counts every match passing MinScore, including those cut by Limit.
// AverageScore covers the returned Matches only.
type MatchResponse struct {
	Mode         MatchMode     `json:"mode"`
	Subject      interface{}   `json:"subject"`
	Matches      []MatchResult `json:"matches"`
	TotalMatches int           `json:"total_matches"`
	AverageScore int           `json:"average_score"`
}

// Export formats
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// MatchExportRequest renders a match run as a downloadable file
type MatchExportRequest struct {
	Match  MatchRequest `json:"match"`
	Format string       `json:"format" validate:"omitempty,oneof=xlsx csv"` // "xlsx" or "csv"
}

// MatchUsecase resolves a subject, ranks its pool, and wraps the result.
type MatchUsecase interface {
	Match(ctx context.Context, req MatchRequest) (*MatchResponse, error)

	// Export runs Match and returns file bytes plus a suggested filename
	Export(ctx context.Context, req MatchExportRequest) ([]byte, string, error)
}
