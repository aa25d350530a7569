package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/matching"
	"go-matching-backend/pkg/apperror"
	"go-matching-backend/pkg/logger"
	"go-matching-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// MatchOptions tunes caller-facing defaults. Zero values mean "no limit".
type MatchOptions struct {
	DefaultLimit  int
	ExportMaxRows int
}

type matchUsecase struct {
	jobs     domain.JobStore
	profiles domain.ProfileStore
	ranker   *matching.Ranker
	validate *validator.Validate
	opts     MatchOptions
}

func NewMatchUsecase(jobs domain.JobStore, profiles domain.ProfileStore, ranker *matching.Ranker, validate *validator.Validate, opts MatchOptions) domain.MatchUsecase {
	if ranker == nil {
		ranker = matching.NewRanker(nil)
	}
	if validate == nil {
		validate = validation.New()
	}
	return &matchUsecase{
		jobs:     jobs,
		profiles: profiles,
		ranker:   ranker,
		validate: validate,
		opts:     opts,
	}
}

func (u *matchUsecase) Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchResponse, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	var (
		subject interface{}
		matches []domain.MatchResult
		err     error
	)

	switch req.Mode {
	case domain.ModePostingsForCandidate:
		subject, matches, err = u.postingsForCandidate(ctx, req.SubjectID)
	case domain.ModeCandidatesForPosting:
		subject, matches, err = u.candidatesForPosting(ctx, req.SubjectID)
	}
	if err != nil {
		return nil, err
	}

	matches, total := u.applyView(matches, req)
	resp := &domain.MatchResponse{
		Mode:         req.Mode,
		Subject:      subject,
		Matches:      matches,
		TotalMatches: total,
		AverageScore: averageScore(matches),
	}

	logger.Log.DebugContext(ctx, "match completed",
		"mode", req.Mode,
		"subject_id", req.SubjectID,
		"total_matches", resp.TotalMatches,
		"average_score", resp.AverageScore,
	)
	return resp, nil
}

func (u *matchUsecase) postingsForCandidate(ctx context.Context, id string) (interface{}, []domain.MatchResult, error) {
	candidate, err := u.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, nil, subjectError("candidate", id, err)
	}

	postings, err := u.jobs.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list job postings: %w", err)
	}

	matches, err := u.ranker.MatchPostingsForCandidate(ctx, candidate, postings)
	if err != nil {
		return nil, nil, rankingError(err)
	}
	return candidate, matches, nil
}

func (u *matchUsecase) candidatesForPosting(ctx context.Context, id string) (interface{}, []domain.MatchResult, error) {
	posting, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, subjectError("job posting", id, err)
	}

	candidates, err := u.profiles.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list candidate profiles: %w", err)
	}

	matches, err := u.ranker.MatchCandidatesForPosting(ctx, posting, candidates)
	if err != nil {
		return nil, nil, rankingError(err)
	}
	return posting, matches, nil
}

// applyView applies the caller's score threshold and page size to an already ranked list.
// total counts every match above the threshold, before the page size cuts it.
func (u *matchUsecase) applyView(matches []domain.MatchResult, req domain.MatchRequest) (page []domain.MatchResult, total int) {
	if req.MinScore > 0 {
		kept := matches[:0:0]
		for _, m := range matches {
			if m.Score >= req.MinScore {
				kept = append(kept, m)
			}
		}
		matches = kept
	}
	total = len(matches)

	limit := req.Limit
	if limit == 0 {
		limit = u.opts.DefaultLimit
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, total
}

func averageScore(matches []domain.MatchResult) int {
	if len(matches) == 0 {
		return 0
	}
	sum := 0
	for _, m := range matches {
		sum += m.Score
	}
	return int(math.Round(float64(sum) / float64(len(matches))))
}

func subjectError(kind, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.SubjectNotFound(kind, id, err)
	}
	return fmt.Errorf("failed to fetch %s %s: %w", kind, id, err)
}

func rankingError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.New(http.StatusServiceUnavailable, "Match request was cancelled before completion", err)
	}
	return fmt.Errorf("ranking failed: %w", err)
}
