package matching

import (
	"context"
	"runtime"
	"sort"

	"go-matching-backend/internal/domain"

	"golang.org/x/sync/errgroup"
)

const defaultParallelThreshold = 512

// Ranker scores one fixed subject against a pool and orders the results.
type Ranker struct {
	engine            *Engine
	workers           int
	parallelThreshold int
}

type RankerOption func(*Ranker)

// WithWorkers caps the number of goroutines used for large pools.
func WithWorkers(n int) RankerOption {
	return func(r *Ranker) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithParallelThreshold sets the pool size from which scoring fans out.
// A value of 0 keeps the default; a negative value disables fan-out.
func WithParallelThreshold(n int) RankerOption {
	return func(r *Ranker) {
		if n != 0 {
			r.parallelThreshold = n
		}
	}
}

func NewRanker(engine *Engine, opts ...RankerOption) *Ranker {
	if engine == nil {
		engine = NewEngine()
	}
	r := &Ranker{
		engine:            engine,
		workers:           runtime.GOMAXPROCS(0),
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MatchPostingsForCandidate ranks postings for a single candidate.
func (r *Ranker) MatchPostingsForCandidate(ctx context.Context, candidate *domain.CandidateProfile, postings []domain.JobPosting) ([]domain.MatchResult, error) {
	return rank(ctx, r, postings, func(p *domain.JobPosting) domain.MatchResult {
		return toResult(p.ID, p.Title, r.engine.Score(p, candidate))
	})
}

// MatchCandidatesForPosting ranks candidates for a single posting.
func (r *Ranker) MatchCandidatesForPosting(ctx context.Context, posting *domain.JobPosting, candidates []domain.CandidateProfile) ([]domain.MatchResult, error) {
	return rank(ctx, r, candidates, func(c *domain.CandidateProfile) domain.MatchResult {
		return toResult(c.ID, c.FullName, r.engine.Score(posting, c))
	})
}

func toResult(id, name string, ev Evaluation) domain.MatchResult {
	return domain.MatchResult{
		SubjectID:   id,
		SubjectName: name,
		Score:       ev.Score,
		Reasons:     ev.Reasons,
		Breakdown:   ev.Breakdown,
	}
}

// rank scores every element of pool, drops non-positive scores and sorts.
func rank[T any](ctx context.Context, r *Ranker, pool []T, score func(*T) domain.MatchResult) ([]domain.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scored := make([]domain.MatchResult, len(pool))
	if r.parallelThreshold > 0 && len(pool) >= r.parallelThreshold && r.workers > 1 {
		if err := scoreParallel(ctx, r.workers, pool, scored, score); err != nil {
			return nil, err
		}
	} else {
		for i := range pool {
			scored[i] = score(&pool[i])
		}
	}

	results := make([]domain.MatchResult, 0, len(scored))
	for _, res := range scored {
		if res.Score > 0 {
			results = append(results, res)
		}
	}
	SortResults(results)
	return results, nil
}

// scoreParallel splits pool into contiguous chunks, one per worker. Each
// worker writes only its own indexes of out, so no locking is needed.
func scoreParallel[T any](ctx context.Context, workers int, pool []T, out []domain.MatchResult, score func(*T) domain.MatchResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (len(pool) + workers - 1) / workers
	for start := 0; start < len(pool); start += chunk {
		start, end := start, min(start+chunk, len(pool))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[i] = score(&pool[i])
			}
			return nil
		})
	}
	return g.Wait()
}

// SortResults orders by score desc, then skill sub-score desc, then subject id asc.
func SortResults(results []domain.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Breakdown.Skills != b.Breakdown.Skills {
			return a.Breakdown.Skills > b.Breakdown.Skills
		}
		return a.SubjectID < b.SubjectID
	})
}
