package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-matching-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `id, title, location, required_skills, experience_level, salary_min, salary_max, visa_sponsorship`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobStore {
	return &jobRepo{db: db}
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM job_postings WHERE id = $1 AND status = 'active'`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch job posting %s: %w", id, err)
	}
	return job, nil
}

// ListAll returns every active posting. Closed or draft postings are never matched.
func (r *jobRepo) ListAll(ctx context.Context) ([]domain.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM job_postings WHERE status = 'active' ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	jobs := []domain.JobPosting{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*domain.JobPosting, error) {
	var job domain.JobPosting
	var skills []string
	err := row.Scan(
		&job.ID, &job.Title, &job.Location, pq.Array(&skills), &job.ExperienceLevel,
		&job.SalaryMin, &job.SalaryMax, &job.VisaSponsorship,
	)
	if err != nil {
		return nil, err
	}
	job.RequiredSkills = skills
	return &job, nil
}
