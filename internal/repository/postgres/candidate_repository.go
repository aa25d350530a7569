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

const candidateColumns = `id, full_name, COALESCE(preferred_location, ''), skills, experience_years, COALESCE(visa_status, ''), salary_expectation`

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.ProfileStore {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidate_profiles WHERE id = $1`

	profile, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch candidate profile %s: %w", id, err)
	}
	return profile, nil
}

// ListAll returns profiles that opted into matching.
func (r *candidateRepository) ListAll(ctx context.Context) ([]domain.CandidateProfile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidate_profiles WHERE open_to_offers ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.CandidateProfile{}
	for rows.Next() {
		p, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidate profiles: %w", err)
	}
	return profiles, nil
}

func scanCandidate(row pgx.Row) (*domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	var skills []string
	err := row.Scan(
		&p.ID, &p.FullName, &p.PreferredLocation, pq.Array(&skills),
		&p.ExperienceYears, &p.VisaStatus, &p.SalaryExpectation,
	)
	if err != nil {
		return nil, err
	}
	p.Skills = skills
	return &p, nil
}
