package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-matching-backend/internal/domain"
)

// HealthCheck probes a single dependency
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 2 * time.Second

type healthUsecase struct {
	checks map[string]HealthCheck
}

func NewHealthUsecase(checks map[string]HealthCheck) domain.HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, error) {
	status := map[string]string{"status": "ok"}

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		err := u.checks[name](checkCtx)
		cancel()

		if err != nil {
			status[name] = "down"
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		status[name] = "ok"
	}

	if len(errs) > 0 {
		status["status"] = "degraded"
		return status, errors.Join(errs...)
	}
	return status, nil
}
