package domain

import "context"

// HealthUsecase reports the status of every backing dependency by name.
// The error is non-nil when at least one dependency is down.
type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, error)
}
