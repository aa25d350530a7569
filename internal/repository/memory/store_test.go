package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-matching-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStore(t *testing.T) {
	store := NewJobStore([]domain.JobPosting{{ID: "a", Title: "first"}, {ID: "b"}, {ID: "a", Title: "shadowed"}})
	ctx := context.Background()

	job, err := store.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", job.Title)

	_, err = store.GetByID(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// callers get their own copy of the snapshot
	all[0].Title = "mutated"
	job, _ = store.GetByID(ctx, "a")
	assert.Equal(t, "first", job.Title)
}

func TestLoadProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"c1","preferred_location":"Seoul","skills":["Go"],"experience_years":4,"visa_status":"F-2","salary_expectation":4200},
		{"id":"c2","skills":[],"experience_years":0}
	]`), 0o644))

	store, err := LoadProfiles(path)
	require.NoError(t, err)

	c1, err := store.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, c1.Skills)
	require.NotNil(t, c1.SalaryExpectation)
	assert.Equal(t, int64(4200), *c1.SalaryExpectation)

	c2, err := store.GetByID(context.Background(), "c2")
	require.NoError(t, err)
	assert.Nil(t, c2.SalaryExpectation)
}

func TestLoadJobs_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := LoadJobs(path)
	assert.Error(t, err)

	_, err = LoadJobs(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
