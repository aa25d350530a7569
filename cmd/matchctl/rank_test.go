package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	postings := `[
		{"id": "job-1", "title": "Frontend Developer", "location": "Seoul", "required_skills": ["React", "Node.js"],
		 "experience_level": "mid", "salary_min": 4000, "salary_max": 5000, "visa_sponsorship": true},
		{"id": "job-2", "title": "Backend Developer", "location": "Busan", "required_skills": ["Go"], "experience_level": "senior"}
	]`
	candidates := `[
		{"id": "cand-1", "full_name": "Kim Minji", "preferred_location": "Seoul", "skills": ["JavaScript", "React", "Node.js"],
		 "experience_years": 3, "visa_status": "E-7", "salary_expectation": 4500},
		{"id": "cand-2", "preferred_location": "Gyeonggi", "skills": ["React"], "experience_years": 12, "visa_status": "F-4"}
	]`

	postingsPath := filepath.Join(dir, "postings.json")
	candidatesPath := filepath.Join(dir, "candidates.json")
	require.NoError(t, os.WriteFile(postingsPath, []byte(postings), 0644))
	require.NoError(t, os.WriteFile(candidatesPath, []byte(candidates), 0644))
	return postingsPath, candidatesPath
}

func TestRunRankJSON(t *testing.T) {
	postings, candidates := writeFixtures(t)
	var out bytes.Buffer

	err := runRank(context.Background(), rankOptions{
		mode:           string(domain.ModeCandidatesForPosting),
		subject:        "job-1",
		postingsPath:   postings,
		candidatesPath: candidates,
		format:         formatJSON,
	}, &out)
	require.NoError(t, err)

	var resp struct {
		Matches      []domain.MatchResult `json:"matches"`
		TotalMatches int                  `json:"total_matches"`
		AverageScore int                  `json:"average_score"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Equal(t, 2, resp.TotalMatches)
	assert.Equal(t, "cand-1", resp.Matches[0].SubjectID)
	assert.Equal(t, 100, resp.Matches[0].Score)
	assert.Equal(t, "cand-2", resp.Matches[1].SubjectID)
	assert.Equal(t, 55, resp.Matches[1].Score)
	assert.Equal(t, 78, resp.AverageScore)
}

func TestRunRankCSVToFile(t *testing.T) {
	postings, candidates := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "nested", "matches.csv")
	var stdout bytes.Buffer

	err := runRank(context.Background(), rankOptions{
		mode:           string(domain.ModePostingsForCandidate),
		subject:        "cand-1",
		postingsPath:   postings,
		candidatesPath: candidates,
		limit:          1,
		out:            outPath,
		format:         domain.ExportFormatCSV,
	}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), outPath)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "job-1", records[1][1])
}

func TestRunRankXLSX(t *testing.T) {
	postings, candidates := writeFixtures(t)
	opts := rankOptions{
		mode:           string(domain.ModeCandidatesForPosting),
		subject:        "job-1",
		postingsPath:   postings,
		candidatesPath: candidates,
		format:         domain.ExportFormatXLSX,
	}

	t.Run("requires an output file", func(t *testing.T) {
		err := runRank(context.Background(), opts, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("writes a workbook", func(t *testing.T) {
		opts.out = filepath.Join(t.TempDir(), "matches.xlsx")
		require.NoError(t, runRank(context.Background(), opts, &bytes.Buffer{}))

		f, err := excelize.OpenFile(opts.out)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Matches")
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})
}

func TestRunRankErrors(t *testing.T) {
	postings, candidates := writeFixtures(t)

	t.Run("unknown subject", func(t *testing.T) {
		err := runRank(context.Background(), rankOptions{
			mode: string(domain.ModeCandidatesForPosting), subject: "job-404",
			postingsPath: postings, candidatesPath: candidates, format: formatJSON,
		}, &bytes.Buffer{})

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := runRank(context.Background(), rankOptions{
			mode: string(domain.ModeCandidatesForPosting), subject: "job-1",
			postingsPath: postings, candidatesPath: candidates, format: "yaml",
		}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "unsupported format")
	})

	t.Run("missing file", func(t *testing.T) {
		err := runRank(context.Background(), rankOptions{
			mode: string(domain.ModeCandidatesForPosting), subject: "job-1",
			postingsPath: filepath.Join(t.TempDir(), "nope.json"), format: formatJSON,
		}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "failed to load postings")
	})
}

func TestRankCommandFlags(t *testing.T) {
	postings, candidates := writeFixtures(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"rank", "--mode", "postings_for_candidate", "--subject", "cand-2",
		"--postings", postings, "--candidates", candidates, "--min-score", "40",
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	var resp domain.MatchResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Equal(t, 1, resp.TotalMatches)
	assert.Equal(t, "job-1", resp.Matches[0].SubjectID)
}
