package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/matching"
	"go-matching-backend/internal/repository/memory"
	"go-matching-backend/internal/usecase"
	"go-matching-backend/pkg/logger"
	"go-matching-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

const formatJSON = "json"

type rankOptions struct {
	mode           string
	subject        string
	postingsPath   string
	candidatesPath string
	limit          int
	minScore       int
	out            string
	format         string
	workers        int
}

var rankOpts rankOptions

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the opposite pool for one posting or candidate",
	Long: "Loads postings and candidate profiles from JSON files, ranks the pool for the given subject " +
		"and writes the result as JSON, CSV or XLSX.",
	Example: "  matchctl rank --mode candidates_for_posting --subject job-1 --postings postings.json --candidates candidates.json --limit 10",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRank(cmd.Context(), rankOpts, cmd.OutOrStdout())
	},
}

func init() {
	f := rankCmd.Flags()
	f.StringVarP(&rankOpts.mode, "mode", "m", "", "postings_for_candidate or candidates_for_posting (required)")
	f.StringVarP(&rankOpts.subject, "subject", "s", "", "ID of the posting or candidate to match (required)")
	f.StringVarP(&rankOpts.postingsPath, "postings", "p", "", "Path to a JSON array of job postings")
	f.StringVarP(&rankOpts.candidatesPath, "candidates", "c", "", "Path to a JSON array of candidate profiles")
	f.IntVarP(&rankOpts.limit, "limit", "n", 0, "Maximum number of matches, 0 for all")
	f.IntVar(&rankOpts.minScore, "min-score", 0, "Hide matches scoring below this value")
	f.StringVarP(&rankOpts.out, "out", "o", "", "Output file (stdout when empty, required for xlsx)")
	f.StringVarP(&rankOpts.format, "format", "f", formatJSON, "Output format: json, csv or xlsx")
	f.IntVar(&rankOpts.workers, "workers", 0, "Scoring goroutines for large pools, 0 for GOMAXPROCS")

	for _, name := range []string{"mode", "subject"} {
		if err := rankCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(ctx context.Context, opts rankOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.format == domain.ExportFormatXLSX && opts.out == "" {
		return fmt.Errorf("--out is required for xlsx output")
	}

	jobs, err := memory.LoadJobs(opts.postingsPath)
	if err != nil {
		return fmt.Errorf("failed to load postings: %w", err)
	}
	profiles, err := memory.LoadProfiles(opts.candidatesPath)
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	validate := validation.New()
	warnInvalidRecords(ctx, validate, jobs, profiles)

	uc := usecase.NewMatchUsecase(jobs, profiles,
		matching.NewRanker(nil, matching.WithWorkers(opts.workers)),
		validate,
		usecase.MatchOptions{},
	)

	req := domain.MatchRequest{
		Mode:      domain.MatchMode(opts.mode),
		SubjectID: opts.subject,
		Limit:     opts.limit,
		MinScore:  opts.minScore,
	}

	var data []byte
	switch opts.format {
	case formatJSON:
		resp, err := uc.Match(ctx, req)
		if err != nil {
			return err
		}
		if data, err = json.MarshalIndent(resp, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal matches: %w", err)
		}
		data = append(data, '\n')
	case domain.ExportFormatCSV, domain.ExportFormatXLSX:
		if data, _, err = uc.Export(ctx, domain.MatchExportRequest{Match: req, Format: opts.format}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (json, csv, xlsx)", opts.format)
	}

	if opts.out == "" {
		_, err = stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(opts.out); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(opts.out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}

	_, _ = fmt.Fprintf(stdout, "Wrote %s matches for %s to %s\n", opts.format, opts.subject, opts.out)
	return nil
}

// warnInvalidRecords reports records the API would reject. They are still scored.
func warnInvalidRecords(ctx context.Context, validate *validator.Validate, jobs *memory.JobStore, profiles *memory.ProfileStore) {
	postings, _ := jobs.ListAll(ctx)
	for i := range postings {
		if err := validate.Struct(&postings[i]); err != nil {
			logger.Log.Warn("invalid job posting", "id", postings[i].ID, "error", validation.Message(err))
		}
	}

	candidates, _ := profiles.ListAll(ctx)
	for i := range candidates {
		if err := validate.Struct(&candidates[i]); err != nil {
			logger.Log.Warn("invalid candidate profile", "id", candidates[i].ID, "error", validation.Message(err))
		}
	}
}
