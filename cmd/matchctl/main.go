// Package main provides matchctl, an offline runner for the matching engine over JSON files.
package main

import (
	"fmt"
	"os"

	"go-matching-backend/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "matchctl",
	Short: "Rank job postings and candidate profiles from the command line",
	Long:  "matchctl runs the same matching usecase as the API against postings and profiles loaded from JSON files.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Init(logLevel)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
