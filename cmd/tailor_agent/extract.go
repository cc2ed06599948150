package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/extract"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/fetch"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured requirements from a job posting",
	Long:  "Extracts required skills, preferred skills, keywords, qualifications and responsibilities from a job posting and prints the job profile as JSON. No LLM calls are made; extraction is purely heuristic.",
	RunE:  runExtract,
}

var (
	extractJob    string
	extractJobURL string
	extractOutput string
)

func init() {
	extractCmd.Flags().StringVarP(&extractJob, "job", "j", "", "Path to job posting text file")
	extractCmd.Flags().StringVar(&extractJobURL, "job-url", "", "URL to fetch the job posting from")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Path to write the profile JSON (defaults to stdout)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	if extractJob == "" && extractJobURL == "" {
		return fmt.Errorf("either --job or --job-url is required")
	}
	if extractJob != "" && extractJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive")
	}

	var description string
	if extractJob != "" {
		data, err := os.ReadFile(extractJob)
		if err != nil {
			return fmt.Errorf("failed to read job posting file: %w", err)
		}
		description = string(data)
	} else {
		fetched, err := fetch.JobPosting(context.Background(), extractJobURL, nil)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		if fetched == "" {
			return fmt.Errorf("no readable text found at %s", extractJobURL)
		}
		description = fetched
	}

	description = extract.Clean(description)
	req := extract.Requirements(description)
	profile := extract.BuildProfile(description, extractJobURL, req)

	data, err := json.MarshalIndent(&profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if extractOutput == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(extractOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	fmt.Printf("Profile written to %s\n", extractOutput)
	return nil
}
