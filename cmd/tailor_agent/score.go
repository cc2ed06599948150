package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/ats"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/extract"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score resume bullets against a job posting",
	Long:  "Computes the ATS compatibility score for a set of resume bullets against the requirements extracted from a job posting. Bullets are read one per line; leading list markers are stripped.",
	RunE:  runScore,
}

var (
	scoreJob     string
	scoreBullets string
	scoreOutput  string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job posting text file (required)")
	scoreCmd.Flags().StringVarP(&scoreBullets, "bullets", "b", "", "Path to bullets text file, one bullet per line (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", "", "Path to write the score JSON (defaults to stdout)")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	if scoreJob == "" || scoreBullets == "" {
		return fmt.Errorf("both --job and --bullets are required")
	}

	jobData, err := os.ReadFile(scoreJob)
	if err != nil {
		return fmt.Errorf("failed to read job posting file: %w", err)
	}
	bullets, err := readBulletLines(scoreBullets)
	if err != nil {
		return err
	}
	if len(bullets) == 0 {
		return fmt.Errorf("no bullets found in %s", scoreBullets)
	}

	description := extract.Clean(string(jobData))
	req := extract.Requirements(description)

	score := ats.Calculate(bullets, req.Keywords, req.RequiredSkills, req.PreferredSkills)

	data, err := json.MarshalIndent(score, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}
	if scoreOutput == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(scoreOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write score: %w", err)
	}
	fmt.Printf("Score written to %s\n", scoreOutput)
	return nil
}

func readBulletLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bullets file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var bullets []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimPrefix(line, "• ")
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan bullets file: %w", err)
	}
	return bullets, nil
}
