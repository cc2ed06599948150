// Package main provides the entry point for the resume tailoring CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailor_agent",
	Short: "Resume tailoring pipeline",
	Long:  "Tailors a candidate's experience graph to a job posting: extracts requirements, ranks experience, generates bullets, audits them against the source facts, and scores ATS compatibility.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
