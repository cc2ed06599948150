package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/config"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/llm"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/observability"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/params"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/pipeline"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/session"
	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

var tailorCommand = &cobra.Command{
	Use:   "tailor",
	Short: "Run the full tailoring pipeline end-to-end",
	Long: `Runs the entire tailoring process: posting acquisition -> requirement extraction -> snippet ranking -> section planning -> generation -> guardrail audit -> ATS scoring.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runTailorCmd,
}

var (
	tailorConfigPath  string
	tailorJob         string
	tailorJobURL      string
	tailorExperience  string
	tailorSections    []string
	tailorBullets     int
	tailorTone        string
	tailorTemperature float64
	tailorMaxTokens   int
	tailorStretch     int
	tailorNoSummary   bool
	tailorCoverLetter bool
	tailorAPIKey      string
	tailorDatabaseURL string
	tailorOutput      string
	tailorVerbose     bool
)

func init() {
	tailorCommand.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	tailorCommand.Flags().StringVarP(&tailorJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	tailorCommand.Flags().StringVar(&tailorJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	tailorCommand.Flags().StringVarP(&tailorExperience, "experience", "e", "", "Path to experience graph JSON file")
	tailorCommand.Flags().StringSliceVar(&tailorSections, "sections", nil, "Resume sections to generate, in order")
	tailorCommand.Flags().IntVar(&tailorBullets, "bullets", 0, "Bullets per section")
	tailorCommand.Flags().StringVar(&tailorTone, "tone", "", "Writing tone for generated bullets")
	tailorCommand.Flags().Float64Var(&tailorTemperature, "temperature", 0, "Sampling temperature (0-2)")
	tailorCommand.Flags().IntVar(&tailorMaxTokens, "max-tokens", 0, "Maximum output tokens for the generation exchange")
	tailorCommand.Flags().IntVar(&tailorStretch, "stretch", 0, "Allowed exaggeration level (0-3)")
	tailorCommand.Flags().BoolVar(&tailorNoSummary, "no-summary", false, "Skip the professional summary")
	tailorCommand.Flags().BoolVar(&tailorCoverLetter, "cover-letter", false, "Also generate a cover letter")
	tailorCommand.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print detailed debug information")

	tailorCommand.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	tailorCommand.Flags().StringVar(&tailorDatabaseURL, "db-url", "", "PostgreSQL connection URL for session tracking (optional, defaults to DATABASE_URL env var)")
	tailorCommand.Flags().StringVarP(&tailorOutput, "output", "o", "", "Path to write the result JSON (defaults to stdout)")

	rootCmd.AddCommand(tailorCommand)
}

func runTailorCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if tailorConfigPath != "" {
		loadedCfg, err := config.LoadConfig(tailorConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if tailorVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", tailorConfigPath)
		}
	}

	// CLI overrides win over config values, but only when explicitly set.
	if cmd.Flags().Changed("job") {
		cfg.Job = tailorJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = tailorJobURL
	}
	if cmd.Flags().Changed("experience") {
		cfg.Experience = tailorExperience
	}
	if cmd.Flags().Changed("sections") {
		cfg.Sections = tailorSections
	}
	if cmd.Flags().Changed("bullets") {
		cfg.BulletsPerSection = tailorBullets
	}
	if cmd.Flags().Changed("tone") {
		cfg.Tone = tailorTone
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = tailorTemperature
	}
	if cmd.Flags().Changed("max-tokens") {
		cfg.MaxOutputTokens = tailorMaxTokens
	}
	if cmd.Flags().Changed("stretch") {
		cfg.StretchLevel = tailorStretch
	}
	if cmd.Flags().Changed("no-summary") {
		include := !tailorNoSummary
		cfg.IncludeSummary = &include
	}
	if cmd.Flags().Changed("cover-letter") {
		cfg.IncludeCoverLetter = tailorCoverLetter
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = tailorAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = tailorDatabaseURL
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = tailorOutput
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = tailorVerbose
	}

	cfg.LoadEnv("")
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	description := ""
	if cfg.Job != "" {
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job posting file: %w", err)
		}
		description = string(data)
	}

	var graph types.ExperienceGraph
	if cfg.Experience != "" {
		data, err := os.ReadFile(cfg.Experience)
		if err != nil {
			return fmt.Errorf("failed to read experience file: %w", err)
		}
		if err := json.Unmarshal(data, &graph); err != nil {
			return fmt.Errorf("failed to parse experience JSON: %w", err)
		}
	}

	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	store := openStore(ctx, cfg.DatabaseURL, cfg.Verbose)
	defer store.Close()

	sess, _, err := store.Create(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	_ = store.MarkProcessing(ctx, sess.ID)

	p := params.Parameters{
		Sections:           cfg.Sections,
		BulletsPerSection:  cfg.BulletsPerSection,
		Tone:               cfg.Tone,
		IncludeSummary:     cfg.IncludeSummary == nil || *cfg.IncludeSummary,
		IncludeCoverLetter: cfg.IncludeCoverLetter,
		Temperature:        cfg.Temperature,
		MaxOutputTokens:    cfg.MaxOutputTokens,
		StretchLevel:       cfg.StretchLevel,
	}

	result, err := pipeline.Run(ctx, pipeline.Options{
		Description: description,
		JobURL:      cfg.JobURL,
		Graph:       graph,
		Params:      p,
		Client:      client,
		Printer:     observability.NewPrinter(os.Stdout),
		Verbose:     cfg.Verbose,
		OnProgress: func(event pipeline.ProgressEvent) {
			if cfg.Verbose {
				_, _ = fmt.Fprintf(os.Stdout, "[%s] %s\n", event.Step, event.Message)
			}
		},
	})
	if err != nil {
		_ = store.Fail(ctx, sess.ID, err.Error())
		return err
	}
	if err := store.Complete(ctx, sess.ID, result); err != nil && cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist session: %v\n", err)
	}

	return writeResult(result, cfg.Output)
}

// openStore prefers PostgreSQL when configured and silently degrades to the
// in-memory store otherwise.
func openStore(ctx context.Context, databaseURL string, verbose bool) session.Store {
	if databaseURL == "" {
		return session.NewMemoryStore()
	}
	store, err := session.ConnectPg(ctx, databaseURL)
	if err != nil {
		if verbose {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\nContinuing without database persistence...\n", err)
		}
		return session.NewMemoryStore()
	}
	return store
}

func writeResult(result *types.TailoringResult, outputPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if outputPath == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	fmt.Printf("Result written to %s\n", outputPath)
	return nil
}
