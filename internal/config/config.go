// Package config provides configuration loading and validation for the CLI.
// Values merge from three layers: JSON config file, environment (via an
// optional .env file), then CLI flags, with later layers winning.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the CLI configuration. All fields are optional; missing values
// use defaults or must be provided via flags.
type Config struct {
	// Inputs
	Job        string `json:"job,omitempty"`        // Path to job posting text file
	JobURL     string `json:"job_url,omitempty"`    // URL to fetch the posting from
	Experience string `json:"experience,omitempty"` // Path to experience graph JSON

	// Tailoring parameters
	Sections           []string `json:"sections,omitempty"`
	BulletsPerSection  int      `json:"bullets_per_section,omitempty" validate:"gte=0,lte=10"`
	Tone               string   `json:"tone,omitempty"`
	Temperature        float64  `json:"temperature,omitempty" validate:"gte=0,lte=2"`
	MaxOutputTokens    int      `json:"max_output_tokens,omitempty" validate:"gte=0"`
	StretchLevel       int      `json:"stretch_level,omitempty" validate:"gte=0,lte=3"`
	IncludeSummary     *bool    `json:"include_summary,omitempty"`
	IncludeCoverLetter bool     `json:"include_cover_letter,omitempty"`

	// Behavior
	APIKey      string `json:"api_key,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	Output      string `json:"output,omitempty"` // Path to write the result JSON
	Verbose     bool   `json:"verbose,omitempty"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadEnv reads a .env file when present and fills API key and database URL
// from the environment for any field still empty. A missing .env file is not
// an error.
func (c *Config) LoadEnv(envPath string) {
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("config error: field %q fails %q constraint", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Experience != "" {
		if _, err := os.Stat(c.Experience); os.IsNotExist(err) {
			return fmt.Errorf("config error: experience file not found: %s", c.Experience)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags always win for booleans, so those are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Experience == "" {
		result.Experience = defaults.Experience
	}
	if len(result.Sections) == 0 {
		result.Sections = defaults.Sections
	}
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	if result.BulletsPerSection == 0 {
		result.BulletsPerSection = defaults.BulletsPerSection
	}
	if result.MaxOutputTokens == 0 {
		result.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if result.StretchLevel == 0 {
		result.StretchLevel = defaults.StretchLevel
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.IncludeSummary == nil {
		result.IncludeSummary = defaults.IncludeSummary
	}

	return result
}
