package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"job_url": "https://example.com/jobs/1",
		"bullets_per_section": 4,
		"tone": "direct and quantitative",
		"stretch_level": 1
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/1", cfg.JobURL)
	assert.Equal(t, 4, cfg.BulletsPerSection)
	assert.Equal(t, "direct and quantitative", cfg.Tone)
	assert.Equal(t, 1, cfg.StretchLevel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateMutuallyExclusiveInputs(t *testing.T) {
	cfg := &Config{Job: "job.txt", JobURL: "https://example.com"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidateStretchLevelRange(t *testing.T) {
	cfg := &Config{StretchLevel: 7}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "StretchLevel")
}

func TestValidateTemperatureRange(t *testing.T) {
	cfg := &Config{Temperature: 3.5}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Temperature: 0.35}
	assert.NoError(t, cfg.Validate())
}

func TestValidateMissingJobFile(t *testing.T) {
	cfg := &Config{Job: filepath.Join(t.TempDir(), "missing.txt")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job file not found")
}

func TestLoadEnvFillsFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg := &Config{}
	cfg.LoadEnv(filepath.Join(t.TempDir(), "no-dotenv"))

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
}

func TestLoadEnvDoesNotOverrideExplicit(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{APIKey: "explicit"}
	cfg.LoadEnv(filepath.Join(t.TempDir(), "no-dotenv"))

	assert.Equal(t, "explicit", cfg.APIKey)
}

func TestMergeWithDefaults(t *testing.T) {
	include := true
	cfg := Config{JobURL: "https://example.com/jobs/1"}
	merged := cfg.MergeWithDefaults(Config{
		Tone:              "confident",
		BulletsPerSection: 3,
		Temperature:       0.35,
		IncludeSummary:    &include,
		APIKey:            "default-key",
	})

	assert.Equal(t, "https://example.com/jobs/1", merged.JobURL)
	assert.Equal(t, "confident", merged.Tone)
	assert.Equal(t, 3, merged.BulletsPerSection)
	assert.InDelta(t, 0.35, merged.Temperature, 0.0001)
	require.NotNil(t, merged.IncludeSummary)
	assert.True(t, *merged.IncludeSummary)
	assert.Equal(t, "default-key", merged.APIKey)
}

func TestMergeWithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{Tone: "understated", BulletsPerSection: 5}
	merged := cfg.MergeWithDefaults(Config{Tone: "confident", BulletsPerSection: 3})

	assert.Equal(t, "understated", merged.Tone)
	assert.Equal(t, 5, merged.BulletsPerSection)
}
