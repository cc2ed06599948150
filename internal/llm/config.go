// Package llm provides the generation collaborator abstraction: a provider
// config with per-tier model selection and a Client for structured JSON
// exchanges.
package llm

// ModelTier selects model capability per exchange. The pipeline uses
// TierAdvanced for the initial resume generation, TierStandard for backfill,
// audit, regeneration and cover letter exchanges, and TierLite for cheap
// probe-style calls.
type ModelTier string

// Model tiers, cheapest first.
const (
	TierLite     ModelTier = "lite"
	TierStandard ModelTier = "standard"
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies an LLM backend.
type Provider string

// ProviderGemini is the only backend currently wired.
const ProviderGemini Provider = "gemini"

// Config maps tiers to concrete model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the Gemini tier ladder.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name, stepping down to standard and
// then lite when the requested tier is not configured. Returns "" when no
// tier resolves.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}
