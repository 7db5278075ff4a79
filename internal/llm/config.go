// Package llm wraps the Gemini API and the CV optimizer built on it.
package llm

import "time"

// ModelTier selects a model by capability
type ModelTier string

const (
	// TierLite is for short rewrites and classification
	TierLite ModelTier = "lite"
	// TierStandard is the default for CV optimization
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long documents or tailoring against a posting
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM backend
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTimeout bounds a single generation call
const DefaultTimeout = 30 * time.Second

// DefaultTemperature keeps rewrites close to the source text
const DefaultTemperature float32 = 0.2

// Config holds the model configuration
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	Timeout     time.Duration
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
	}
}

// NewConfig returns the default configuration with model, when set, used
// for the standard tier
func NewConfig(model string) *Config {
	c := DefaultConfig()
	if model == "" {
		return c
	}
	return c.WithModel(TierStandard, model)
}

// GetModel returns the model name for a tier, falling back to the standard
// and then the lite model
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model set for tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return &out
}
