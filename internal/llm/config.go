// Package llm provides the text-generation collaborator layer: Gemini-backed
// query synthesis and description generation with a model fallback chain.
package llm

import "time"

// Provider represents an LLM provider.
type Provider string

// Provider constants define supported LLM providers.
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the generation configuration. Models are tried in priority
// order; each attempt is bounded by AttemptTimeout before the next model in
// the chain is tried.
type Config struct {
	Provider        Provider
	Models          []string
	Temperature     float32
	MaxOutputTokens int32
	AttemptTimeout  time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini fallback chain, fastest
// model first.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: []string{
			"gemini-2.5-flash",
			"gemini-2.5-flash-lite",
			"gemma-3-27b-it",
		},
		Temperature:     0.7,
		MaxOutputTokens: 300,
		AttemptTimeout:  30 * time.Second,
	}
}
