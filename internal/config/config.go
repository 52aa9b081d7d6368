// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Encoder variant names accepted in configuration.
const (
	EncoderTFIDF  = "tfidf"
	EncoderGemini = "gemini"
)

// Config represents the advisor configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Vocabulary string `json:"vocabulary,omitempty"` // Path to skill vocabulary text file
	Catalog    string `json:"catalog,omitempty"`    // Path to course catalog JSON snapshot

	// Catalog feed
	DatabaseURL string `json:"database_url,omitempty"` // Postgres catalog feed (alternative to snapshot)

	// Matching
	Encoder       string   `json:"encoder,omitempty"`        // "tfidf" or "gemini"
	MinSimilarity *float64 `json:"min_similarity,omitempty"` // Relevance threshold; nil uses the encoder default
	TopK          int      `json:"top_k,omitempty"`          // Default result count
	MaxFeatures   int      `json:"max_features,omitempty"`   // TF-IDF vocabulary cap

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Port    int    `json:"port,omitempty"`    // HTTP server port
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Catalog != "" && c.DatabaseURL != "" {
		return fmt.Errorf("config error: 'catalog' and 'database_url' are mutually exclusive")
	}

	if c.Encoder != "" && c.Encoder != EncoderTFIDF && c.Encoder != EncoderGemini {
		return fmt.Errorf("config error: 'encoder' must be %q or %q", EncoderTFIDF, EncoderGemini)
	}

	if c.MinSimilarity != nil && (*c.MinSimilarity < -1 || *c.MinSimilarity > 1) {
		return fmt.Errorf("config error: 'min_similarity' must be in [-1, 1]")
	}
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.MaxFeatures < 0 {
		return fmt.Errorf("config error: 'max_features' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}

	// Validate file paths exist (if specified)
	if c.Vocabulary != "" {
		if _, err := os.Stat(c.Vocabulary); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.Vocabulary)
		}
	}
	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Vocabulary == "" {
		result.Vocabulary = defaults.Vocabulary
	}
	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Encoder == "" {
		result.Encoder = defaults.Encoder
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.MinSimilarity == nil {
		result.MinSimilarity = defaults.MinSimilarity
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.MaxFeatures == 0 {
		result.MaxFeatures = defaults.MaxFeatures
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
