package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bkaraca/career-advisor/internal/catalog"
	"github.com/bkaraca/career-advisor/internal/config"
	"github.com/bkaraca/career-advisor/internal/encoding"
	"github.com/bkaraca/career-advisor/internal/engine"
	"github.com/bkaraca/career-advisor/internal/types"
	"github.com/bkaraca/career-advisor/internal/vocab"
)

// resolveAPIKey returns the configured Gemini API key, falling back to the
// environment.
func resolveAPIKey(cfg *config.Config) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// buildEncoder constructs the configured encoder variant.
func buildEncoder(ctx context.Context, cfg *config.Config) (encoding.Encoder, error) {
	switch cfg.Encoder {
	case config.EncoderGemini:
		apiKey := resolveAPIKey(cfg)
		if apiKey == "" {
			return nil, fmt.Errorf("gemini encoder requires an API key (config 'api_key' or GEMINI_API_KEY)")
		}
		return encoding.NewGeminiEncoder(ctx, apiKey, "")
	case config.EncoderTFIDF, "":
		return encoding.NewTFIDFEncoder(cfg.MaxFeatures), nil
	default:
		return nil, fmt.Errorf("unknown encoder %q", cfg.Encoder)
	}
}

// catalogSource selects the course catalog source: the Postgres feed when a
// database URL is configured, otherwise the JSON snapshot.
func catalogSource(ctx context.Context, cfg *config.Config) (catalog.Source, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := catalog.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	if cfg.Catalog == "" {
		return nil, nil, fmt.Errorf("catalog path or database URL is required (flags or config file)")
	}
	return catalog.NewSnapshotSource(cfg.Catalog), func() {}, nil
}

// buildEngine constructs and loads the recommendation engine from the
// resolved configuration. The returned cleanup releases the catalog source.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, func(), error) {
	if cfg.Vocabulary == "" {
		return nil, nil, fmt.Errorf("vocabulary path is required (flags or config file)")
	}

	enc, err := buildEncoder(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	source, cleanup, err := catalogSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(enc, engine.Options{
		MinSimilarity: cfg.MinSimilarity,
		DefaultTopK:   cfg.TopK,
	})

	if err := eng.LoadFromSources(ctx, cfg.Vocabulary, source); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load engine: %w", err)
	}
	return eng, cleanup, nil
}

// reloadWithCourses builds a fresh engine over an already-materialized course
// list, bypassing the configured catalog source. Used after description
// synthesis so the enriched text is what gets encoded.
func reloadWithCourses(ctx context.Context, cfg *config.Config, courses []types.Course) (*engine.Engine, func(), error) {
	enc, err := buildEncoder(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	skills, err := vocab.Load(cfg.Vocabulary)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(enc, engine.Options{
		MinSimilarity: cfg.MinSimilarity,
		DefaultTopK:   cfg.TopK,
	})
	if err := eng.Load(ctx, skills, courses); err != nil {
		return nil, nil, fmt.Errorf("failed to reload engine: %w", err)
	}
	return eng, func() {}, nil
}

// resolveConfig merges an optional config file with flag-provided values.
// Flag values win; the config file fills the gaps.
func resolveConfig(configPath string, flags config.Config) (*config.Config, error) {
	cfg := flags
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
