package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bkaraca/career-advisor/internal/config"
	"github.com/bkaraca/career-advisor/internal/llm"
	"github.com/bkaraca/career-advisor/internal/mapping"
	"github.com/bkaraca/career-advisor/internal/types"
)

var mapSkillsCmd = &cobra.Command{
	Use:   "map-skills",
	Short: "Map every catalog course to its closest skills",
	Long:  "Runs the full course-to-skill mapping over the loaded catalog and writes the result as a JSON artifact. By default matching uses the similarity engine; --use-llm asks a language model to pick skills from the vocabulary instead.",
	RunE:  runMapSkills,
}

var (
	mapConfig           string
	mapVocabulary       string
	mapCatalog          string
	mapDatabaseURL      string
	mapEncoder          string
	mapOutput           string
	mapTopK             int
	mapMinSimilarity    float64
	mapUseLLM           bool
	mapFillDescriptions bool
)

func init() {
	mapSkillsCmd.Flags().StringVarP(&mapConfig, "config", "c", "", "Path to JSON config file")
	mapSkillsCmd.Flags().StringVar(&mapVocabulary, "vocabulary", "", "Path to skill vocabulary text file")
	mapSkillsCmd.Flags().StringVar(&mapCatalog, "catalog", "", "Path to course catalog JSON snapshot")
	mapSkillsCmd.Flags().StringVar(&mapDatabaseURL, "database-url", "", "Postgres catalog feed URL (alternative to --catalog)")
	mapSkillsCmd.Flags().StringVar(&mapEncoder, "encoder", "", "Encoder variant: tfidf or gemini")
	mapSkillsCmd.Flags().StringVarP(&mapOutput, "output", "o", "course_skill_mapping.json", "Path for the mapping artifact")
	mapSkillsCmd.Flags().IntVarP(&mapTopK, "top-k", "k", 10, "Skills to keep per course")
	mapSkillsCmd.Flags().Float64Var(&mapMinSimilarity, "min-similarity", 0, "Similarity floor in [-1, 1]; omitted uses the encoder default")
	mapSkillsCmd.Flags().BoolVar(&mapUseLLM, "use-llm", false, "Use a language model instead of similarity matching")
	mapSkillsCmd.Flags().BoolVar(&mapFillDescriptions, "fill-descriptions", false, "Generate missing course descriptions before mapping (requires an API key)")

	rootCmd.AddCommand(mapSkillsCmd)
}

func runMapSkills(cmd *cobra.Command, _ []string) error {
	flags := config.Config{
		Vocabulary:  mapVocabulary,
		Catalog:     mapCatalog,
		DatabaseURL: mapDatabaseURL,
		Encoder:     mapEncoder,
	}
	if cmd.Flags().Changed("top-k") {
		flags.TopK = mapTopK
	}

	cfg, err := resolveConfig(mapConfig, flags)
	if err != nil {
		return err
	}
	topK := cfg.TopK
	if topK == 0 {
		topK = mapTopK
	}

	// The flag cannot express "unset", so only an explicitly passed floor
	// overrides the encoder default.
	var minSimilarity *float64
	if cmd.Flags().Changed("min-similarity") {
		minSimilarity = &mapMinSimilarity
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var gen llm.TextGenerator
	if mapUseLLM || mapFillDescriptions {
		apiKey := resolveAPIKey(cfg)
		if apiKey == "" {
			return fmt.Errorf("--use-llm and --fill-descriptions require an API key (set GEMINI_API_KEY or api_key in the config)")
		}
		gen, err = llm.NewTextGenerator(ctx, llm.DefaultGeminiConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create text generator: %w", err)
		}
		defer gen.Close()
	}

	eng, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if mapFillDescriptions {
		courses := eng.Courses()
		filled, err := mapping.FillDescriptions(ctx, gen, courses)
		if err != nil {
			return fmt.Errorf("description synthesis failed: %w", err)
		}
		log.Printf("Filled %d missing course descriptions", filled)
		// Descriptions feed the encoded course text, so reload with the
		// enriched catalog before mapping.
		if filled > 0 {
			eng, cleanup, err = reloadWithCourses(ctx, cfg, courses)
			if err != nil {
				return err
			}
			defer cleanup()
		}
	}

	var mapped []types.MappedCourse
	if mapUseLLM {
		mapper, err := mapping.NewLLMMapper(gen, eng.Skills())
		if err != nil {
			return fmt.Errorf("failed to create mapper: %w", err)
		}
		mapped, err = mapper.MapCourses(ctx, eng.Courses())
		if err != nil {
			return fmt.Errorf("mapping failed: %w", err)
		}
	} else {
		mapped, err = mapping.MapCatalog(ctx, eng, mapping.Options{
			TopK:          topK,
			MinSimilarity: minSimilarity,
		})
		if err != nil {
			return fmt.Errorf("mapping failed: %w", err)
		}
	}

	if err := mapping.WriteArtifact(mapOutput, mapped); err != nil {
		return fmt.Errorf("failed to write mapping artifact: %w", err)
	}
	log.Printf("Wrote mapping for %d courses to %s", len(mapped), mapOutput)
	return nil
}
