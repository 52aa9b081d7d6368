package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkaraca/career-advisor/internal/config"
	"github.com/bkaraca/career-advisor/internal/engine"
	"github.com/bkaraca/career-advisor/internal/observability"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend courses for a career goal",
	Long:  "Encodes a free-text career goal and prints the most relevant courses from the catalog, optionally re-sorted by academic level.",
	RunE:  runRecommend,
}

var (
	recommendConfig      string
	recommendVocabulary  string
	recommendCatalog     string
	recommendDatabaseURL string
	recommendEncoder     string
	recommendGoal        string
	recommendTopK        int
	recommendByLevel     bool
	recommendJSON        bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendConfig, "config", "c", "", "Path to JSON config file")
	recommendCmd.Flags().StringVar(&recommendVocabulary, "vocabulary", "", "Path to skill vocabulary text file")
	recommendCmd.Flags().StringVar(&recommendCatalog, "catalog", "", "Path to course catalog JSON snapshot")
	recommendCmd.Flags().StringVar(&recommendDatabaseURL, "database-url", "", "Postgres catalog feed URL (alternative to --catalog)")
	recommendCmd.Flags().StringVar(&recommendEncoder, "encoder", "", "Encoder variant: tfidf or gemini")
	recommendCmd.Flags().StringVarP(&recommendGoal, "goal", "g", "", "Career goal text (required)")
	recommendCmd.Flags().IntVarP(&recommendTopK, "top-k", "k", 10, "Number of courses to return")
	recommendCmd.Flags().BoolVar(&recommendByLevel, "by-level", false, "Re-sort results by ascending course level")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print results as JSON")

	if err := recommendCmd.MarkFlagRequired("goal"); err != nil {
		panic(fmt.Sprintf("failed to mark goal flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	flags := config.Config{
		Vocabulary:  recommendVocabulary,
		Catalog:     recommendCatalog,
		DatabaseURL: recommendDatabaseURL,
		Encoder:     recommendEncoder,
	}
	// Only a --top-k the user actually set may override the config file.
	if cmd.Flags().Changed("top-k") {
		flags.TopK = recommendTopK
	}

	cfg, err := resolveConfig(recommendConfig, flags)
	if err != nil {
		return err
	}
	topK := cfg.TopK
	if topK == 0 {
		topK = recommendTopK
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eng, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	courses, err := eng.RecommendCoursesForGoal(ctx, recommendGoal, topK)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}
	if recommendByLevel {
		engine.SortByLevel(courses)
	}

	if recommendJSON {
		out, err := json.MarshalIndent(courses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintCourseMatches(courses)
	return nil
}
