package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bkaraca/career-advisor/internal/config"
	"github.com/bkaraca/career-advisor/internal/llm"
	"github.com/bkaraca/career-advisor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes recommendation and course-skill mapping endpoints.`,
	RunE:  runServe,
}

var (
	serveConfig      string
	servePort        int
	serveVocabulary  string
	serveCatalog     string
	serveDatabaseURL string
	serveEncoder     string
)

// defaultServePort is used when neither the --port flag nor the config file
// sets one.
const defaultServePort = 8080

func init() {
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().IntVar(&servePort, "port", defaultServePort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveVocabulary, "vocabulary", "", "Path to skill vocabulary text file")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Path to course catalog JSON snapshot")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "database-url", "", "Postgres catalog feed URL (alternative to --catalog)")
	serveCmd.Flags().StringVar(&serveEncoder, "encoder", "", "Encoder variant: tfidf or gemini")
	rootCmd.AddCommand(serveCmd)
}

// serveFlagOverrides collects flag values into the flags-win side of the
// config merge. Flags left at their defaults stay zero so the config file
// can fill them; only flags the user actually set override it.
func serveFlagOverrides(cmd *cobra.Command) config.Config {
	flags := config.Config{
		Vocabulary:  serveVocabulary,
		Catalog:     serveCatalog,
		DatabaseURL: serveDatabaseURL,
		Encoder:     serveEncoder,
	}
	if cmd.Flags().Changed("port") {
		flags.Port = servePort
	}
	return flags
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfig, serveFlagOverrides(cmd))
	if err != nil {
		return err
	}
	if cfg.Port == 0 {
		cfg.Port = defaultServePort
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

	// Career analysis needs the text-generation backend; without a key the
	// endpoint reports itself unavailable instead of blocking startup.
	var generator llm.TextGenerator
	if apiKey := resolveAPIKey(cfg); apiKey != "" {
		generator, err = llm.NewTextGenerator(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create text generator: %w", err)
		}
	} else {
		log.Println("No API key configured; /analyze-career is disabled")
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Engine:    eng,
		Generator: generator,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
