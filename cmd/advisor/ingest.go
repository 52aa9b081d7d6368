package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bkaraca/career-advisor/internal/catalog"
	"github.com/bkaraca/career-advisor/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build a course catalog snapshot from saved HTML pages",
	Long:  "Parses course tables out of saved catalog HTML pages in a directory and writes the merged result as a catalog JSON snapshot.",
	RunE:  runIngest,
}

var (
	ingestDir    string
	ingestOutput string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "", "Directory of saved catalog HTML pages (required)")
	ingestCmd.Flags().StringVarP(&ingestOutput, "output", "o", "courses.json", "Path for the catalog snapshot")

	if err := ingestCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	courses, err := ingest.IngestDir(ingestDir)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if len(courses) == 0 {
		return fmt.Errorf("no courses found under %s", ingestDir)
	}

	if err := catalog.Save(ingestOutput, courses); err != nil {
		return fmt.Errorf("failed to write catalog snapshot: %w", err)
	}
	log.Printf("Wrote %d courses to %s", len(courses), ingestOutput)
	return nil
}
