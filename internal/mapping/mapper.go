// Package mapping produces the enriched course→skill artifact: every course
// in the catalog mapped to its most relevant vocabulary skills.
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bkaraca/career-advisor/internal/engine"
	"github.com/bkaraca/career-advisor/internal/types"
)

// Options bounds a batch mapping run.
type Options struct {
	// TopK is the maximum skills mapped per course.
	TopK int
	// MinSimilarity is the relevance cutoff; nil selects the engine
	// threshold.
	MinSimilarity *float64
}

// DefaultOptions mirrors the mapping defaults used for the published
// artifact: up to ten skills per course, at the engine threshold.
func DefaultOptions() Options {
	return Options{TopK: 10}
}

// MapCatalog matches every loaded course against the skill vocabulary and
// returns one MappedCourse per catalog record, in catalog order. Courses
// whose composite text matches nothing above the cutoff get an empty skill
// list rather than being dropped.
func MapCatalog(ctx context.Context, eng *engine.Engine, opts Options) ([]types.MappedCourse, error) {
	courses := eng.Courses()
	mapped := make([]types.MappedCourse, 0, len(courses))

	for i, course := range courses {
		skills, err := eng.RecommendSkillsForCourse(ctx, course.SearchText(), opts.TopK, opts.MinSimilarity)
		if err != nil {
			return nil, fmt.Errorf("failed to map course %s: %w", course.Code, err)
		}
		mapped = append(mapped, types.MappedCourse{Course: course, Skills: skills})

		if (i+1)%100 == 0 {
			log.Printf("Mapped %d/%d courses", i+1, len(courses))
		}
	}
	return mapped, nil
}

// WriteArtifact writes the mapping result as indented JSON, creating the
// output directory if needed.
func WriteArtifact(path string, mapped []types.MappedCourse) error {
	data, err := json.MarshalIndent(mapped, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mapping artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping artifact %s: %w", path, err)
	}
	return nil
}
