// Package catalog provides course catalog loading from snapshot files and
// from a Postgres feed, plus course-code level derivation.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bkaraca/career-advisor/internal/types"
)

// Source supplies an ordered collection of course records. The order is
// significant: the engine's course vectors are positionally aligned with it.
type Source interface {
	Courses(ctx context.Context) ([]types.Course, error)
}

// SnapshotSource loads courses from a JSON snapshot file.
type SnapshotSource struct {
	Path string
}

// NewSnapshotSource creates a SnapshotSource for the given file path.
func NewSnapshotSource(path string) *SnapshotSource {
	return &SnapshotSource{Path: path}
}

// Courses reads and parses the snapshot, applying defaults for missing
// optional fields. A missing file is fatal to engine startup.
func (s *SnapshotSource) Courses(_ context.Context) ([]types.Course, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("course catalog not found at %s: %w", s.Path, err)
	}

	var courses []types.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("failed to parse course catalog %s: %w", s.Path, err)
	}

	for i := range courses {
		courses[i].ApplyDefaults()
	}
	return courses, nil
}

// Save writes a catalog snapshot as indented JSON, creating the output
// directory if needed. Used to export refreshed snapshots (for example after
// HTML ingestion or a Postgres pull).
func Save(path string, courses []types.Course) error {
	data, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal course catalog: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write course catalog %s: %w", path, err)
	}
	return nil
}
