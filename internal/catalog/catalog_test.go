package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkaraca/career-advisor/internal/types"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSnapshotSource_LoadsCourses(t *testing.T) {
	path := writeSnapshot(t, `[
		{"code": "CS101", "name": "Intro to Programming", "department": "Computer Science", "credits": 4, "level": 1},
		{"code": "EL314", "name": "Signals", "department": "Electronics", "level": 3}
	]`)

	courses, err := NewSnapshotSource(path).Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CS101", courses[0].Code)
	assert.Equal(t, 4, courses[0].Credits)
	assert.Equal(t, 3, courses[1].Level)
}

func TestSnapshotSource_AppliesDefaults(t *testing.T) {
	path := writeSnapshot(t, `[{"code": "CS101", "name": "Intro"}]`)

	courses, err := NewSnapshotSource(path).Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, types.DefaultCredits, courses[0].Credits, "Missing credits get the default")
	assert.Equal(t, types.DefaultLevel, courses[0].Level, "Missing level gets the default")
}

func TestSnapshotSource_MissingFile(t *testing.T) {
	_, err := NewSnapshotSource(filepath.Join(t.TempDir(), "nope.json")).Courses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "course catalog not found")
}

func TestSnapshotSource_MalformedJSON(t *testing.T) {
	path := writeSnapshot(t, `{"not": "an array"}`)
	_, err := NewSnapshotSource(path).Courses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse course catalog")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "courses.json")
	courses := []types.Course{
		{Code: "CS101", Name: "Intro", Department: "CS", Credits: 3, Level: 1},
	}

	require.NoError(t, Save(path, courses))

	loaded, err := NewSnapshotSource(path).Courses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, courses, loaded)
}
