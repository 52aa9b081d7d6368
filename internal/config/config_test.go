package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{
		"encoder": "tfidf",
		"min_similarity": 0.1,
		"top_k": 5,
		"port": 9090
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tfidf", cfg.Encoder)
	require.NotNil(t, cfg.MinSimilarity)
	assert.Equal(t, 0.1, *cfg.MinSimilarity)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", `{not json`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_CatalogAndDatabaseURLExclusive(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "courses.json", `[]`)

	cfg := Config{Catalog: catalogPath, DatabaseURL: "postgres://localhost/advisor"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_UnknownEncoder(t *testing.T) {
	cfg := Config{Encoder: "sbert"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_MinSimilarityRange(t *testing.T) {
	bad := 1.5
	cfg := Config{MinSimilarity: &bad}
	assert.Error(t, cfg.Validate())

	ok := -1.0
	cfg = Config{MinSimilarity: &ok}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingVocabularyFile(t *testing.T) {
	cfg := Config{Vocabulary: filepath.Join(t.TempDir(), "nope.txt")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vocabulary file not found")
}

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	cfg := Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults_FlagsWin(t *testing.T) {
	flagSim := 0.3
	fileSim := 0.1
	flags := Config{Encoder: "gemini", MinSimilarity: &flagSim}
	file := Config{Encoder: "tfidf", MinSimilarity: &fileSim, TopK: 7, Port: 9090}

	merged := flags.MergeWithDefaults(file)
	assert.Equal(t, "gemini", merged.Encoder, "Flag values take precedence")
	assert.Equal(t, 0.3, *merged.MinSimilarity)
	assert.Equal(t, 7, merged.TopK, "File values fill unset flags")
	assert.Equal(t, 9090, merged.Port)
}
