package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkaraca/career-advisor/internal/encoding"
	"github.com/bkaraca/career-advisor/internal/engine"
	"github.com/bkaraca/career-advisor/internal/types"
)

// stubGenerator satisfies llm.TextGenerator for analyze-career tests.
type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func (s *stubGenerator) GenerateJSON(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func (s *stubGenerator) Close() error { return nil }

func loadedEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New(encoding.NewTFIDFEncoder(0), engine.Options{})
	skills := []string{"Python", "SQL", "Docker"}
	courses := []types.Course{
		{Code: "CS101", Name: "Intro to Databases", Description: "SQL queries and schema design", Credits: 3, Level: 1},
		{Code: "CS305", Name: "Computer Networks", Description: "routing protocols", Credits: 3, Level: 3},
	}
	require.NoError(t, eng.Load(context.Background(), skills, courses))
	return eng
}

func newTestServer(t *testing.T, eng *engine.Engine, gen *stubGenerator) *Server {
	t.Helper()
	cfg := Config{Port: 0, Engine: eng}
	if gen != nil {
		cfg.Generator = gen
	}
	srv, err := New(cfg)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := New(Config{Port: 8080})
	assert.Error(t, err)
}

func TestHealth_ReportsEngineState(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ready", body["engine_state"])
	assert.Equal(t, true, body["engine_ready"])
}

func TestHealth_UnloadedEngine(t *testing.T) {
	eng := engine.New(encoding.NewTFIDFEncoder(0), engine.Options{})
	srv := newTestServer(t, eng, nil)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code, "Health stays 200 so orchestrators can read the state")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unloaded", body["engine_state"])
	assert.Equal(t, false, body["engine_ready"])
}

func TestRecommend_ReturnsCourses(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodPost, "/recommendations", types.RecommendRequest{
		Goal: "database developer working with SQL schema design",
		TopK: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Courses)
	assert.Equal(t, "CS101", body.Courses[0].Code)
}

func TestRecommend_MissingGoal(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodPost, "/recommendations", map[string]any{"top_k": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommend_InvalidBody(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/recommendations", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommend_EngineNotReady(t *testing.T) {
	eng := engine.New(encoding.NewTFIDFEncoder(0), engine.Options{})
	srv := newTestServer(t, eng, nil)

	rec := doJSON(t, srv, http.MethodPost, "/recommendations", types.RecommendRequest{Goal: "devops"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnalyzeCareer_WithoutGenerator(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodPost, "/analyze-career", types.AnalyzeRequest{
		Answers: []types.Answer{{Question: "I enjoy databases", Score: 2}},
	})
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestAnalyzeCareer_ReturnsLevelSortedCourses(t *testing.T) {
	gen := &stubGenerator{text: "I am looking for courses that involve SQL schema design and routing protocols and network programming."}
	srv := newTestServer(t, loadedEngine(t), gen)

	rec := doJSON(t, srv, http.MethodPost, "/analyze-career", types.AnalyzeRequest{
		Answers: []types.Answer{{Question: "I enjoy technical work", Score: 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.NotEmpty(t, body.AISummary)
	for i := 1; i < len(body.Courses); i++ {
		assert.LessOrEqual(t, body.Courses[i-1].Level, body.Courses[i].Level, "Analysis results are sorted by ascending level")
	}
}

func TestAnalyzeCareer_GeneratorFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: assert.AnError}
	srv := newTestServer(t, loadedEngine(t), gen)

	rec := doJSON(t, srv, http.MethodPost, "/analyze-career", types.AnalyzeRequest{
		Answers: []types.Answer{{Question: "I enjoy technical work", Score: 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code, "A degraded model backend must not fail the request")

	var body AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.AISummary, "Technology", "Fallback query is used when synthesis fails")
}

func TestAnalyzeCareer_EmptyAnswers(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), &stubGenerator{text: "x"})

	rec := doJSON(t, srv, http.MethodPost, "/analyze-career", types.AnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMap_ReturnsMatchedSkills(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodPost, "/map", types.MapRequest{
		CourseText: "Intro to Databases teaches SQL queries and schema design",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body MapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.MatchedSkills)
	assert.Equal(t, "SQL", body.MatchedSkills[0].Skill)
	assert.Equal(t, len(body.MatchedSkills), body.TotalMatches)
}

func TestMap_MissingCourseText(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodPost, "/map", map[string]any{"top_k": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMapBatch_ReturnsPerCourseResults(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodPost, "/map-batch", types.MapBatchRequest{
		CourseTexts: []string{"SQL schema design", "routing protocols"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body MapBatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalCourses)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "SQL schema design", body.Results[0].CourseText)
}

func TestListSkills_SearchAndLimit(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodGet, "/skills?search=sql", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalSkills int      `json:"total_skills"`
		Skills      []string `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalSkills)
	assert.Equal(t, []string{"SQL"}, body.Skills)
}

func TestListSkills_HugeLimitIsClamped(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodGet, "/skills?limit=1000000000000", nil)
	require.Equal(t, http.StatusOK, rec.Code, "An absurd limit must not take the process down")

	var body struct {
		TotalSkills int      `json:"total_skills"`
		Skills      []string `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Skills, 3, "Clamped limit still returns the full vocabulary")
}

func TestMap_ExplicitZeroFloorKeepsZeroScores(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	floor := 0.0
	rec := doJSON(t, srv, http.MethodPost, "/map", types.MapRequest{
		CourseText:    "Intro to Databases teaches SQL queries and schema design",
		MinSimilarity: &floor,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body MapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.MatchedSkills, 3, "A zero floor admits every skill, not just those above the engine threshold")
}

func TestListCourses_Limit(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodGet, "/courses?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalCourses int            `json:"total_courses"`
		Courses      []types.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalCourses)
	assert.Len(t, body.Courses, 1)
}

func TestCORS_PreflightAllowed(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	req := httptest.NewRequest(http.MethodOptions, "/recommendations", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestResponses_CarryRequestID(t *testing.T) {
	srv := newTestServer(t, loadedEngine(t), nil)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
