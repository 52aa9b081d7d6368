package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/bkaraca/career-advisor/internal/engine"
	"github.com/bkaraca/career-advisor/internal/llm"
	"github.com/bkaraca/career-advisor/internal/types"
)

// RecommendResponse is the body returned by POST /recommendations.
type RecommendResponse struct {
	Goal    string              `json:"goal"`
	Courses []types.CourseMatch `json:"courses"`
}

// AnalyzeResponse is the body returned by POST /analyze-career.
type AnalyzeResponse struct {
	Status    string              `json:"status"`
	AISummary string              `json:"ai_summary"`
	Courses   []types.CourseMatch `json:"courses"`
}

// MapResponse is the body returned by POST /map.
type MapResponse struct {
	CourseText    string             `json:"course_text"`
	MatchedSkills []types.SkillMatch `json:"matched_skills"`
	TotalMatches  int                `json:"total_matches"`
}

// MapBatchResponse is the body returned by POST /map-batch.
type MapBatchResponse struct {
	TotalCourses int           `json:"total_courses"`
	Results      []MapResponse `json:"results"`
}

// handleRecommend recommends courses for a free-text career goal.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	courses, err := s.engine.RecommendCoursesForGoal(r.Context(), req.Goal, req.TopK)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, RecommendResponse{Goal: req.Goal, Courses: courses})
}

// handleAnalyzeCareer synthesizes a search query from self-assessment
// answers, retrieves matching courses and re-sorts them by academic level
// for pedagogical progression.
func (s *Server) handleAnalyzeCareer(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.errorResponse(w, http.StatusNotImplemented, "Career analysis requires a configured model API key")
		return
	}

	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if !s.engine.Ready() {
		s.errorResponse(w, http.StatusServiceUnavailable, engine.ErrNotReady.Error())
		return
	}

	query := llm.SynthesizeSearchQuery(r.Context(), s.generator, req.Answers)

	courses, err := s.engine.RecommendCoursesForGoal(r.Context(), query, 6)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	engine.SortByLevel(courses)

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Status:    "success",
		AISummary: query,
		Courses:   courses,
	})
}

// handleMap matches one course text against the skill vocabulary.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var req types.MapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	skills, err := s.engine.RecommendSkillsForCourse(r.Context(), req.CourseText, req.TopK, req.MinSimilarity)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, MapResponse{
		CourseText:    req.CourseText,
		MatchedSkills: skills,
		TotalMatches:  len(skills),
	})
}

// handleMapBatch matches several course texts in one request.
func (s *Server) handleMapBatch(w http.ResponseWriter, r *http.Request) {
	var req types.MapBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	results := make([]MapResponse, 0, len(req.CourseTexts))
	for _, text := range req.CourseTexts {
		skills, err := s.engine.RecommendSkillsForCourse(r.Context(), text, req.TopK, req.MinSimilarity)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		results = append(results, MapResponse{
			CourseText:    text,
			MatchedSkills: skills,
			TotalMatches:  len(skills),
		})
	}

	s.jsonResponse(w, http.StatusOK, MapBatchResponse{
		TotalCourses: len(results),
		Results:      results,
	})
}

// handleListSkills lists the loaded skill vocabulary with optional substring
// search and limit.
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	if !s.engine.Ready() {
		s.errorResponse(w, http.StatusServiceUnavailable, engine.ErrNotReady.Error())
		return
	}

	skills := s.engine.Skills()
	limit := queryLimit(r, 10)
	search := strings.ToLower(r.URL.Query().Get("search"))

	listed := make([]string, 0, limit)
	for _, skill := range skills {
		if search != "" && !strings.Contains(strings.ToLower(skill), search) {
			continue
		}
		listed = append(listed, skill)
		if len(listed) >= limit {
			break
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"total_skills": len(skills),
		"skills":       listed,
	})
}

// handleListCourses lists the loaded catalog with optional substring search
// on code and name.
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	if !s.engine.Ready() {
		s.errorResponse(w, http.StatusServiceUnavailable, engine.ErrNotReady.Error())
		return
	}

	courses := s.engine.Courses()
	limit := queryLimit(r, 10)
	search := strings.ToLower(r.URL.Query().Get("search"))

	listed := make([]types.Course, 0, limit)
	for _, course := range courses {
		if search != "" &&
			!strings.Contains(strings.ToLower(course.Name), search) &&
			!strings.Contains(strings.ToLower(course.Code), search) {
			continue
		}
		listed = append(listed, course)
		if len(listed) >= limit {
			break
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"total_courses": len(courses),
		"courses":       listed,
	})
}

// maxListLimit caps the limit query parameter. The parsed value sizes a
// result allocation, so it must never be trusted unbounded.
const maxListLimit = 1000

// queryLimit parses the limit query parameter with a default, clamped to
// maxListLimit.
func queryLimit(r *http.Request, def int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			return min(limit, maxListLimit)
		}
	}
	return def
}
