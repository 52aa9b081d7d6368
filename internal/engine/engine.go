// Package engine implements the recommendation core: it owns the corpus
// index of skill and course vectors and answers the two query shapes —
// courses for a career goal, skills for a course text.
package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bkaraca/career-advisor/internal/catalog"
	"github.com/bkaraca/career-advisor/internal/encoding"
	"github.com/bkaraca/career-advisor/internal/similarity"
	"github.com/bkaraca/career-advisor/internal/types"
	"github.com/bkaraca/career-advisor/internal/vocab"
)

// State is the engine lifecycle state.
type State int

// Engine lifecycle states. Recommendation operations are served only in
// StateReady; a failed load leaves the engine in StateUnloaded.
const (
	StateUnloaded State = iota
	StateLoading
	StateReady
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unloaded"
	}
}

// candidateWindow caps the widened retrieval window for goal queries. The
// window is larger than the final top-k so that re-sorting by academic level
// does not starve any one level tier.
const candidateWindow = 50

// Options configures engine behavior. Zero values fall back to the encoder's
// defaults.
type Options struct {
	// MinSimilarity is the relevance threshold applied to goal queries and
	// to skill queries that do not carry their own floor. Nil means use the
	// encoder's DefaultThreshold.
	MinSimilarity *float64
	// DefaultTopK bounds result lists when a request does not specify top_k.
	DefaultTopK int
}

// Engine holds the corpus index and serves similarity queries. After Load
// succeeds the skill list, course list and both vector matrices are treated
// as immutable; concurrent requests share them read-only.
type Engine struct {
	encoder encoding.Encoder
	opts    Options

	mu         sync.RWMutex
	state      State
	skills     []string
	courses    []types.Course
	skillVecs  [][]float64
	courseVecs [][]float64
}

// New creates an engine in the unloaded state.
func New(encoder encoding.Encoder, opts Options) *Engine {
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = 10
	}
	return &Engine{encoder: encoder, opts: opts}
}

// State reports the current lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Ready reports whether recommendation operations can be served.
func (e *Engine) Ready() bool {
	return e.State() == StateReady
}

// Threshold returns the active minimum-similarity cutoff.
func (e *Engine) Threshold() float64 {
	if e.opts.MinSimilarity != nil {
		return *e.opts.MinSimilarity
	}
	return e.encoder.DefaultThreshold()
}

// Skills returns a copy of the loaded skill vocabulary in index order.
func (e *Engine) Skills() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.skills))
	copy(out, e.skills)
	return out
}

// Courses returns a copy of the loaded course catalog in index order. The
// loaded records stay aligned with their vectors; callers mutate the copy,
// never the index.
func (e *Engine) Courses() []types.Course {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]types.Course, len(e.courses))
	copy(out, e.courses)
	return out
}

// Load builds the corpus index: it fits the encoder on the combined corpus,
// then encodes the skill vocabulary and the course composite texts into two
// positionally aligned matrices. Load must complete before any request is
// accepted; on failure the engine returns to the unloaded state and the
// error is fatal to startup.
func (e *Engine) Load(ctx context.Context, skills []string, courses []types.Course) error {
	e.mu.Lock()
	if e.state == StateLoading {
		e.mu.Unlock()
		return fmt.Errorf("engine load already in progress")
	}
	e.state = StateLoading
	e.mu.Unlock()

	fail := func(err error) error {
		e.mu.Lock()
		e.state = StateUnloaded
		e.mu.Unlock()
		return err
	}

	if len(skills) == 0 {
		return fail(fmt.Errorf("skill vocabulary is empty"))
	}
	if len(courses) == 0 {
		return fail(fmt.Errorf("course catalog is empty"))
	}

	courseTexts := make([]string, len(courses))
	for i := range courses {
		courseTexts[i] = courses[i].SearchText()
	}

	// Fit on skills and courses together so both vocabularies share one
	// term space.
	corpus := make([]string, 0, len(skills)+len(courseTexts))
	corpus = append(corpus, skills...)
	corpus = append(corpus, courseTexts...)
	if err := e.encoder.Fit(ctx, corpus); err != nil {
		return fail(fmt.Errorf("failed to fit encoder: %w", err))
	}

	log.Printf("Encoding %d skills and %d courses with %s encoder", len(skills), len(courses), e.encoder.Name())

	var skillVecs, courseVecs [][]float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vecs, err := e.encoder.EncodeBatch(gctx, skills)
		if err != nil {
			return fmt.Errorf("failed to encode skill vocabulary: %w", err)
		}
		skillVecs = vecs
		return nil
	})
	g.Go(func() error {
		vecs, err := e.encoder.EncodeBatch(gctx, courseTexts)
		if err != nil {
			return fmt.Errorf("failed to encode course catalog: %w", err)
		}
		courseVecs = vecs
		return nil
	})
	if err := g.Wait(); err != nil {
		return fail(err)
	}

	e.mu.Lock()
	e.skills = skills
	e.courses = courses
	e.skillVecs = skillVecs
	e.courseVecs = courseVecs
	e.state = StateReady
	e.mu.Unlock()

	log.Printf("Engine ready: %d skill vectors, %d course vectors", len(skillVecs), len(courseVecs))
	return nil
}

// LoadFromSources loads the vocabulary and catalog through their loaders and
// builds the index. Loader failures (missing files, unreachable feed) abort
// startup before any encoding work.
func (e *Engine) LoadFromSources(ctx context.Context, vocabPath string, source catalog.Source) error {
	skills, err := vocab.Load(vocabPath)
	if err != nil {
		return err
	}

	courses, err := source.Courses(ctx)
	if err != nil {
		return err
	}

	return e.Load(ctx, skills, courses)
}

// RecommendCoursesForGoal returns the courses most relevant to a free-text
// career goal, scored by cosine similarity and truncated to topK. Each match
// carries a level derived from its course code and a score rounded to two
// decimals. Results keep relevance order; callers wanting pedagogical
// ordering apply SortByLevel as a second pass.
func (e *Engine) RecommendCoursesForGoal(ctx context.Context, goal string, topK int) ([]types.CourseMatch, error) {
	if strings.TrimSpace(goal) == "" {
		return nil, ErrEmptyQuery
	}

	e.mu.RLock()
	if e.state != StateReady {
		e.mu.RUnlock()
		return nil, ErrNotReady
	}
	courses := e.courses
	courseVecs := e.courseVecs
	e.mu.RUnlock()

	if topK <= 0 {
		topK = e.opts.DefaultTopK
	}

	queryVec, err := e.encoder.Encode(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to encode goal text: %w", err)
	}

	// Retrieve a window wider than topK so the level re-sort has material
	// from every tier.
	window := candidateWindow
	if len(courses) < window {
		window = len(courses)
	}
	if window < topK {
		window = topK
	}

	matches := similarity.TopK(queryVec, courseVecs, window, e.Threshold())
	if len(matches) > topK {
		matches = matches[:topK]
	}

	results := make([]types.CourseMatch, 0, len(matches))
	for _, m := range matches {
		c := courses[m.Index]
		results = append(results, types.CourseMatch{
			Code:            c.Code,
			Name:            c.Name,
			Department:      c.Department,
			Description:     c.Description,
			TaughtInEnglish: c.TaughtInEnglish,
			Credits:         c.Credits,
			Level:           catalog.LevelFromCode(c.Code, c.Level),
			MatchScore:      similarity.RoundScore(m.Score),
		})
	}
	return results, nil
}

// RecommendSkillsForCourse returns the vocabulary skills most similar to a
// course title/description, sorted by score descending and filtered by
// minSimilarity. A nil minSimilarity selects the engine threshold; an
// explicit value is honored as-is, zero and negative floors included, since
// dense embedding scores can be negative.
func (e *Engine) RecommendSkillsForCourse(ctx context.Context, courseText string, topK int, minSimilarity *float64) ([]types.SkillMatch, error) {
	if strings.TrimSpace(courseText) == "" {
		return nil, ErrEmptyQuery
	}

	e.mu.RLock()
	if e.state != StateReady {
		e.mu.RUnlock()
		return nil, ErrNotReady
	}
	skills := e.skills
	skillVecs := e.skillVecs
	e.mu.RUnlock()

	if topK <= 0 {
		topK = e.opts.DefaultTopK
	}
	floor := e.Threshold()
	if minSimilarity != nil {
		floor = *minSimilarity
	}

	queryVec, err := e.encoder.Encode(ctx, courseText)
	if err != nil {
		return nil, fmt.Errorf("failed to encode course text: %w", err)
	}

	matches := similarity.TopK(queryVec, skillVecs, topK, floor)

	results := make([]types.SkillMatch, 0, len(matches))
	for _, m := range matches {
		results = append(results, types.SkillMatch{
			Skill:      skills[m.Index],
			Similarity: similarity.RoundScore(m.Score),
		})
	}
	return results, nil
}

// SortByLevel re-sorts matches by ascending course level. The sort is stable:
// within a level, relevance order is preserved. This is presentation policy
// layered on top of the relevance ranking, not part of it.
func SortByLevel(matches []types.CourseMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Level < matches[j].Level
	})
}
