package types

import "github.com/go-playground/validator/v10"

// RecommendRequest is the body of POST /recommendations.
type RecommendRequest struct {
	Goal string `json:"goal" validate:"required"`
	TopK int    `json:"top_k,omitempty" validate:"gte=0"`
}

// Answer is a single self-assessment response: a question with a Likert
// score from -2 (strongly disagree) to 2 (strongly agree).
type Answer struct {
	Question string `json:"question" validate:"required"`
	Score    int    `json:"score" validate:"gte=-2,lte=2"`
}

// AnalyzeRequest is the body of POST /analyze-career.
type AnalyzeRequest struct {
	Answers []Answer `json:"answers" validate:"required,min=1,dive"`
}

// MapRequest is the body of POST /map: match a course title/description
// against the skill vocabulary. An absent min_similarity uses the engine
// threshold; an explicit value, zero or negative included, is the exact
// floor.
type MapRequest struct {
	CourseText    string   `json:"course_text" validate:"required"`
	TopK          int      `json:"top_k,omitempty" validate:"gte=0"`
	MinSimilarity *float64 `json:"min_similarity,omitempty" validate:"omitempty,gte=-1,lte=1"`
}

// MapBatchRequest is the body of POST /map-batch.
type MapBatchRequest struct {
	CourseTexts   []string `json:"course_texts" validate:"required,min=1,dive,required"`
	TopK          int      `json:"top_k,omitempty" validate:"gte=0"`
	MinSimilarity *float64 `json:"min_similarity,omitempty" validate:"omitempty,gte=-1,lte=1"`
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MapRequest using the validator.
func (r *MapRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MapBatchRequest using the validator.
func (r *MapBatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
