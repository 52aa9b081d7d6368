package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/bkaraca/career-advisor/internal/llm"
	"github.com/bkaraca/career-advisor/internal/types"
)

// matchedSkillsSchema validates the shape of the model's mapping reply
// before any field is trusted.
const matchedSkillsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["matched_skills"],
  "properties": {
    "matched_skills": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    }
  }
}`

// llmMapPrompt asks for skills drawn exclusively from the master list.
const llmMapPrompt = `You are an expert academic advisor. For the given course title, identify the 5 to 7 most relevant skills.
You MUST choose these skills exclusively from the following master list:

--- MASTER SKILLS LIST ---
%s
--- END OF LIST ---

Provide the output as a single, clean JSON object with one key "matched_skills".
Example: {"matched_skills": ["Skill from list", "Another skill from list"]}

Analyze this course: '%s'`

// matchedSkillsReply is the parsed model response.
type matchedSkillsReply struct {
	MatchedSkills []string `json:"matched_skills"`
}

// LLMMapper maps courses to skills by asking a text-generation model to pick
// from the master vocabulary, instead of vector similarity. Replies are
// schema-validated and filtered to skills actually present in the
// vocabulary.
type LLMMapper struct {
	gen    llm.TextGenerator
	skills []string
	schema *gojsonschema.Schema
}

// NewLLMMapper creates a mapper over the given generator and skill
// vocabulary.
func NewLLMMapper(gen llm.TextGenerator, skills []string) (*LLMMapper, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(matchedSkillsSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile matched_skills schema: %w", err)
	}
	return &LLMMapper{gen: gen, skills: skills, schema: schema}, nil
}

// MapCourse asks the model for the skills matching one course title and
// returns the validated, vocabulary-filtered list. Model or validation
// failures return an error; the caller decides whether to record the course
// with an empty list.
func (m *LLMMapper) MapCourse(ctx context.Context, courseTitle string) ([]string, error) {
	prompt := fmt.Sprintf(llmMapPrompt, strings.Join(m.skills, ", "), courseTitle)

	reply, err := m.gen.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model mapping failed for %q: %w", courseTitle, err)
	}

	result, err := m.schema.Validate(gojsonschema.NewStringLoader(reply))
	if err != nil {
		return nil, fmt.Errorf("invalid mapping reply for %q: %w", courseTitle, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("mapping reply for %q failed schema validation: %s", courseTitle, strings.Join(msgs, "; "))
	}

	var parsed matchedSkillsReply
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse mapping reply for %q: %w", courseTitle, err)
	}

	return m.filterToVocabulary(parsed.MatchedSkills), nil
}

// MapCourses maps each course title in order. A failed course is recorded
// with an empty skill list so one bad reply does not abort a long batch.
func (m *LLMMapper) MapCourses(ctx context.Context, courses []types.Course) ([]types.MappedCourse, error) {
	mapped := make([]types.MappedCourse, 0, len(courses))
	for _, course := range courses {
		if ctx.Err() != nil {
			return mapped, ctx.Err()
		}

		skills, err := m.MapCourse(ctx, course.Name)
		if err != nil {
			log.Printf("Skipping skills for course %s: %v", course.Code, err)
			mapped = append(mapped, types.MappedCourse{Course: course, Skills: nil})
			continue
		}

		matches := make([]types.SkillMatch, 0, len(skills))
		for _, s := range skills {
			// The model picks from the list without scoring; record full
			// confidence for chosen skills.
			matches = append(matches, types.SkillMatch{Skill: s, Similarity: 1})
		}
		mapped = append(mapped, types.MappedCourse{Course: course, Skills: matches})
	}
	return mapped, nil
}

// filterToVocabulary drops any skill the model invented outside the master
// list, preserving reply order.
func (m *LLMMapper) filterToVocabulary(skills []string) []string {
	known := make(map[string]bool, len(m.skills))
	for _, s := range m.skills {
		known[s] = true
	}

	filtered := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if known[s] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
