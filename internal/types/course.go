// Package types provides type definitions for structured data used throughout the career-advisor system.
package types

import "strings"

// Default values applied to catalog records with missing optional fields.
const (
	DefaultCredits = 3
	DefaultLevel   = 1
)

// Course represents a single course record from a catalog snapshot.
// A catalog may contain multiple records sharing a code (different sections);
// each record is treated as an independent course.
type Course struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Department      string `json:"department,omitempty"`
	Description     string `json:"description,omitempty"`
	TaughtInEnglish bool   `json:"taught_in_english"`
	Credits         int    `json:"credits"`
	Level           int    `json:"level"`
}

// ApplyDefaults fills zero-valued optional fields with catalog defaults.
func (c *Course) ApplyDefaults() {
	if c.Credits == 0 {
		c.Credits = DefaultCredits
	}
	if c.Level == 0 {
		c.Level = DefaultLevel
	}
}

// SearchText returns the composite text used to embed the course into the
// corpus index. Field order is fixed so that repeated index builds tokenize
// identically.
func (c *Course) SearchText() string {
	parts := []string{c.Code, c.Name, c.Department, c.Description}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// CourseMatch is a course projection returned by a recommendation query,
// carrying the computed relevance score. The underlying catalog record is
// never mutated.
type CourseMatch struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	Description     string  `json:"description"`
	TaughtInEnglish bool    `json:"taught_in_english"`
	Credits         int     `json:"credits"`
	Level           int     `json:"level"`
	MatchScore      float64 `json:"match_score"`
}

// SkillMatch is a skill matched to a course text with its similarity score.
type SkillMatch struct {
	Skill      string  `json:"skill"`
	Similarity float64 `json:"similarity"`
}

// MappedCourse is one row of the batch mapping artifact: a course plus the
// skills mapped to it above the relevance threshold.
type MappedCourse struct {
	Course Course       `json:"course"`
	Skills []SkillMatch `json:"mapped_skills"`
}
