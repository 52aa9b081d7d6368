package mapping

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bkaraca/career-advisor/internal/llm"
	"github.com/bkaraca/career-advisor/internal/types"
)

// describePrompt asks the model for a short factual course description used
// as embedding text.
const describePrompt = `You are a university curriculum writer. Write a concise 2-3 sentence description of the course below for a course catalog. Focus on the concrete topics, methods, and skills the course covers. Return ONLY the description text, no markdown, no preamble.

Course code: %s
Course title: %s
Department: %s`

// FillDescriptions synthesizes a description for every course that lacks
// one, returning the number filled. Courses are modified in place; failures
// leave the description empty and the batch continues.
func FillDescriptions(ctx context.Context, gen llm.TextGenerator, courses []types.Course) (int, error) {
	filled := 0
	for i := range courses {
		if ctx.Err() != nil {
			return filled, ctx.Err()
		}
		if strings.TrimSpace(courses[i].Description) != "" {
			continue
		}

		prompt := fmt.Sprintf(describePrompt, courses[i].Code, courses[i].Name, courses[i].Department)
		text, err := gen.Generate(ctx, prompt)
		if err != nil {
			log.Printf("Description synthesis failed for %s: %v", courses[i].Code, err)
			continue
		}

		courses[i].Description = strings.TrimSpace(text)
		filled++
	}
	return filled, nil
}
