package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/bkaraca/career-advisor/internal/types"
)

// FallbackQuery is used for course retrieval when every model in the chain
// fails to synthesize a search query.
const FallbackQuery = "Technology, Computer Science, and Data Analysis algorithms"

// queryPrompt instructs the model to expand self-assessment answers into a
// dense search paragraph for vector similarity retrieval.
const queryPrompt = `You are an expert Academic Advisor and Curriculum Specialist. Analyze the student's self-assessment responses below to construct a HIGHLY DETAILED and COMPREHENSIVE search query.

Your goal is to generate a rich text description that will be used for vector similarity search against a university course database.

GUIDELINES:
1.  **Filter:** Strictly IGNORE topics marked "Disagree" or "Strongly Disagree". Base the query ONLY on "Agree" and "Strongly Agree".
2.  **Expand & Elaborate:** Do not just list the interests. You must EXPAND on them using related academic terms.
    * *Example:* If the user likes "coding", do not just write "coding". Instead, write: "software engineering principles, algorithmic problem solving, programming languages, and system architecture."
3.  **Structure:** Compose a dense, descriptive paragraph (approx. 60-100 words) starting with "I am looking for courses that involve...".
4.  **Keywords:** Aggressively include specific technical keywords, methodologies, theoretical concepts, and relevant soft skills (e.g., "critical thinking", "project management") implied by the user's answers.
5.  **Output:** Return ONLY the generated paragraph text. No markdown, no explanations.

USER RESPONSES:
%s`

// ScoreToText maps a Likert score to its answer label. Out-of-range scores
// read as neutral.
func ScoreToText(score int) string {
	switch score {
	case -2:
		return "Strongly Disagree"
	case -1:
		return "Disagree"
	case 1:
		return "Agree"
	case 2:
		return "Strongly Agree"
	default:
		return "Neutral"
	}
}

// FormatAnswers renders self-assessment answers into the prompt's expected
// text block.
func FormatAnswers(answers []types.Answer) string {
	var sb strings.Builder
	sb.WriteString("Student Self-Assessment:\n")
	for _, a := range answers {
		sb.WriteString(fmt.Sprintf("- Question: %s\n  Answer: %s\n", a.Question, ScoreToText(a.Score)))
	}
	return sb.String()
}

// SynthesizeSearchQuery turns self-assessment answers into a retrieval query
// through the generator's fallback chain. When the whole chain fails it
// returns FallbackQuery rather than an error, so a degraded model backend
// never blocks recommendations.
func SynthesizeSearchQuery(ctx context.Context, gen TextGenerator, answers []types.Answer) string {
	prompt := fmt.Sprintf(queryPrompt, FormatAnswers(answers))

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return FallbackQuery
	}

	// Strip quotes the model sometimes adds around the paragraph.
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, "'", "")
	if text == "" {
		return FallbackQuery
	}
	return text
}
