package llm

import "strings"

// CleanJSONBlock strips the markdown code fence a model sometimes wraps
// around a JSON reply despite the prompt asking for bare JSON. The skill
// mapper feeds its replies through here before schema validation, so a
// fenced `{"matched_skills": [...]}` parses the same as a bare one.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	body, fenced := strings.CutPrefix(text, "```")
	if !fenced {
		return text
	}

	// The fence line may carry a language tag ("json"); drop it, but keep
	// payload that starts right on the fence line.
	if nl := strings.Index(body, "\n"); nl >= 0 {
		tag := body[:nl]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {") {
			body = body[nl+1:]
		}
	}

	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
