package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"matched_skills\": [\"SQL\"]}\n```"
	assert.Equal(t, `{"matched_skills": ["SQL"]}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_FenceWithLanguageID(t *testing.T) {
	input := "```javascript\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	input := `{"a": 1}`
	assert.Equal(t, input, CleanJSONBlock(input))
}

func TestCleanJSONBlock_WhitespaceOnly(t *testing.T) {
	assert.Equal(t, "", CleanJSONBlock("   \n  "))
}
