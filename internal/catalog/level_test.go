package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromCode_FirstDigitInRange(t *testing.T) {
	assert.Equal(t, 1, LevelFromCode("CS101", 1))
	assert.Equal(t, 3, LevelFromCode("EL314", 1))
	assert.Equal(t, 4, LevelFromCode("SENG 401", 1))
	assert.Equal(t, 2, LevelFromCode("MATH2301", 1))
}

func TestLevelFromCode_FirstDigitOutOfRange(t *testing.T) {
	assert.Equal(t, 1, LevelFromCode("X9999", 1), "First digit outside 1-4 falls back")
	assert.Equal(t, 3, LevelFromCode("CS050", 3), "Zero falls back even when later digits are valid")
}

func TestLevelFromCode_NoDigit(t *testing.T) {
	assert.Equal(t, 1, LevelFromCode("ABC", 1))
	assert.Equal(t, 2, LevelFromCode("", 2))
}
