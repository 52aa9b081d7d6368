package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_FillsZeroFields(t *testing.T) {
	c := Course{Code: "CS101", Name: "Intro"}
	c.ApplyDefaults()
	assert.Equal(t, DefaultCredits, c.Credits)
	assert.Equal(t, DefaultLevel, c.Level)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	c := Course{Code: "CS401", Name: "Compilers", Credits: 4, Level: 4}
	c.ApplyDefaults()
	assert.Equal(t, 4, c.Credits)
	assert.Equal(t, 4, c.Level)
}

func TestSearchText_JoinsAllFields(t *testing.T) {
	c := Course{
		Code:        "CS101",
		Name:        "Intro to Programming",
		Department:  "Computer Science",
		Description: "Variables and loops",
	}
	assert.Equal(t, "CS101 Intro to Programming Computer Science Variables and loops", c.SearchText())
}

func TestSearchText_SkipsEmptyFields(t *testing.T) {
	c := Course{Code: "CS101", Name: "Intro", Description: "  "}
	assert.Equal(t, "CS101 Intro", c.SearchText(), "Blank fields must not leave double spaces")
}

func TestSearchText_Deterministic(t *testing.T) {
	c := Course{Code: "EL314", Name: "Signals", Department: "Electronics"}
	assert.Equal(t, c.SearchText(), c.SearchText())
}
