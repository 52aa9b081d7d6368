// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/bkaraca/career-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCourseMatches outputs a human-readable summary of recommended courses.
func (p *Printer) PrintCourseMatches(matches []types.CourseMatch) {
	var sb strings.Builder

	if len(matches) == 0 {
		sb.WriteString("No courses matched the query.\n")
	}

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("[%.2f] %s - %s (L%d)\n", m.MatchScore, m.Code, m.Name, m.Level))
		if m.Department != "" {
			sb.WriteString(fmt.Sprintf("       %s\n", m.Department))
		}
	}
	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(matches)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("Recommended Courses (%d)", len(matches)), strings.TrimRight(sb.String(), "\n"))
}

// PrintSkillMatches outputs a human-readable summary of matched skills.
func (p *Printer) PrintSkillMatches(courseText string, matches []types.SkillMatch) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Course: %s\n\n", courseText))
	if len(matches) == 0 {
		sb.WriteString("No skills above threshold.\n")
	}
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("  • %s (%.2f)\n", m.Skill, m.Similarity))
	}
	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(matches)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("Matched Skills (%d)", len(matches)), strings.TrimRight(sb.String(), "\n"))
}

// PrintEngineStats outputs corpus index statistics after a successful load.
func (p *Printer) PrintEngineStats(encoder string, numSkills, numCourses, dims int) {
	content := fmt.Sprintf("Encoder:   %s\nSkills:    %d\nCourses:   %d\nDims:      %d",
		encoder, numSkills, numCourses, dims)
	p.printBox("Engine Ready", content)
}
