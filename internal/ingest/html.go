// Package ingest extracts course records from saved registration-portal HTML
// pages. It is thin glue around the core: table rows in, course records out,
// with no retry or cleanup heuristics beyond column mapping.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bkaraca/career-advisor/internal/types"
)

// columns maps table header cells to course fields by keyword.
type columns struct {
	code, name, department, description, credits, level, english int
}

func newColumns() columns {
	return columns{code: -1, name: -1, department: -1, description: -1, credits: -1, level: -1, english: -1}
}

// ParseCourses extracts course records from every table in an HTML document.
// Tables whose header row contains no recognizable code and title columns
// are skipped.
func ParseCourses(r io.Reader) ([]types.Course, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var courses []types.Course
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		cols, headerRows := mapHeader(table)
		if cols.code < 0 || cols.name < 0 {
			return
		}

		table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
			if rowIdx < headerRows {
				return
			}
			cells := row.Find("td")
			if cells.Length() <= cols.name {
				return
			}

			course := parseRow(cells, cols)
			if course.Code == "" || course.Name == "" {
				return
			}
			course.ApplyDefaults()
			courses = append(courses, course)
		})
	})

	return courses, nil
}

// IngestDir parses every .html file in dir, merging rows across files in
// sorted file order so repeated runs produce the same catalog ordering.
func IngestDir(dir string) ([]types.Course, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to list HTML files in %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no HTML files found in %s", dir)
	}
	sort.Strings(paths)

	var all []types.Course
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}

		courses, err := ParseCourses(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		all = append(all, courses...)
	}

	return all, nil
}

// mapHeader locates header cells in the table's first row (th cells, or td
// cells when the portal emits plain rows) and maps them to course fields.
// Returns the column mapping and the number of header rows to skip.
func mapHeader(table *goquery.Selection) (columns, int) {
	cols := newColumns()

	header := table.Find("tr").First()
	cells := header.Find("th")
	if cells.Length() == 0 {
		cells = header.Find("td")
	}

	cells.Each(func(i int, cell *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(cell.Text()))
		switch {
		case cols.code < 0 && strings.Contains(text, "code"):
			cols.code = i
		case cols.name < 0 && (strings.Contains(text, "title") || strings.Contains(text, "name")):
			cols.name = i
		case cols.department < 0 && (strings.Contains(text, "department") || strings.Contains(text, "program")):
			cols.department = i
		case cols.description < 0 && strings.Contains(text, "description"):
			cols.description = i
		case cols.credits < 0 && strings.Contains(text, "credit"):
			cols.credits = i
		case cols.level < 0 && (strings.Contains(text, "level") || strings.Contains(text, "year")):
			cols.level = i
		case cols.english < 0 && strings.Contains(text, "english"):
			cols.english = i
		}
	})

	return cols, 1
}

func parseRow(cells *goquery.Selection, cols columns) types.Course {
	text := func(idx int) string {
		if idx < 0 || idx >= cells.Length() {
			return ""
		}
		return strings.TrimSpace(cells.Eq(idx).Text())
	}

	course := types.Course{
		Code:        text(cols.code),
		Name:        cleanTitle(text(cols.name)),
		Department:  text(cols.department),
		Description: text(cols.description),
	}

	if v := text(cols.credits); v != "" {
		if credits, err := strconv.Atoi(v); err == nil && credits > 0 {
			course.Credits = credits
		}
	}
	if v := text(cols.level); v != "" {
		if level, err := strconv.Atoi(v); err == nil && level >= 1 && level <= 4 {
			course.Level = level
		}
	}
	if v := strings.ToLower(text(cols.english)); v != "" {
		course.TaughtInEnglish = v == "yes" || v == "y" || v == "true" || v == "v"
	}

	return course
}

// cleanTitle strips the portal's trailing asterisk annotations from course
// titles.
func cleanTitle(title string) string {
	if idx := strings.Index(title, "*"); idx >= 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}
