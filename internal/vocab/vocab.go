// Package vocab loads the controlled vocabulary of labor-market skills.
package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the skill vocabulary from a flat text file, one skill per line.
// Lines are trimmed, blank lines dropped, and duplicates removed while
// preserving first-seen file order. The loaded order is authoritative: the
// engine's skill vectors are positionally aligned with it.
//
// A missing file is fatal to engine startup; the error wraps the underlying
// os error so callers can test with errors.Is(err, os.ErrNotExist).
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("skill vocabulary not found at %s: %w", path, err)
	}
	defer f.Close()

	skills, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill vocabulary %s: %w", path, err)
	}
	return skills, nil
}

// Parse reads one skill per line from r, applying the same trim/dedupe rules
// as Load.
func Parse(r io.Reader) ([]string, error) {
	var skills []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	// Allow lines longer than bufio's default 64KB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		skill := strings.TrimSpace(scanner.Text())
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return skills, nil
}
