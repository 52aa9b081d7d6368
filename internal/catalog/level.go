package catalog

// LevelFromCode derives the academic level (1-4) from a course code by
// scanning for its first decimal digit. The digit is accepted only when it
// falls in [1,4]; otherwise fallback is returned. Codes with no digit at all
// also return fallback.
//
// This is intentionally lenient: level is a presentation sort hint, so
// malformed codes degrade to the stored default rather than erroring.
func LevelFromCode(code string, fallback int) int {
	for _, r := range code {
		if r >= '0' && r <= '9' {
			level := int(r - '0')
			if level >= 1 && level <= 4 {
				return level
			}
			return fallback
		}
	}
	return fallback
}
