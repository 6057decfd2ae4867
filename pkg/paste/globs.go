package paste

import "strings"

// NormalizeGlobs prepares raw pattern lists for matching. Blank entries are
// dropped. Under filename search a pattern that is a pure file name (no path
// separator, no wildcard characters) expands into two patterns: the bare name,
// matching at the project root, and an any-depth variant matching at every
// nesting level. Everything else passes through unchanged.
func NormalizeGlobs(globs []string, filenameSearch bool) []string {
	var out []string
	for _, g := range globs {
		s := strings.TrimSpace(g)
		if s == "" {
			continue
		}
		if filenameSearch && isPureFilename(s) {
			out = append(out, s, "**/"+s)
			continue
		}
		out = append(out, s)
	}
	return out
}

// isPureFilename reports whether s contains neither a path separator nor any
// glob wildcard character.
func isPureFilename(s string) bool {
	return !strings.Contains(s, "/") && !strings.ContainsAny(s, "*?[]")
}
