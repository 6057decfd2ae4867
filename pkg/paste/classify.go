package paste

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// sniffWindow is how many leading bytes are inspected for binary content.
const sniffWindow = 8192

// classifyFile reads one candidate and returns its renderable text content
// and whether the file was classified as binary. For text files the blank-line
// policy is already applied, so hashes and line counts downstream see the
// post-policy content. For binary files the content is a base64 textual
// representation; the caller decides whether binary content is allowed at all.
func classifyFile(fsys billy.Filesystem, rel string, cfg Config) (string, bool, error) {
	data, err := util.ReadFile(fsys, rel)
	if err != nil {
		return "", false, fmt.Errorf("error reading file %s: %w", rel, err)
	}

	head := data
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	if looksBinary(head) || !utf8.Valid(data) {
		return formatBinaryContent(data, rel), true, nil
	}

	return applyBlankLinePolicy(string(data), cfg.BlankLines), false, nil
}

// looksBinary applies the sniff heuristic: any NUL byte, or more than 30%
// control characters outside the tab/newline family, marks the window binary.
// Empty files are text.
func looksBinary(head []byte) bool {
	if len(head) == 0 {
		return false
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}
	ctrl := 0
	for _, b := range head {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != '\f' && b != '\v' {
			ctrl++
		}
	}
	return float64(ctrl)/float64(len(head)) > 0.3
}

// applyBlankLinePolicy rewrites text according to the configured policy:
// drop removes every blank line, collapse limits runs of blank lines to one,
// keep returns the text untouched. A line is blank when it is empty after
// trimming whitespace.
func applyBlankLinePolicy(text string, policy BlankLinePolicy) string {
	if policy == BlankKeep || text == "" {
		return text
	}

	trailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	var out []string
	prevBlank := false
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		switch {
		case !blank:
			out = append(out, line)
		case policy == BlankCollapse && !prevBlank:
			out = append(out, line)
		}
		prevBlank = blank
	}

	result := strings.Join(out, "\n")
	if trailingNewline && result != "" {
		result += "\n"
	}
	return result
}

// formatBinaryContent wraps raw bytes in a safe textual representation so
// binary files can travel through the same frame as text.
func formatBinaryContent(data []byte, rel string) string {
	b64 := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("# BINARY FILE (base64): %s\n# length=%d bytes\n%s\n", rel, len(data), b64)
}
