// File: pkg/paste/config.go
package paste

import (
	"fmt"
	"path/filepath"
)

// BlankLinePolicy controls how blank lines in text content are treated
// before hashing and line counting.
type BlankLinePolicy string

const (
	BlankKeep     BlankLinePolicy = "keep"     // leave content untouched
	BlankCollapse BlankLinePolicy = "collapse" // limit runs of blank lines to one
	BlankDrop     BlankLinePolicy = "drop"     // remove every blank line
)

// Default limits applied by Normalize when the corresponding field is unset.
const (
	DefaultMaxLines = 4000 // line budget per output file
	MinMaxLines     = 50   // guard against uselessly small budgets
)

// Config holds the resolved configuration for one paste run. The caller is
// responsible for merging defaults, config files, and CLI overrides; the
// engine treats every field as final and every pattern list as
// already-normalized strings.
type Config struct {
	ProjectRoot        string          // Directory to select files from.
	OutDir             string          // Output directory; relative paths resolve against ProjectRoot.
	MaxLines           int             // Line budget per output file.
	AllowBinary        bool            // Include binary files as base64 blocks instead of skipping them.
	FilenameSearch     bool            // Expand bare file names into any-depth glob patterns.
	Include            []string        // Inclusion patterns; empty means every file with an extension.
	Exclude            []string        // Exclusion patterns matched against relative paths.
	OnlyGlobs          []string        // When non-empty, keep only files matching at least one.
	SkipGlobs          []string        // Additional exclusion patterns.
	GlobalExcludeDirs  []string        // Shared directory exclusions (names, prefixes, or patterns).
	GlobalExcludeFiles []string        // Shared file exclusions (names or patterns).
	TargetFiles        int             // Desired output-file count; 0 means unset.
	SoftOverflow       int             // Lines a bucket may exceed the capacity by.
	ForceSingleFile    bool            // Pack every block into one output file.
	BlankLines         BlankLinePolicy // Blank-line policy applied to text content.
	AllowSplit         bool            // Split oversized files into line-aligned chunks.
	SplitChunkLines    int             // Maximum lines per chunk; 0 means unset.
}

// Normalize fills in defaults, resolves the output directory against the
// project root, and expands pattern lists for filename search. It is called
// once at the pipeline boundary.
func (c *Config) Normalize() error {
	if c.ProjectRoot == "" {
		c.ProjectRoot = "."
	}
	absRoot, err := filepath.Abs(c.ProjectRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve project root %q: %w", c.ProjectRoot, err)
	}
	c.ProjectRoot = absRoot

	if c.OutDir == "" {
		c.OutDir = "paste_out"
	}
	if !filepath.IsAbs(c.OutDir) {
		c.OutDir = filepath.Join(c.ProjectRoot, c.OutDir)
	}

	if c.MaxLines <= 0 {
		c.MaxLines = DefaultMaxLines
	}
	if c.MaxLines < MinMaxLines {
		c.MaxLines = MinMaxLines
	}
	if c.SoftOverflow < 0 {
		c.SoftOverflow = 0
	}
	if c.TargetFiles < 0 {
		c.TargetFiles = 0
	}
	if c.SplitChunkLines < 0 {
		c.SplitChunkLines = 0
	}

	switch c.BlankLines {
	case BlankKeep, BlankCollapse, BlankDrop:
	case "":
		c.BlankLines = BlankKeep
	default:
		return fmt.Errorf("invalid blank_lines policy %q", c.BlankLines)
	}

	c.Include = NormalizeGlobs(c.Include, c.FilenameSearch)
	c.Exclude = NormalizeGlobs(c.Exclude, c.FilenameSearch)
	c.OnlyGlobs = NormalizeGlobs(c.OnlyGlobs, c.FilenameSearch)
	c.SkipGlobs = NormalizeGlobs(c.SkipGlobs, c.FilenameSearch)

	return nil
}
