// Package paste selects project files by layered glob rules, renders each
// into self-describing framed text blocks, and bin-packs the blocks into
// numbered paste files under a line budget, with a cross-reference index.
package paste

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"
)

// Result aggregates everything one run produced.
type Result struct {
	ProjectRoot   string
	OutDir        string
	Candidates    []string // selected files, relative paths in sorted order
	FilesWritten  int      // files that produced at least one block
	SkippedBinary []string // binary files excluded because AllowBinary is off
	SkippedErrors []string // files dropped because they could not be read
	Outputs       []OutputFile
	ListOnly      bool
}

// Run executes the full pipeline against the real filesystem: select,
// classify, render, pack, write, index. With listOnly set nothing is written
// and the result only carries the candidate list. The only fatal condition is
// a project root that does not exist or is not a directory; unreadable files
// are skipped with a warning.
func Run(cfg Config, listOnly bool, logger *zap.Logger) (*Result, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	info, err := os.Stat(cfg.ProjectRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("invalid project root: %s", cfg.ProjectRoot)
	}

	projFS := osfs.New(cfg.ProjectRoot)
	var outFS billy.Filesystem
	if !listOnly {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		outFS = osfs.New(cfg.OutDir)
	}
	return RunFS(projFS, outFS, cfg, listOnly, logger)
}

// RunFS executes the pipeline over explicit filesystems. Production runs go
// through Run; tests may pass in-memory filesystems. cfg must already be
// normalized when the caller constructed it by hand.
func RunFS(projFS, outFS billy.Filesystem, cfg Config, listOnly bool, logger *zap.Logger) (*Result, error) {
	startTime := time.Now()
	logger.Info("Starting paste run",
		zap.String("projectRoot", cfg.ProjectRoot),
		zap.Bool("listOnly", listOnly))

	files, err := SelectFiles(projFS, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}

	result := &Result{
		ProjectRoot: cfg.ProjectRoot,
		OutDir:      cfg.OutDir,
		Candidates:  files,
		ListOnly:    listOnly,
	}

	if listOnly {
		logger.Info("List-only run completed", zap.Int("files", len(files)))
		return result, nil
	}

	var blocks []Block
	for _, rel := range files {
		content, isBinary, err := classifyFile(projFS, rel, cfg)
		if err != nil {
			logger.Warn("Skipping unreadable file", zap.String("file", rel), zap.Error(err))
			result.SkippedErrors = append(result.SkippedErrors, rel)
			continue
		}
		if isBinary && !cfg.AllowBinary {
			logger.Debug("Skipping binary file", zap.String("file", rel))
			result.SkippedBinary = append(result.SkippedBinary, rel)
			continue
		}
		blocks = append(blocks, RenderBlocks(rel, content, cfg)...)
		result.FilesWritten++
	}

	buckets := PackBlocks(blocks, cfg)
	outputs, err := WriteBuckets(outFS, buckets, logger)
	if err != nil {
		return nil, err
	}
	result.Outputs = outputs

	if err := WriteIndex(outFS, outputs, len(files), result.FilesWritten, len(result.SkippedBinary)); err != nil {
		return nil, err
	}

	logger.Info("Paste run completed",
		zap.Int("filesFound", len(files)),
		zap.Int("filesWritten", result.FilesWritten),
		zap.Int("outputFiles", len(outputs)),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// WriteSummary emits the human-readable run summary.
func (r *Result) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "[paste] Project: %s\n", r.ProjectRoot)
	fmt.Fprintf(w, "[paste] Files found:   %d\n", len(r.Candidates))
	fmt.Fprintf(w, "[paste] Files written: %d\n", r.FilesWritten)
	if len(r.SkippedBinary) > 0 {
		fmt.Fprintf(w, "[paste] Skipped binary (allow_binary=false): %d\n", len(r.SkippedBinary))
		for _, rel := range r.SkippedBinary {
			fmt.Fprintf(w, "  - %s\n", rel)
		}
	}
	if len(r.SkippedErrors) > 0 {
		fmt.Fprintf(w, "[paste] Skipped unreadable: %d\n", len(r.SkippedErrors))
		for _, rel := range r.SkippedErrors {
			fmt.Fprintf(w, "  - %s\n", rel)
		}
	}
	if len(r.Outputs) > 0 {
		fmt.Fprintln(w, "[paste] Output:")
		for _, out := range r.Outputs {
			fmt.Fprintf(w, "  - %s (%d lines)\n", out.Name, out.Lines)
		}
	} else {
		fmt.Fprintln(w, "[paste] No output generated (no matching files).")
	}
}

// WriteFileList emits the candidate list for list-only runs.
func (r *Result) WriteFileList(w io.Writer) {
	fmt.Fprintf(w, "[paste] Project: %s\n", r.ProjectRoot)
	fmt.Fprintf(w, "[paste] Matched files: %d\n", len(r.Candidates))
	for _, rel := range r.Candidates {
		fmt.Fprintln(w, rel)
	}
}
