// File: pkg/paste/write.go
package paste

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// OutputExt is the extension used for paste and index files.
const OutputExt = ".txt"

// IndexFileName is the cross-reference document written next to the paste files.
const IndexFileName = "index" + OutputExt

// OutputFile records one written paste file for the index and the summary.
type OutputFile struct {
	Name   string
	Lines  int
	Blocks []Block
}

// outputFileName numbers paste files sequentially starting at 01.
func outputFileName(n int) string {
	return fmt.Sprintf("paste_%02d%s", n, OutputExt)
}

// WriteBuckets writes each bucket, in order, to a sequentially numbered
// output file, concatenating its blocks' rendered text verbatim.
func WriteBuckets(outFS billy.Filesystem, buckets []Bucket, logger *zap.Logger) ([]OutputFile, error) {
	outputs := make([]OutputFile, 0, len(buckets))
	for i, bucket := range buckets {
		name := outputFileName(i + 1)
		if err := writeBucket(outFS, name, bucket); err != nil {
			logger.Error("Failed to write output file", zap.String("file", name), zap.Error(err))
			return nil, err
		}
		logger.Debug("Wrote output file",
			zap.String("file", name),
			zap.Int("lines", bucket.Lines),
			zap.Int("blocks", len(bucket.Blocks)))
		outputs = append(outputs, OutputFile{Name: name, Lines: bucket.Lines, Blocks: bucket.Blocks})
	}
	return outputs, nil
}

func writeBucket(outFS billy.Filesystem, name string, bucket Bucket) error {
	f, err := outFS.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", name, err)
	}
	w := bufio.NewWriter(f)
	for _, b := range bucket.Blocks {
		if _, err := w.WriteString(b.Text); err != nil {
			f.Close()
			return fmt.Errorf("failed to write block %s: %w", b.DisplayPath(), err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush output file %s: %w", name, err)
	}
	return f.Close()
}

// BuildIndex renders the cross-reference document: per output file, every
// contained block's display path and reported line count, followed by the
// aggregate totals.
func BuildIndex(outputs []OutputFile, found, written, skippedBinary int) string {
	var sb strings.Builder
	sb.WriteString("PASTE INDEX\n")
	sb.WriteString("===========\n\n")

	for _, out := range outputs {
		fmt.Fprintf(&sb, "%s  [%d lines]\n", out.Name, out.Lines)
		for _, b := range out.Blocks {
			fmt.Fprintf(&sb, "  %s  LINES: %d\n", b.DisplayPath(), b.ContentLines)
		}
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "FILES FOUND:    %d\n", found)
	fmt.Fprintf(&sb, "FILES WRITTEN:  %d\n", written)
	fmt.Fprintf(&sb, "SKIPPED BINARY: %d\n", skippedBinary)
	fmt.Fprintf(&sb, "OUTPUT FILES:   %d\n", len(outputs))
	return sb.String()
}

// WriteIndex writes the index document into the output directory.
func WriteIndex(outFS billy.Filesystem, outputs []OutputFile, found, written, skippedBinary int) error {
	doc := BuildIndex(outputs, found, written, skippedBinary)
	if err := util.WriteFile(outFS, IndexFileName, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}
