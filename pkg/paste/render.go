package paste

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Frame markers. Everything between the code markers is exactly the bytes the
// recorded SHA256 was computed over.
const (
	frameBegin = "===== BEGIN FILE ====="
	frameEnd   = "===== END FILE ====="
	codeBegin  = "----- BEGIN CODE -----"
	codeEnd    = "----- END CODE -----"

	frameOverhead = 8 // marker and metadata lines around an unsplit block
	chunkOverhead = 9 // split frames carry one extra TOTAL_LINES field
)

// Block is one rendered, self-describing unit of output: a whole file or one
// chunk of a split file.
type Block struct {
	RelPath      string // relative path, forward-slash separated, display only
	ChunkIndex   int    // 1-based position within the file's chunk sequence
	ChunkTotal   int    // number of chunks the file produced
	ContentLines int    // line count of this chunk's content (the LINES field)
	Text         string // fully rendered frame, header + content + footer
	Lines        int    // line count of Text, used by the packer
}

// DisplayPath returns the path label used in the index, with a chunk suffix
// when the file was split.
func (b Block) DisplayPath() string {
	if b.ChunkTotal > 1 {
		return fmt.Sprintf("%s [chunk %d/%d]", b.RelPath, b.ChunkIndex, b.ChunkTotal)
	}
	return b.RelPath
}

// RenderBlocks turns one classified file into its ordered block sequence.
// Files stay whole unless splitting is enabled and the post-policy line count
// exceeds the configured chunk size; then the content is partitioned into
// successive chunks of at most SplitChunkLines whole lines. Splitting never
// breaks a line.
func RenderBlocks(rel, content string, cfg Config) []Block {
	lines := contentLines(content)
	total := len(lines)

	if !cfg.AllowSplit || cfg.SplitChunkLines <= 0 || total <= cfg.SplitChunkLines {
		return []Block{renderFrame(rel, lines, 1, 1, total)}
	}

	chunkTotal := (total + cfg.SplitChunkLines - 1) / cfg.SplitChunkLines
	blocks := make([]Block, 0, chunkTotal)
	for i := 0; i < chunkTotal; i++ {
		lo := i * cfg.SplitChunkLines
		hi := lo + cfg.SplitChunkLines
		if hi > total {
			hi = total
		}
		blocks = append(blocks, renderFrame(rel, lines[lo:hi], i+1, chunkTotal, total))
	}
	return blocks
}

// renderFrame assembles one framed block. The digest covers exactly the bytes
// emitted between the code markers: the chunk's lines joined with newlines
// plus one trailing newline, or nothing for empty content.
func renderFrame(rel string, lines []string, chunkIdx, chunkTotal, totalLines int) Block {
	body := ""
	if len(lines) > 0 {
		body = strings.Join(lines, "\n") + "\n"
	}
	digest := sha256.Sum256([]byte(body))

	var sb strings.Builder
	sb.WriteString(frameBegin + "\n")
	fmt.Fprintf(&sb, "PATH: %s\n", rel)
	fmt.Fprintf(&sb, "LINES: %d\n", len(lines))
	fmt.Fprintf(&sb, "CHUNK: %d/%d\n", chunkIdx, chunkTotal)
	rendered := frameOverhead + len(lines)
	if chunkTotal > 1 {
		fmt.Fprintf(&sb, "TOTAL_LINES: %d\n", totalLines)
		rendered = chunkOverhead + len(lines)
	}
	fmt.Fprintf(&sb, "SHA256: %s\n", hex.EncodeToString(digest[:]))
	sb.WriteString(codeBegin + "\n")
	sb.WriteString(body)
	sb.WriteString(codeEnd + "\n")
	sb.WriteString(frameEnd + "\n")

	return Block{
		RelPath:      rel,
		ChunkIndex:   chunkIdx,
		ChunkTotal:   chunkTotal,
		ContentLines: len(lines),
		Text:         sb.String(),
		Lines:        rendered,
	}
}

// contentLines splits rendered content into lines, ignoring a trailing
// newline so an N-line file yields N entries, not N+1.
func contentLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
