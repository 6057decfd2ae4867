package paste

import "sort"

// Bucket is one output file's worth of packed blocks.
type Bucket struct {
	Blocks []Block
	Lines  int // total rendered line count of the assigned blocks
}

// ResolveCapacity derives the per-bucket line capacity. With a target file
// count set, capacity is the ceiling of total lines over the target, capped at
// the configured line budget; otherwise the line budget applies directly.
func ResolveCapacity(totalLines int, cfg Config) int {
	if cfg.TargetFiles <= 0 {
		return cfg.MaxLines
	}
	capacity := (totalLines + cfg.TargetFiles - 1) / cfg.TargetFiles
	if cfg.MaxLines > 0 && capacity > cfg.MaxLines {
		capacity = cfg.MaxLines
	}
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

// PackBlocks assigns rendered blocks to buckets with first-fit bin packing
// over a largest-first order. Every bucket stays within capacity plus the
// soft-overflow allowance, except a bucket holding a single block that alone
// exceeds that bound; such a block is never split here, that already happened
// in the renderer. Ties on equal line counts break by path so packing is
// deterministic.
func PackBlocks(blocks []Block, cfg Config) []Bucket {
	if len(blocks) == 0 {
		return nil
	}

	if cfg.ForceSingleFile {
		single := Bucket{Blocks: append([]Block(nil), blocks...)}
		for _, b := range blocks {
			single.Lines += b.Lines
		}
		return []Bucket{single}
	}

	sorted := append([]Block(nil), blocks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Lines != sorted[j].Lines {
			return sorted[i].Lines > sorted[j].Lines
		}
		if sorted[i].RelPath != sorted[j].RelPath {
			return sorted[i].RelPath < sorted[j].RelPath
		}
		return sorted[i].ChunkIndex < sorted[j].ChunkIndex
	})

	totalLines := 0
	for _, b := range sorted {
		totalLines += b.Lines
	}
	limit := ResolveCapacity(totalLines, cfg) + cfg.SoftOverflow

	var buckets []Bucket
	for _, b := range sorted {
		placed := false
		for i := range buckets {
			if buckets[i].Lines+b.Lines <= limit {
				buckets[i].Blocks = append(buckets[i].Blocks, b)
				buckets[i].Lines += b.Lines
				placed = true
				break
			}
		}
		if !placed {
			// Opens a new bucket; an oversized block lands alone and its
			// bucket can never accept another block.
			buckets = append(buckets, Bucket{Blocks: []Block{b}, Lines: b.Lines})
		}
	}
	return buckets
}
