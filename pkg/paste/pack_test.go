package paste

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizedBlock(rel string, lines int) Block {
	return Block{RelPath: rel, ChunkIndex: 1, ChunkTotal: 1, ContentLines: lines, Lines: lines}
}

func bucketSizes(buckets []Bucket) []int {
	sizes := make([]int, len(buckets))
	for i, b := range buckets {
		sizes[i] = b.Lines
	}
	return sizes
}

func TestResolveCapacity(t *testing.T) {
	assert.Equal(t, 4000, ResolveCapacity(9000, Config{MaxLines: 4000}), "without a target the line budget applies directly")
	assert.Equal(t, 1450, ResolveCapacity(2900, Config{MaxLines: 4000, TargetFiles: 2}), "target capacity is the ceiling of total over target")
	assert.Equal(t, 4000, ResolveCapacity(20000, Config{MaxLines: 4000, TargetFiles: 2}), "target-derived capacity is capped at the line budget")
	assert.Equal(t, 1, ResolveCapacity(0, Config{MaxLines: 4000, TargetFiles: 3}))
}

func TestPackBlocks_FirstFitDecreasing(t *testing.T) {
	// Post-policy sizes 1500/1000/400 with a 2000-line budget: the 1000-line
	// block does not fit next to the 1500-line one, so it opens bucket two
	// and the 400-line block joins it there.
	blocks := []Block{
		sizedBlock("small.py", 400),
		sizedBlock("big.py", 1500),
		sizedBlock("mid.py", 1000),
	}
	buckets := PackBlocks(blocks, Config{MaxLines: 2000})
	require.Len(t, buckets, 2)
	assert.Equal(t, []int{1500, 1400}, bucketSizes(buckets))
	assert.Equal(t, "big.py", buckets[0].Blocks[0].RelPath)
	assert.Equal(t, "mid.py", buckets[1].Blocks[0].RelPath)
	assert.Equal(t, "small.py", buckets[1].Blocks[1].RelPath)
}

func TestPackBlocks_TargetFilesOversizedBucket(t *testing.T) {
	// target_files=2 over 2900 total lines gives capacity 1450; the
	// 1500-line block exceeds it and lands alone in its own bucket.
	blocks := []Block{
		sizedBlock("big.py", 1500),
		sizedBlock("mid.py", 1000),
		sizedBlock("small.py", 400),
	}
	buckets := PackBlocks(blocks, Config{MaxLines: 4000, TargetFiles: 2})
	require.Len(t, buckets, 2)
	assert.Equal(t, []int{1500, 1400}, bucketSizes(buckets))
	require.Len(t, buckets[0].Blocks, 1, "an oversized block is placed alone")
}

func TestPackBlocks_SoftOverflow(t *testing.T) {
	blocks := []Block{
		sizedBlock("a.py", 1500),
		sizedBlock("b.py", 600),
	}

	buckets := PackBlocks(blocks, Config{MaxLines: 2000})
	assert.Len(t, buckets, 2, "without overflow 2100 lines need two buckets")

	buckets = PackBlocks(blocks, Config{MaxLines: 2000, SoftOverflow: 100})
	require.Len(t, buckets, 1, "soft overflow admits the second block")
	assert.Equal(t, 2100, buckets[0].Lines)
}

func TestPackBlocks_BucketBoundInvariant(t *testing.T) {
	cfg := Config{MaxLines: 1000, SoftOverflow: 50}
	var blocks []Block
	for i, n := range []int{900, 850, 700, 420, 400, 260, 120, 90, 60, 30, 10, 3000} {
		blocks = append(blocks, sizedBlock(fmt.Sprintf("f%02d.py", i), n))
	}

	limit := 1000 + 50
	for _, bucket := range PackBlocks(blocks, cfg) {
		if bucket.Lines > limit {
			assert.Len(t, bucket.Blocks, 1, "only a single oversized block may exceed capacity plus overflow")
		}
	}
}

func TestPackBlocks_ForceSingleFile(t *testing.T) {
	blocks := []Block{
		sizedBlock("a.py", 3000),
		sizedBlock("b.py", 3000),
	}
	buckets := PackBlocks(blocks, Config{MaxLines: 1000, ForceSingleFile: true})
	require.Len(t, buckets, 1)
	assert.Equal(t, 6000, buckets[0].Lines)
	assert.Len(t, buckets[0].Blocks, 2)
}

func TestPackBlocks_DeterministicTieBreak(t *testing.T) {
	blocks := []Block{
		sizedBlock("z.py", 100),
		sizedBlock("a.py", 100),
		sizedBlock("m.py", 100),
	}
	buckets := PackBlocks(blocks, Config{MaxLines: 4000})
	require.Len(t, buckets, 1)
	assert.Equal(t, "a.py", buckets[0].Blocks[0].RelPath)
	assert.Equal(t, "m.py", buckets[0].Blocks[1].RelPath)
	assert.Equal(t, "z.py", buckets[0].Blocks[2].RelPath)
}

func TestPackBlocks_Empty(t *testing.T) {
	assert.Nil(t, PackBlocks(nil, Config{MaxLines: 2000}))
}
