package paste

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFiles(t *testing.T, fsys billy.Filesystem, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, util.WriteFile(fsys, p, []byte("content\n"), 0o644))
	}
}

func selectOn(t *testing.T, fsys billy.Filesystem, cfg Config) []string {
	t.Helper()
	files, err := SelectFiles(fsys, cfg, zap.NewNop())
	require.NoError(t, err)
	return files
}

func TestSelectFiles_DefaultIncludeWantsExtensions(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "main.go", "src/util.go", "Makefile", "docs/guide.md")

	files := selectOn(t, fsys, Config{})
	assert.Equal(t, []string{"docs/guide.md", "main.go", "src/util.go"}, files,
		"with no include patterns only files with an extension are selected, sorted by path")
}

func TestSelectFiles_IncludePatterns(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "main.go", "src/util.go", "docs/guide.md")

	files := selectOn(t, fsys, Config{Include: []string{"**/*.go"}})
	assert.Equal(t, []string{"main.go", "src/util.go"}, files)
}

func TestSelectFiles_ExcludeAndSkip(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "a.go", "a_test.go", "gen/a.go", "b.go")

	files := selectOn(t, fsys, Config{
		Include:   []string{"**/*.go"},
		Exclude:   []string{"**/*_test.go"},
		SkipGlobs: []string{"gen/**"},
	})
	assert.Equal(t, []string{"a.go", "b.go"}, files)
}

func TestSelectFiles_OnlyGlobs(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "a.go", "b.py", "src/c.py")

	files := selectOn(t, fsys, Config{OnlyGlobs: []string{"**/*.py"}})
	assert.Equal(t, []string{"b.py", "src/c.py"}, files)
}

func TestSelectFiles_GlobalDirExclusions(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys,
		"main.go",
		"node_modules/pkg/index.js",
		"deep/node_modules/x.js",
		"vendor/lib/a.go",
		"build_out/a.go",
		"src/a.go",
	)

	files := selectOn(t, fsys, Config{
		GlobalExcludeDirs: []string{
			"node_modules", // bare name: matches at any depth
			"vendor/lib",   // fixed prefix
			"build*",       // pattern against the relative directory path
		},
	})
	assert.Equal(t, []string{"main.go", "src/a.go"}, files)
}

func TestSelectFiles_GlobalFileExclusions(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "app.go", "app.min.js", "sub/.DS_Store.txt", "notes.txt")

	files := selectOn(t, fsys, Config{
		GlobalExcludeFiles: []string{"*.min.js", ".DS_Store.txt"},
	})
	assert.Equal(t, []string{"app.go", "notes.txt"}, files, "file exclusions match by name at any depth")
}

func TestSelectFiles_Deterministic(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "z.go", "a.go", "m/x.go", "m/a.go")

	first := selectOn(t, fsys, Config{})
	second := selectOn(t, fsys, Config{})
	assert.Equal(t, first, second, "the same tree always yields the same ordered list")
	assert.Equal(t, []string{"a.go", "m/a.go", "m/x.go", "z.go"}, first)
}

func TestSelectFiles_NormalizedBareNameInclude(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "Makefile.am", "sub/Makefile.am", "other.txt")

	cfg := Config{Include: NormalizeGlobs([]string{"Makefile.am"}, true)}
	files := selectOn(t, fsys, cfg)
	assert.Equal(t, []string{"Makefile.am", "sub/Makefile.am"}, files)
}
