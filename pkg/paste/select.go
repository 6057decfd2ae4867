package paste

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// dirExclusions holds the three forms a global directory exclusion can take:
// bare names match any segment of the relative path, fixed prefixes match by
// path containment, and wildcard patterns match the relative directory path.
type dirExclusions struct {
	names    []string
	prefixes []string
	patterns []string
}

// splitDirExclusions sorts raw directory-exclusion entries into the three
// matchable buckets.
func splitDirExclusions(entries []string) dirExclusions {
	var de dirExclusions
	for _, e := range entries {
		s := strings.Trim(strings.TrimSpace(e), "/")
		if s == "" {
			continue
		}
		switch {
		case strings.ContainsAny(s, "*?["):
			de.patterns = append(de.patterns, s)
		case strings.Contains(s, "/"):
			de.prefixes = append(de.prefixes, s)
		default:
			de.names = append(de.names, s)
		}
	}
	return de
}

// matchesDir reports whether the relative directory path relDir is excluded.
func (de dirExclusions) matchesDir(relDir string) bool {
	if relDir == "." || relDir == "" {
		return false
	}
	for _, seg := range strings.Split(relDir, "/") {
		for _, name := range de.names {
			if seg == name {
				return true
			}
		}
	}
	for _, prefix := range de.prefixes {
		if relDir == prefix || strings.HasPrefix(relDir, prefix+"/") {
			return true
		}
	}
	for _, pat := range de.patterns {
		if ok, err := doublestar.Match(pat, relDir); err == nil && ok {
			return true
		}
	}
	return false
}

// matchesAny reports whether rel matches at least one of the patterns.
func matchesAny(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// excludedFileName reports whether a file is dropped by the global file
// exclusions, which may be bare names or patterns matched against both the
// file name and the full relative path.
func excludedFileName(rel string, entries []string) bool {
	name := path.Base(rel)
	for _, e := range entries {
		s := strings.TrimSpace(e)
		if s == "" {
			continue
		}
		if s == name {
			return true
		}
		if ok, err := doublestar.Match(s, name); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(s, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// defaultInclude selects every file with an extension, at any depth.
var defaultInclude = []string{"*.*", "**/*.*"}

// SelectFiles walks the filesystem rooted at the project root and returns the
// ordered candidate list: relative, slash-separated paths of every file that
// matches an include pattern and survives the exclusion rules. The result is
// sorted so repeated runs over an unchanged tree are identical.
func SelectFiles(fsys billy.Filesystem, cfg Config, logger *zap.Logger) ([]string, error) {
	include := cfg.Include
	if len(include) == 0 {
		include = defaultInclude
	}
	dirEx := splitDirExclusions(cfg.GlobalExcludeDirs)

	var files []string
	err := util.Walk(fsys, ".", func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during selection", zap.String("path", walkPath), zap.Error(err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := filepath.ToSlash(walkPath)
		if info.IsDir() {
			if dirEx.matchesDir(rel) {
				logger.Debug("Skipping excluded directory", zap.String("directory", rel))
				return filepath.SkipDir
			}
			return nil
		}

		if !matchesAny(rel, include) {
			return nil
		}
		if excludedFileName(rel, cfg.GlobalExcludeFiles) {
			return nil
		}
		if matchesAny(rel, cfg.Exclude) {
			return nil
		}
		if len(cfg.OnlyGlobs) > 0 && !matchesAny(rel, cfg.OnlyGlobs) {
			return nil
		}
		if matchesAny(rel, cfg.SkipGlobs) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
