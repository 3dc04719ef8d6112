// Package enumerate lists the files that make up an analysis corpus.
package enumerate

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// DefaultPatterns matches every file under the root.
var DefaultPatterns = []string{"**/*"}

// Glob enumerates regular files under a root that match doublestar patterns.
// Patterns are relative to the root unless absolute; a leading "!" turns a pattern
// into an exclusion. Hidden files and directories and vendor directories are skipped.
type Glob struct {
	VendorDirs []string
	// IncludeHidden keeps dot-files and dot-directories.
	IncludeHidden bool
}

// NewGlob creates an enumerator skipping the given vendor directory names.
func NewGlob(vendorDirs []string) *Glob {
	return &Glob{VendorDirs: vendorDirs}
}

// Enumerate walks root and returns absolute paths of matching files in walk order.
func (g *Glob) Enumerate(root string, patterns []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve root %s", root)
	}

	includes, excludes, err := splitPatterns(absRoot, patterns)
	if err != nil {
		return nil, err
	}

	vendor := make(map[string]bool, len(g.VendorDirs))
	for _, dir := range g.VendorDirs {
		vendor[dir] = true
	}

	var files []string
	seen := make(map[string]bool)
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()

		if d.IsDir() {
			if vendor[name] || (!g.IncludeHidden && isHidden(name)) || matchesAny(excludes, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !g.IncludeHidden && isHidden(name) {
			return nil
		}
		if !matchesAny(includes, rel) || matchesAny(excludes, rel) {
			return nil
		}

		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", absRoot)
	}

	return files, nil
}

// splitPatterns validates patterns and returns them relative to root, separated
// into inclusions and exclusions.
func splitPatterns(root string, patterns []string) (includes, excludes []string, err error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	for _, raw := range patterns {
		pattern := strings.TrimSpace(raw)
		exclude := strings.HasPrefix(pattern, "!")
		pattern = strings.TrimPrefix(pattern, "!")
		if pattern == "" {
			continue
		}

		pattern = relativePattern(root, pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, errors.Newf("invalid pattern %q", raw)
		}

		if exclude {
			excludes = append(excludes, pattern)
		} else {
			includes = append(includes, pattern)
		}
	}

	if len(includes) == 0 {
		includes = DefaultPatterns
	}
	return includes, excludes, nil
}

func relativePattern(root, pattern string) string {
	pattern = filepath.ToSlash(pattern)
	slashRoot := filepath.ToSlash(root)
	if strings.HasPrefix(pattern, slashRoot+"/") {
		pattern = strings.TrimPrefix(pattern, slashRoot+"/")
	}
	return strings.TrimPrefix(pattern, "./")
}

// matchesAny reports whether rel matches any pattern, either directly or because
// a pattern names one of its parent directories.
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern+"/**", rel); ok {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
