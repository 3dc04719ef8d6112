package depgraph

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ModulePath is the canonical absolute path of a module. Two modules are the same
// module iff their ModulePaths are equal.
type ModulePath string

// NormalizePath converts a path into its canonical ModulePath form.
func NormalizePath(path string) (ModulePath, error) {
	absPath, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve path %s", path)
	}
	return ModulePath(filepath.Clean(absPath)), nil
}

func (p ModulePath) String() string {
	return string(p)
}

// Dir returns the directory containing the module.
func (p ModulePath) Dir() string {
	return filepath.Dir(string(p))
}

// Ext returns the module's extension, lower-cased.
func (p ModulePath) Ext() string {
	return strings.ToLower(filepath.Ext(string(p)))
}

// Rel returns the module path relative to root, using forward slashes.
// Paths outside root are returned unchanged.
func (p ModulePath) Rel(root string) string {
	rel, err := filepath.Rel(root, string(p))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return string(p)
	}
	return filepath.ToSlash(rel)
}

func normalizeAll(paths []string) ([]ModulePath, error) {
	result := make([]ModulePath, 0, len(paths))
	seen := make(map[ModulePath]bool, len(paths))
	for _, path := range paths {
		modulePath, err := NormalizePath(path)
		if err != nil {
			return nil, err
		}
		if seen[modulePath] {
			continue
		}
		seen[modulePath] = true
		result = append(result, modulePath)
	}
	return result, nil
}

// Strings converts module paths to plain strings, preserving order.
func Strings(paths []ModulePath) []string {
	result := make([]string, len(paths))
	for i, path := range paths {
		result[i] = string(path)
	}
	return result
}
