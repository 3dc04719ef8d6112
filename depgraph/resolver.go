package depgraph

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/LegacyCodeHQ/deadfiles/depgraph/registry"
	"github.com/cockroachdb/errors"
)

// DefaultVendorDirs are the directory names whose contents are never analyzed.
var DefaultVendorDirs = []string{"node_modules"}

// OverrideHook rewrites a specifier before resolution. It receives the importing
// module's directory and the raw specifier; a non-empty return replaces the specifier.
type OverrideHook func(dir, specifier string) string

// Resolver maps specifiers found in a module to the ModulePaths they reference.
type Resolver struct {
	hook       OverrideHook
	vendorDirs map[string]bool
	visited    *VisitedSet
	// located observes every reference that resolves to an existing module,
	// including references to modules already visited.
	located func(from, to ModulePath) error
}

// NewResolver creates a resolver deduplicating against visited. Empty vendorDirs
// selects DefaultVendorDirs.
func NewResolver(hook OverrideHook, vendorDirs []string, visited *VisitedSet) *Resolver {
	if len(vendorDirs) == 0 {
		vendorDirs = DefaultVendorDirs
	}
	vendor := make(map[string]bool, len(vendorDirs))
	for _, dir := range vendorDirs {
		vendor[dir] = true
	}
	if visited == nil {
		visited = NewVisitedSet()
	}

	return &Resolver{
		hook:       hook,
		vendorDirs: vendor,
		visited:    visited,
	}
}

// Resolve returns the module that specifier references from current. The boolean is
// false when the reference is external, vendored, or already visited. A newly
// returned module is recorded as visited.
func (r *Resolver) Resolve(current ModulePath, specifier langsupport.Specifier) (ModulePath, bool, error) {
	target, ok, err := r.Locate(current, specifier)
	if err != nil || !ok {
		return "", false, err
	}
	if r.located != nil {
		if err := r.located(current, target); err != nil {
			return "", false, err
		}
	}
	if !r.visited.Add(target) {
		return "", false, nil
	}
	return target, true, nil
}

// Locate resolves specifier to an existing file without consulting the visited set.
func (r *Resolver) Locate(current ModulePath, specifier langsupport.Specifier) (ModulePath, bool, error) {
	dir := current.Dir()
	value := specifier.Value

	rewritten := ""
	if r.hook != nil {
		rewritten = r.hook(dir, value)
	}
	switch {
	case rewritten != "":
		value = rewritten
	case specifier.External:
		return "", false, nil
	}

	joined := filepath.FromSlash(value)
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(dir, joined)
	}
	path, err := NormalizePath(joined)
	if err != nil {
		return "", false, err
	}

	if r.IsVendored(path) {
		return "", false, nil
	}

	completed, err := Complete(string(path), candidateExtensions(current))
	if err != nil {
		var notFound *ModuleNotFoundError
		if errors.As(err, &notFound) {
			notFound.Specifier = specifier.Value
			notFound.Importer = current
		}
		return "", false, err
	}
	return completed, true, nil
}

// IsVendored reports whether any segment of path names a vendor directory.
func (r *Resolver) IsVendored(path ModulePath) bool {
	for _, segment := range strings.Split(filepath.ToSlash(string(path)), "/") {
		if r.vendorDirs[segment] {
			return true
		}
	}
	return false
}

// Complete maps a normalized path to an existing file. A path naming an existing
// file with an extension is kept. A directory resolves to its first existing
// index<ext>; anything else to the first existing <path><ext>.
func Complete(path string, candidates []string) (ModulePath, error) {
	info, err := os.Stat(path)
	if err == nil && info.Mode().IsRegular() && filepath.Ext(path) != "" {
		return ModulePath(path), nil
	}

	base := path
	if err == nil && info.IsDir() {
		base = filepath.Join(path, "index")
	}

	tried := make([]string, 0, len(candidates))
	for _, ext := range candidates {
		candidate := base + ext
		tried = append(tried, candidate)
		if isRegularFile(candidate) {
			return ModulePath(candidate), nil
		}
	}

	return "", &ModuleNotFoundError{Path: path, Tried: tried}
}

// candidateExtensions returns the completion priority for references made by importer.
func candidateExtensions(importer ModulePath) []string {
	module, ok := registry.ModuleForExtension(importer.Ext())
	if ok && module.Kind() == langsupport.KindStylesheet {
		return module.CandidateExtensions(importer.Ext())
	}
	return langsupport.ScriptCandidateExtensions()
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
