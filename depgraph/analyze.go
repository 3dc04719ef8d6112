package depgraph

import (
	"io"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/registry"
	"github.com/LegacyCodeHQ/deadfiles/vcs"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// DefaultIncludePatterns is the corpus used when no include pattern is given.
var DefaultIncludePatterns = []string{"**/*"}

// FileEnumerator lists the files under root matching patterns. A pattern with a
// leading "!" excludes matches.
type FileEnumerator interface {
	Enumerate(root string, patterns []string) ([]string, error)
}

// Options configures Analyze.
type Options struct {
	// SearchRoot anchors entries and patterns. Defaults to ".".
	SearchRoot string
	Entries    []string
	// IncludePatterns defines the corpus. Defaults to DefaultIncludePatterns.
	IncludePatterns []string
	// ExcludePatterns are added to the corpus patterns as exclusions.
	ExcludePatterns    []string
	ModuleOverrideHook OverrideHook
	// VendorDirs names directories never analyzed. Defaults to DefaultVendorDirs.
	VendorDirs []string
	// IgnoreTestFiles drops test files from the corpus so they are never reported unused.
	IgnoreTestFiles bool
	Enumerator      FileEnumerator
	ContentReader   vcs.ContentReader
	Logger          *log.Logger
}

// Result classifies every corpus file as entry, used or unused.
type Result struct {
	RunID string
	Root  ModulePath
	// All is the normalized corpus in enumeration order.
	All     []ModulePath
	Entries []ModulePath
	// Used lists modules reached from an entry, in discovery order. Entries are excluded.
	Used []ModulePath
	// Unused lists corpus members that are neither entries nor used, in enumeration order.
	Unused []ModulePath
	Cycles []Cycle
	Graph  Graph
}

// Analyze traverses every entry with one shared visited set and subtracts the
// reached modules from the enumerated corpus.
func Analyze(opts Options) (*Result, error) {
	if opts.Enumerator == nil {
		return nil, errors.New("file enumerator is required")
	}

	searchRoot := opts.SearchRoot
	if searchRoot == "" {
		searchRoot = "."
	}
	root, err := NormalizePath(searchRoot)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	files, err := opts.Enumerator.Enumerate(string(root), corpusPatterns(opts.IncludePatterns, opts.ExcludePatterns))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to enumerate files under %s", root)
	}
	all, err := normalizeAll(files)
	if err != nil {
		return nil, err
	}
	if opts.IgnoreTestFiles {
		all = withoutTestFiles(all)
	}

	run := NewRun(RunConfig{
		OverrideHook:  opts.ModuleOverrideHook,
		VendorDirs:    opts.VendorDirs,
		ContentReader: opts.ContentReader,
		Logger:        logger,
	})
	runLogger := logger.With("run", run.ID())
	runLogger.Info("analyzing", "root", root, "files", len(all), "entries", len(opts.Entries))

	var discovered []ModulePath
	onVisit := func(path ModulePath) {
		discovered = append(discovered, path)
	}

	var entries []ModulePath
	entrySet := make(map[ModulePath]bool)
	for _, entry := range opts.Entries {
		path, _, err := run.TraverseEntry(string(root), entry, onVisit)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to traverse entry %s", entry)
		}
		if entrySet[path] {
			continue
		}
		entrySet[path] = true
		entries = append(entries, path)
	}

	used := make([]ModulePath, 0, len(discovered))
	for _, path := range discovered {
		if !entrySet[path] {
			used = append(used, path)
		}
	}

	cycles, err := FindCycles(run.Graph())
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:   run.ID(),
		Root:    root,
		All:     all,
		Entries: entries,
		Used:    used,
		Unused:  UnusedFiles(all, entries, used),
		Cycles:  cycles,
		Graph:   run.Graph(),
	}
	runLogger.Info("analysis complete",
		"entries", len(result.Entries),
		"used", len(result.Used),
		"unused", len(result.Unused),
		"cycles", len(result.Cycles))
	return result, nil
}

// ImportChain returns the shortest chain of references from an entry to path.
func (r *Result) ImportChain(path ModulePath) ([]ModulePath, bool) {
	return ShortestChain(r.Graph, r.Entries, path)
}

// IsEntry reports whether path is one of the run's entries.
func (r *Result) IsEntry(path ModulePath) bool {
	for _, entry := range r.Entries {
		if entry == path {
			return true
		}
	}
	return false
}

// IsUnused reports whether path was enumerated but never reached.
func (r *Result) IsUnused(path ModulePath) bool {
	for _, unused := range r.Unused {
		if unused == path {
			return true
		}
	}
	return false
}

func corpusPatterns(include, exclude []string) []string {
	if len(include) == 0 {
		include = DefaultIncludePatterns
	}
	patterns := append([]string(nil), include...)
	for _, pattern := range exclude {
		if pattern == "" {
			continue
		}
		if !strings.HasPrefix(pattern, "!") {
			pattern = "!" + pattern
		}
		patterns = append(patterns, pattern)
	}
	return patterns
}

func withoutTestFiles(paths []ModulePath) []ModulePath {
	result := make([]ModulePath, 0, len(paths))
	for _, path := range paths {
		if registry.IsTestFile(string(path)) {
			continue
		}
		result = append(result, path)
	}
	return result
}
