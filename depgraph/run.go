package depgraph

import (
	"io"

	"github.com/LegacyCodeHQ/deadfiles/vcs"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// RunConfig configures a Run.
type RunConfig struct {
	OverrideHook  OverrideHook
	VendorDirs    []string
	ContentReader vcs.ContentReader
	Logger        *log.Logger
}

// Run holds the state of one analysis: the visited set shared by all entries, the
// resolver bound to it, and the module graph discovered so far. A Run is not safe
// for concurrent use and is discarded after the analysis.
type Run struct {
	id            string
	visited       *VisitedSet
	resolver      *Resolver
	graph         Graph
	contentReader vcs.ContentReader
	logger        *log.Logger
}

// NewRun creates an empty run.
func NewRun(cfg RunConfig) *Run {
	contentReader := cfg.ContentReader
	if contentReader == nil {
		contentReader = vcs.FilesystemContentReader()
	}

	id := uuid.NewString()
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	visited := NewVisitedSet()
	graph := NewGraph()
	resolver := NewResolver(cfg.OverrideHook, cfg.VendorDirs, visited)
	resolver.located = func(from, to ModulePath) error {
		return addEdge(graph, from, to)
	}

	return &Run{
		id:            id,
		visited:       visited,
		resolver:      resolver,
		graph:         graph,
		contentReader: contentReader,
		logger:        logger.With("run", id),
	}
}

// ID identifies the run in logs and reports.
func (r *Run) ID() string {
	return r.id
}

// Visited returns the run's visited set.
func (r *Run) Visited() *VisitedSet {
	return r.visited
}

// Resolver returns the resolver bound to the run's visited set.
func (r *Run) Resolver() *Resolver {
	return r.resolver
}

// Graph returns every reference resolved so far, including references to modules
// that were already visited.
func (r *Run) Graph() Graph {
	return r.graph
}

// claim records path as visited and reports whether it was new.
func (r *Run) claim(path ModulePath) bool {
	return r.visited.Add(path)
}
