package formatters

import (
	"sort"

	"github.com/LegacyCodeHQ/deadfiles/depgraph"
)

// Status classifies a node in a rendered report.
type Status int

const (
	StatusUsed Status = iota
	StatusEntry
	StatusUnused
)

func (s Status) String() string {
	switch s {
	case StatusEntry:
		return "entry"
	case StatusUnused:
		return "unused"
	default:
		return "used"
	}
}

// Node is one module drawn in a graph report.
type Node struct {
	Path   string
	Name   string
	Status Status
	// Cycle is the 1-based index of the cycle holding the module, or 0.
	Cycle int
}

// Edge is one resolved reference between two drawn modules.
type Edge struct {
	From    string
	To      string
	InCycle bool
}

// GraphView is the drawable form of an analysis result: reached modules with their
// references plus the unused files, sorted by path.
type GraphView struct {
	Nodes []Node
	Edges []Edge
}

// NewGraphView builds the drawable view of r.
func NewGraphView(r *depgraph.Result) (GraphView, error) {
	adjacency, err := depgraph.AdjacencyList(r.Graph)
	if err != nil {
		return GraphView{}, err
	}

	statuses := make(map[string]Status, len(adjacency)+len(r.Unused))
	for path := range adjacency {
		statuses[path] = StatusUsed
	}
	for _, path := range r.Entries {
		statuses[string(path)] = StatusEntry
	}
	for _, path := range r.Unused {
		statuses[string(path)] = StatusUnused
	}

	cycleOf := make(map[string]int)
	for i, cycle := range r.Cycles {
		for _, path := range cycle.Modules {
			cycleOf[string(path)] = i + 1
		}
	}

	paths := make([]string, 0, len(statuses))
	for path := range statuses {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	relPaths := make([]string, len(paths))
	for i, path := range paths {
		relPaths[i] = depgraph.ModulePath(path).Rel(string(r.Root))
	}
	names := BuildNodeNames(relPaths)

	view := GraphView{Nodes: make([]Node, len(paths))}
	for i, path := range paths {
		view.Nodes[i] = Node{
			Path:   path,
			Name:   names[relPaths[i]],
			Status: statuses[path],
			Cycle:  cycleOf[path],
		}
	}

	for _, from := range paths {
		for _, to := range adjacency[from] {
			view.Edges = append(view.Edges, Edge{
				From:    from,
				To:      to,
				InCycle: cycleOf[from] != 0 && cycleOf[from] == cycleOf[to],
			})
		}
	}

	return view, nil
}

// NodeNames maps node paths to their display names.
func (v GraphView) NodeNames() map[string]string {
	names := make(map[string]string, len(v.Nodes))
	for _, node := range v.Nodes {
		names[node.Path] = node.Name
	}
	return names
}

// FileNames returns the display names of every node in order.
func (v GraphView) FileNames() []string {
	names := make([]string, len(v.Nodes))
	for i, node := range v.Nodes {
		names[i] = node.Name
	}
	return names
}
