package depgraph

import (
	"sort"

	"github.com/cockroachdb/errors"
	graphlib "github.com/dominikbraun/graph"
)

// Graph is the directed module graph of one run. Vertices are module paths and an
// edge A -> B means A references B.
type Graph = graphlib.Graph[string, string]

// NewGraph creates an empty directed module graph.
func NewGraph() Graph {
	return graphlib.New(graphlib.StringHash, graphlib.Directed())
}

func addVertex(g Graph, path ModulePath) error {
	if err := g.AddVertex(string(path)); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return errors.Wrapf(err, "failed to add module %s", path)
	}
	return nil
}

func addEdge(g Graph, from, to ModulePath) error {
	if err := addVertex(g, from); err != nil {
		return err
	}
	if err := addVertex(g, to); err != nil {
		return err
	}
	if err := g.AddEdge(string(from), string(to)); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "failed to add reference %s -> %s", from, to)
	}
	return nil
}

// AdjacencyList returns every vertex with its sorted direct references.
func AdjacencyList(g Graph) (map[string][]string, error) {
	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	adjacency := make(map[string][]string, len(adjacencyMap))
	for from, targets := range adjacencyMap {
		deps := make([]string, 0, len(targets))
		for to := range targets {
			deps = append(deps, to)
		}
		sort.Strings(deps)
		adjacency[from] = deps
	}
	return adjacency, nil
}

// SortedVertices returns the graph's vertices in lexical order.
func SortedVertices(adjacency map[string][]string) []string {
	vertices := make([]string, 0, len(adjacency))
	for vertex := range adjacency {
		vertices = append(vertices, vertex)
	}
	sort.Strings(vertices)
	return vertices
}

// Cycle is a set of modules that reference each other, directly or transitively.
type Cycle struct {
	Modules []ModulePath
}

// FindCycles returns the strongly connected components that contain a cycle:
// components with more than one module and modules that reference themselves.
// Modules within a cycle and the cycles themselves are sorted.
func FindCycles(g Graph) ([]Cycle, error) {
	components, err := graphlib.StronglyConnectedComponents(g)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute strongly connected components")
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	var cycles []Cycle
	for _, component := range components {
		if len(component) == 1 {
			if _, selfEdge := adjacency[component[0]][component[0]]; !selfEdge {
				continue
			}
		}

		sort.Strings(component)
		modules := make([]ModulePath, len(component))
		for i, vertex := range component {
			modules[i] = ModulePath(vertex)
		}
		cycles = append(cycles, Cycle{Modules: modules})
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Modules[0] < cycles[j].Modules[0]
	})
	return cycles, nil
}

// ShortestChain returns the shortest reference chain from any of sources to target,
// inclusive of both ends. Ties between sources are broken by their order.
func ShortestChain(g Graph, sources []ModulePath, target ModulePath) ([]ModulePath, bool) {
	if _, err := g.Vertex(string(target)); err != nil {
		return nil, false
	}

	var best []string
	for _, source := range sources {
		if source == target {
			return []ModulePath{target}, true
		}
		if _, err := g.Vertex(string(source)); err != nil {
			continue
		}

		path, err := graphlib.ShortestPath(g, string(source), string(target))
		if err != nil || len(path) == 0 {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}

	if best == nil {
		return nil, false
	}
	chain := make([]ModulePath, len(best))
	for i, vertex := range best {
		chain[i] = ModulePath(vertex)
	}
	return chain, true
}
