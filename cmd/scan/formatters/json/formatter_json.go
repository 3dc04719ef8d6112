package json

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
)

// Report is the JSON document written by the json format. Paths are relative to Root.
type Report struct {
	RunID   string     `json:"runId"`
	Root    string     `json:"root"`
	Summary Summary    `json:"summary"`
	Entries []string   `json:"entries"`
	Used    []string   `json:"used"`
	Unused  []string   `json:"unused"`
	Cycles  [][]string `json:"cycles"`
	Edges   []Edge     `json:"edges"`
}

// Summary counts the files in each classification.
type Summary struct {
	Files   int `json:"files"`
	Entries int `json:"entries"`
	Used    int `json:"used"`
	Unused  int `json:"unused"`
	Cycles  int `json:"cycles"`
}

// Edge is one resolved reference.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Formatter formats analysis results as JSON.
type Formatter struct{}

// NewReport converts an analysis result to its JSON document.
func NewReport(r *depgraph.Result) (Report, error) {
	root := string(r.Root)
	rel := func(paths []depgraph.ModulePath) []string {
		result := make([]string, len(paths))
		for i, path := range paths {
			result[i] = path.Rel(root)
		}
		return result
	}

	adjacency, err := depgraph.AdjacencyList(r.Graph)
	if err != nil {
		return Report{}, err
	}
	edges := []Edge{}
	for _, from := range depgraph.SortedVertices(adjacency) {
		for _, to := range adjacency[from] {
			edges = append(edges, Edge{
				From: depgraph.ModulePath(from).Rel(root),
				To:   depgraph.ModulePath(to).Rel(root),
			})
		}
	}

	cycles := make([][]string, len(r.Cycles))
	for i, cycle := range r.Cycles {
		cycles[i] = rel(cycle.Modules)
	}

	return Report{
		RunID: r.RunID,
		Root:  root,
		Summary: Summary{
			Files:   len(r.All),
			Entries: len(r.Entries),
			Used:    len(r.Used),
			Unused:  len(r.Unused),
			Cycles:  len(r.Cycles),
		},
		Entries: rel(r.Entries),
		Used:    rel(r.Used),
		Unused:  rel(r.Unused),
		Cycles:  cycles,
		Edges:   edges,
	}, nil
}

// Format converts the analysis result to indented JSON.
func (f *Formatter) Format(r *depgraph.Result, _ formatters.RenderOptions) (string, error) {
	report, err := NewReport(r)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
