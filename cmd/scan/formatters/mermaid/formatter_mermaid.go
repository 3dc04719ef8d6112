package mermaid

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
)

// Formatter formats analysis results as Mermaid.js flowcharts.
type Formatter struct{}

// Format converts the analysis result to Mermaid.js flowchart format.
func (f *Formatter) Format(r *depgraph.Result, opts formatters.RenderOptions) (string, error) {
	view, err := formatters.NewGraphView(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	names := view.NodeNames()
	for i, cycle := range r.Cycles {
		parts := make([]string, 0, len(cycle.Modules))
		for _, path := range cycle.Modules {
			parts = append(parts, names[string(path)])
		}
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(parts, ", ")))
	}

	// Mermaid node IDs can't have dots or special characters.
	nodeIDs := make(map[string]string, len(view.Nodes))
	var entryNodes, unusedNodes, cycleNodes []string
	for i, node := range view.Nodes {
		nodeID := fmt.Sprintf("n%d", i)
		nodeIDs[node.Path] = nodeID

		label := strings.ReplaceAll(node.Name, "\"", "#quot;")
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeID, label))

		switch node.Status {
		case formatters.StatusEntry:
			entryNodes = append(entryNodes, nodeID)
		case formatters.StatusUnused:
			unusedNodes = append(unusedNodes, nodeID)
		}
		if node.Cycle != 0 {
			cycleNodes = append(cycleNodes, nodeID)
		}
	}

	var cycleEdgeIndices []int
	if len(view.Edges) > 0 {
		sb.WriteString("\n")
		for i, edge := range view.Edges {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[edge.From], nodeIDs[edge.To]))
			if edge.InCycle {
				cycleEdgeIndices = append(cycleEdgeIndices, i)
			}
		}
	}

	var styles strings.Builder
	if len(entryNodes) > 0 {
		styles.WriteString("    classDef entry fill:#98FB98,stroke:#228B22,color:#000000\n")
	}
	if len(unusedNodes) > 0 {
		styles.WriteString("    classDef unused fill:#FFE4E1,stroke:#666666,color:#000000,stroke-dasharray: 5 5\n")
	}
	if len(entryNodes) > 0 {
		styles.WriteString(fmt.Sprintf("    class %s entry\n", strings.Join(entryNodes, ",")))
	}
	if len(unusedNodes) > 0 {
		styles.WriteString(fmt.Sprintf("    class %s unused\n", strings.Join(unusedNodes, ",")))
	}
	for _, nodeID := range cycleNodes {
		styles.WriteString(fmt.Sprintf("    style %s stroke:#d62728,stroke-width:3px\n", nodeID))
	}
	for _, idx := range cycleEdgeIndices {
		styles.WriteString(fmt.Sprintf("    linkStyle %d stroke:#d62728,stroke-width:3px,stroke-dasharray: 5 5\n", idx))
	}

	if styles.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.String())
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
