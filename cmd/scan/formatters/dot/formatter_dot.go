package dot

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
)

// Formatter formats analysis results as Graphviz DOT.
type Formatter struct{}

// Format converts the analysis result to Graphviz DOT format.
func (f *Formatter) Format(r *depgraph.Result, opts formatters.RenderOptions) (string, error) {
	view, err := formatters.NewGraphView(r)
	if err != nil {
		return "", err
	}
	return Render(view, opts), nil
}

// Render writes a graph view as DOT.
func Render(view formatters.GraphView, opts formatters.RenderOptions) string {
	var sb strings.Builder
	sb.WriteString("digraph deadfiles {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	fileNames := view.FileNames()
	extensionColors := formatters.ExtensionColors(fileNames)
	majorityExtension := formatters.MajorityExtension(fileNames)
	hasMultipleExtensions := len(extensionColors) > 1

	for _, node := range view.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", node.Name)}

		switch node.Status {
		case formatters.StatusEntry:
			attrs = append(attrs, "style=filled", "fillcolor="+formatters.EntryColor)
		case formatters.StatusUnused:
			attrs = append(attrs, `style="filled,dashed"`, "fillcolor="+formatters.UnusedColor, "color=gray40")
		default:
			color := formatters.DefaultColor
			ext := filepath.Ext(node.Name)
			if hasMultipleExtensions && ext != majorityExtension {
				if extColor, ok := extensionColors[ext]; ok {
					color = extColor
				}
			}
			attrs = append(attrs, "style=filled", "fillcolor="+color)
		}
		if node.Cycle != 0 {
			attrs = append(attrs, "color=red", "penwidth=2")
		}

		sb.WriteString(fmt.Sprintf("  %q [%s];\n", node.Name, strings.Join(attrs, ", ")))
	}

	if len(view.Edges) > 0 {
		sb.WriteString("\n")
	}

	names := view.NodeNames()
	for _, edge := range view.Edges {
		if edge.InCycle {
			sb.WriteString(fmt.Sprintf("  %q -> %q [color=red, penwidth=2];\n", names[edge.From], names[edge.To]))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %q -> %q;\n", names[edge.From], names[edge.To]))
	}

	sb.WriteString("}")
	return sb.String()
}
