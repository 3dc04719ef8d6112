package text

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle       = lipgloss.NewStyle().Bold(true)
	styleSuccess     = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning     = lipgloss.NewStyle().Foreground(colorYellow)
	styleCycle       = lipgloss.NewStyle().Foreground(colorRed)
	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
	iconCycle   = "↻"
)

// Formatter renders analysis results as a human-readable summary.
type Formatter struct {
	// Verbose also lists the used modules.
	Verbose bool
}

// Format converts the analysis result to text.
func (f *Formatter) Format(r *depgraph.Result, opts formatters.RenderOptions) (string, error) {
	root := string(r.Root)
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString(styleTitle.Render(opts.Label) + "\n\n")
	}

	if len(r.Unused) == 0 {
		sb.WriteString(styleIconSuccess.Render(iconSuccess) + " " + styleSuccess.Render("No unused files") + "\n")
	} else {
		sb.WriteString(styleIconWarning.Render(iconWarning) + " " +
			styleWarning.Render(fmt.Sprintf("%d unused %s", len(r.Unused), plural(len(r.Unused), "file", "files"))) + "\n")
		for _, path := range r.Unused {
			sb.WriteString("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path.Rel(root)) + "\n")
		}
	}

	if f.Verbose && len(r.Used) > 0 {
		sb.WriteString("\n" + styleTitle.Render("Used") + "\n")
		for _, path := range r.Used {
			sb.WriteString("  " + styleDim.Render(path.Rel(root)) + "\n")
		}
	}

	sb.WriteString("\n")
	writeKeyValue(&sb, "Files", fmt.Sprint(len(r.All)))
	writeKeyValue(&sb, "Entries", fmt.Sprint(len(r.Entries)))
	writeKeyValue(&sb, "Used", fmt.Sprint(len(r.Used)))
	writeKeyValue(&sb, "Unused", fmt.Sprint(len(r.Unused)))

	if len(r.Cycles) > 0 {
		writeKeyValue(&sb, "Cycles", fmt.Sprint(len(r.Cycles)))
		for _, cycle := range r.Cycles {
			modules := make([]string, len(cycle.Modules))
			for i, path := range cycle.Modules {
				modules[i] = path.Rel(root)
			}
			sb.WriteString("  " + styleCycle.Render(iconCycle) + " " + strings.Join(modules, ", ") + "\n")
		}
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func writeKeyValue(sb *strings.Builder, key, value string) {
	sb.WriteString(styleKey.Render(key) + " " + styleValue.Render(value) + "\n")
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
