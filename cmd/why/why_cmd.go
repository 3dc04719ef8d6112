package why

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/cmd/internal/analysis"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/LegacyCodeHQ/deadfiles/internal/logging"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// Verdict statuses reported for the queried file.
const (
	statusEntry  = "entry"
	statusUsed   = "used"
	statusUnused = "unused"
)

type whyOptions struct {
	analysis     analysis.Flags
	outputFormat string
}

// verdict explains why a file is or is not reachable.
type verdict struct {
	File   string   `json:"file"`
	Status string   `json:"status"`
	Chain  []string `json:"chain,omitempty"`
}

// Cmd represents the why command.
var Cmd = NewCommand()

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &whyOptions{
		outputFormat: formatText,
	}

	cmd := &cobra.Command{
		Use:   "why <file>",
		Short: "Explain why a file is used or unused",
		Long: `Show the shortest chain of references from an entry module to a file, or
report that the file is an entry or that nothing reaches it.

The file path is relative to the search root.

Examples:
  deadfiles why src/lib/util.js -e src/index.js
  deadfiles why styles/old.css -e src/index.js -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0])
		},
	}

	opts.analysis.Register(cmd)
	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s)", supportedFormats()))

	return cmd
}

func runWhy(cmd *cobra.Command, opts *whyOptions, fileArg string) error {
	if !isSupportedFormat(opts.outputFormat) {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, supportedFormats())
	}

	_, result, err := analysis.Run(cmd, &opts.analysis, nil, logging.FromContext(cmd.Context()))
	if err != nil {
		return err
	}

	target, err := resolveTarget(string(result.Root), fileArg)
	if err != nil {
		return fmt.Errorf("failed to resolve file %q: %w", fileArg, err)
	}

	v, err := explain(result, target)
	if err != nil {
		return err
	}

	switch opts.outputFormat {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode verdict: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), renderText(v))
	}
	return nil
}

func resolveTarget(root, fileArg string) (depgraph.ModulePath, error) {
	path := filepath.FromSlash(fileArg)
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return depgraph.NormalizePath(path)
}

func explain(result *depgraph.Result, target depgraph.ModulePath) (verdict, error) {
	root := string(result.Root)
	v := verdict{File: target.Rel(root)}

	switch {
	case result.IsEntry(target):
		v.Status = statusEntry
	case result.IsUnused(target):
		v.Status = statusUnused
	default:
		chain, ok := result.ImportChain(target)
		if !ok {
			return verdict{}, fmt.Errorf("%s is not among the analyzed files", v.File)
		}
		v.Status = statusUsed
		for _, path := range chain {
			v.Chain = append(v.Chain, path.Rel(root))
		}
	}
	return v, nil
}

func renderText(v verdict) string {
	switch v.Status {
	case statusEntry:
		return fmt.Sprintf("%s is an entry module", v.File)
	case statusUnused:
		return fmt.Sprintf("%s is unused: no entry module reaches it", v.File)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s is used, reached from %s:\n", v.File, v.Chain[0]))
	for i, path := range v.Chain {
		if i == 0 {
			sb.WriteString("  " + path + "\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s→ %s\n", strings.Repeat("  ", i-1), path))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func supportedFormats() string {
	return strings.Join([]string{formatText, formatJSON}, ", ")
}

func isSupportedFormat(format string) bool {
	return format == formatText || format == formatJSON
}
