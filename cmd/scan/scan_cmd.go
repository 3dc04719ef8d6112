package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LegacyCodeHQ/deadfiles/cmd/internal/analysis"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/LegacyCodeHQ/deadfiles/internal/logging"
	"github.com/spf13/cobra"
)

// errUnusedFilesFound is returned by --fail-on-unused when the scan finds dead files.
var errUnusedFilesFound = errors.New("unused files found")

type scanOptions struct {
	analysis     analysis.Flags
	outputFormat string
	outputPath   string
	failOnUnused bool
	listUsed     bool
}

// Cmd represents the scan command
var Cmd = NewCommand()

// NewCommand returns a new scan command instance.
func NewCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [entries...]",
		Short: "Find files that no entry module reaches",
		Long: `Follow imports, requires, stylesheet @imports and url() references from the
entry modules and report every file under the root that is never reached.

Examples:
  deadfiles scan src/index.js
  deadfiles scan -e src/index.js -e src/admin.js -x "**/*.stories.js"
  deadfiles scan src/main.ts -a @=src -f json -o report.json
  deadfiles scan src/index.js -f svg -o graph.svg
  deadfiles scan src/index.js --fail-on-unused`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args)
		},
	}

	opts.analysis.Register(cmd)
	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		"",
		fmt.Sprintf("Output format (%s) (default: text)", formatters.SupportedFormats()))
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.failOnUnused, "fail-on-unused", false, "Exit with an error when unused files are found")
	cmd.Flags().BoolVar(&opts.listUsed, "list-used", false, "Also list used files in the text report")

	return cmd
}

func runScan(cmd *cobra.Command, opts *scanOptions, args []string) error {
	logger := logging.FromContext(cmd.Context())

	cfg, result, err := analysis.Run(cmd, &opts.analysis, args, logger)
	if err != nil {
		return err
	}

	format := opts.outputFormat
	if format == "" {
		format = cfg.Format
	}
	if format == "" {
		format = formatters.OutputFormatText.String()
	}

	formatter, err := NewFormatter(format, opts.listUsed)
	if err != nil {
		return err
	}

	output, err := formatter.Format(result, formatters.RenderOptions{Label: buildLabel(result)})
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if err := emitOutput(cmd, opts, output); err != nil {
		return err
	}

	if opts.failOnUnused && len(result.Unused) > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%w: %d", errUnusedFilesFound, len(result.Unused))
	}
	return nil
}

func emitOutput(cmd *cobra.Command, opts *scanOptions, output string) error {
	if opts.outputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	if err := os.WriteFile(opts.outputPath, []byte(output+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logging.FromContext(cmd.Context()).Info("report written", "path", opts.outputPath)
	return nil
}

func buildLabel(result *depgraph.Result) string {
	label := rootLabelName(string(result.Root))

	if len(result.All) == 1 {
		label += " • 1 file"
	} else {
		label += fmt.Sprintf(" • %d files", len(result.All))
	}
	return label + fmt.Sprintf(" • %d unused", len(result.Unused))
}

func rootLabelName(root string) string {
	name := filepath.Base(filepath.Clean(root))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "root"
	}
	return name
}
