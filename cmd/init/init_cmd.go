package init

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LegacyCodeHQ/deadfiles/config"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/spf13/cobra"
)

type initOptions struct {
	dir   string
	force bool
	quiet bool
}

// Cmd represents the init command
var Cmd = NewCommand()

// NewCommand returns a new init command instance.
func NewCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init [entries...]",
		Short: "Write a starter " + config.DefaultFileName,
		Long: `Write a starter ` + config.DefaultFileName + ` listing the entry modules, so later
runs of scan, why and watch need no arguments.

With --force: Overwrites an existing config file.

Examples:
  deadfiles init src/index.js src/admin.js`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory to write the config file to")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress output")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions, entries []string) error {
	path := filepath.Join(opts.dir, config.DefaultFileName)

	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if len(entries) == 0 {
		entries = []string{"src/index.js"}
	}
	cfg := &config.Config{
		Entries:    entries,
		Include:    depgraph.DefaultIncludePatterns,
		VendorDirs: depgraph.DefaultVendorDirs,
		Format:     "text",
	}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if !opts.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "Next steps:")
		fmt.Fprintln(cmd.OutOrStdout(), "  - Review the entries and exclude patterns")
		fmt.Fprintln(cmd.OutOrStdout(), "  - Run 'deadfiles scan' to list unused files")
	}

	return nil
}
