// Package analysis turns command-line flags and the config file into an analysis run.
package analysis

import (
	"fmt"

	"github.com/LegacyCodeHQ/deadfiles/config"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/LegacyCodeHQ/deadfiles/enumerate"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Flags are the analysis flags shared by the scan, why and watch commands.
type Flags struct {
	Root        string
	Entries     []string
	Include     []string
	Exclude     []string
	Aliases     []string
	VendorDirs  []string
	IgnoreTests bool
}

// Register adds the analysis flags to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Root, "root", "r", "", "Search root (default: current directory)")
	cmd.Flags().StringArrayVarP(&f.Entries, "entry", "e", nil, "Entry module relative to the root (repeatable)")
	cmd.Flags().StringSliceVarP(&f.Include, "include", "i", nil, "Glob patterns selecting the files to check (comma-separated, default: **/*)")
	cmd.Flags().StringSliceVarP(&f.Exclude, "exclude", "x", nil, "Glob patterns of files to leave out (comma-separated)")
	cmd.Flags().StringArrayVarP(&f.Aliases, "alias", "a", nil, "Rewrite specifiers starting with an alias, as from=to (repeatable)")
	cmd.Flags().StringSliceVar(&f.VendorDirs, "vendor-dir", nil, "Directory names never analyzed (default: node_modules)")
	cmd.Flags().BoolVar(&f.IgnoreTests, "ignore-tests", false, "Never report test files as unused")
}

// Config loads the config file named by the persistent --config flag and applies
// the flags and positional entries on top of it.
func (f *Flags) Config(cmd *cobra.Command, positionalEntries []string) (*config.Config, error) {
	configPath := ""
	if flag := cmd.Flags().Lookup("config"); flag != nil {
		configPath = flag.Value.String()
	}

	fileConfig, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var aliases map[string]string
	for _, value := range f.Aliases {
		from, to, err := config.ParseAlias(value)
		if err != nil {
			return nil, err
		}
		if aliases == nil {
			aliases = make(map[string]string)
		}
		aliases[from] = to
	}

	entries := append(append([]string(nil), f.Entries...), positionalEntries...)
	return config.Merge(fileConfig, config.Config{
		Root:        f.Root,
		Entries:     entries,
		Include:     f.Include,
		Exclude:     f.Exclude,
		VendorDirs:  f.VendorDirs,
		IgnoreTests: f.IgnoreTests,
		Aliases:     aliases,
	}), nil
}

// Options builds the depgraph options for cfg.
func Options(cfg *config.Config, logger *log.Logger) (depgraph.Options, error) {
	if len(cfg.Entries) == 0 {
		return depgraph.Options{}, fmt.Errorf("no entry modules given: pass them as arguments, with --entry, or as entries in %s", config.DefaultFileName)
	}

	root, err := cfg.RootDir()
	if err != nil {
		return depgraph.Options{}, err
	}

	hook, err := cfg.OverrideHook()
	if err != nil {
		return depgraph.Options{}, fmt.Errorf("invalid aliases: %w", err)
	}

	vendorDirs := cfg.VendorDirs
	if len(vendorDirs) == 0 {
		vendorDirs = depgraph.DefaultVendorDirs
	}

	return depgraph.Options{
		SearchRoot:         root,
		Entries:            cfg.Entries,
		IncludePatterns:    cfg.Include,
		ExcludePatterns:    cfg.Exclude,
		ModuleOverrideHook: hook,
		VendorDirs:         vendorDirs,
		IgnoreTestFiles:    cfg.IgnoreTests,
		Enumerator:         enumerate.NewGlob(vendorDirs),
		Logger:             logger,
	}, nil
}

// Run loads settings for cmd and analyzes the project.
func Run(cmd *cobra.Command, flags *Flags, positionalEntries []string, logger *log.Logger) (*config.Config, *depgraph.Result, error) {
	cfg, err := flags.Config(cmd, positionalEntries)
	if err != nil {
		return nil, nil, err
	}

	opts, err := Options(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	result, err := depgraph.Analyze(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("analysis failed: %w", err)
	}
	return cfg, result, nil
}
