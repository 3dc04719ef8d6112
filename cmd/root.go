package cmd

import (
	"os"

	initcmd "github.com/LegacyCodeHQ/deadfiles/cmd/init"
	"github.com/LegacyCodeHQ/deadfiles/cmd/languages"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan"
	"github.com/LegacyCodeHQ/deadfiles/cmd/watch"
	"github.com/LegacyCodeHQ/deadfiles/cmd/why"
	"github.com/LegacyCodeHQ/deadfiles/internal/logging"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// configPath is the persistent --config flag
var configPath string

// verbose is the persistent --verbose flag
var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadfiles",
		Short: "Find files that nothing in your front-end codebase references",
		Long: `deadfiles follows imports, requires, stylesheet @imports and url() references
from a set of entry modules and reports every file under the search root that
is never reached.

Use 'deadfiles --help' to see all available commands, or 'deadfiles <command> --help'
for detailed information about a specific command.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(cmd.ErrOrStderr(), logging.Level(verbose))
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	// Register subcommands
	cmd.AddCommand(initcmd.NewCommand())
	cmd.AddCommand(scan.NewCommand())
	cmd.AddCommand(why.NewCommand())
	cmd.AddCommand(watch.NewCommand())
	cmd.AddCommand(languages.NewCommand())

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .deadfiles.toml in the working directory)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every visited module")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
