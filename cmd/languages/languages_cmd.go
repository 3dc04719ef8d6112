package languages

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/LegacyCodeHQ/deadfiles/depgraph/registry"
	"github.com/spf13/cobra"
)

// Cmd represents the languages command.
var Cmd = NewCommand()

// NewCommand returns a new languages command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List all supported languages and file extensions",
		Long: `List the module kinds whose references are followed, their file extensions
and how mature their support is. Files with other extensions are still checked
for use but never parsed.

Examples:
  deadfiles languages`,
		RunE: runLanguages,
	}

	return cmd
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	languages := registry.SupportedLanguages()

	for _, language := range languages {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%s] (%s) %s\n",
			language.Maturity.Symbol(),
			language.Name,
			language.Kind,
			strings.Join(language.Extensions, ", "),
			language.Maturity.DisplayName()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", langsupport.MaturityLegend())
	return err
}
