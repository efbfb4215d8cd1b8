package cmd

import (
	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/ui"
)

var useCmd = &cobra.Command{
	Use:   "use <runtime> <version>",
	Short: "Switch the default version of a runtime",
	Long: `Point a runtime's default at the highest installed version matching
a loose version. Only installed versions are considered; use 'toolvm add'
first if nothing matches.

Examples:
  toolvm use node 22
  toolvm use zig 0.13.0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := resolveProvider(args[0])
		if err != nil {
			return err
		}

		p, _, err := newPipeline()
		if err != nil {
			return err
		}

		version, err := p.Use(provider, args[1])
		if err != nil {
			ui.Info("See installed versions with: toolvm list-installed %s", provider.Name())
			return err
		}

		ui.Success("%s default is now %s", provider.DisplayName(), ui.HighlightVersion(version))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
