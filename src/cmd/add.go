package cmd

import (
	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/ui"
)

var addCmd = &cobra.Command{
	Use:     "add <runtime> <version>",
	Aliases: []string{"install"},
	Short:   "Install a runtime version",
	Long: `Install the highest version of a runtime matching a loose version.

A loose version names one to three components; omitted components match
anything. If a matching version is already installed, nothing is downloaded.

Examples:
  toolvm add node 22          # highest 22.x.x
  toolvm add zig 0.13.0       # exactly 0.13.0
  toolvm install go 1.23`,
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

		ui.Debug("Adding %s %s", provider.Name(), args[1])
		return p.Add(provider, args[1])
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
