package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/tui"
	"github.com/toolvm/toolvm/src/internal/ui"
)

var installedCmd = &cobra.Command{
	Use:     "list-installed <runtime> [version]",
	Aliases: []string{"installed"},
	Short:   "List installed versions",
	Long: `List the installed versions of a runtime, newest first. An optional
loose version narrows the list. The default version is highlighted.

Examples:
  toolvm list-installed node
  toolvm installed go 1.23`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := resolveProvider(args[0])
		if err != nil {
			return err
		}

		spec := ""
		if len(args) == 2 {
			spec = args[1]
		}

		p, _, err := newPipeline()
		if err != nil {
			return err
		}

		installs, err := p.ListInstalled(provider, spec)
		if err != nil {
			return err
		}
		if len(installs) == 0 {
			ui.Info("No %s versions installed", provider.DisplayName())
			ui.Info("Install one with: toolvm add %s <version>", provider.Name())
			return nil
		}

		table := tui.NewTable("Version", "Status")
		table.SetTitle(provider.DisplayName())

		for _, inst := range installs {
			if inst.IsDefault {
				table.AddActiveRow(inst.VersionString, "default")
			} else {
				table.AddRow(inst.VersionString, "")
			}
		}

		fmt.Println(table.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installedCmd)
}
