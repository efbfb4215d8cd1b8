package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/tui"
	"github.com/toolvm/toolvm/src/internal/ui"
)

var remoteCmd = &cobra.Command{
	Use:     "list-remote <runtime> [version]",
	Aliases: []string{"remote"},
	Short:   "List versions available for download",
	Long: `Query a runtime's official sources and list the versions available
for this machine, newest first. An optional loose version narrows the list.
Installed versions are marked with a ✓ indicator.

Examples:
  toolvm list-remote node
  toolvm list-remote node 22
  toolvm remote zig`,
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

		p, s, err := newPipeline()
		if err != nil {
			return err
		}

		ui.Info("Fetching available versions...")

		targets, err := p.ListRemote(provider, spec)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			ui.Warning("No versions found")
			return nil
		}

		installed := make(map[string]bool)
		if installs, err := s.Installations(provider.Name()); err == nil {
			for _, inst := range installs {
				installed[inst.VersionString] = true
			}
		}
		defaultVersion, _ := s.DefaultVersion(provider.Name())

		table := tui.NewTable("", "Version", "Status")
		table.SetTitle(provider.DisplayName())

		for _, t := range targets {
			marker := ""
			if installed[t.VersionString] {
				marker = tui.GetCheckMark()
			}
			status := ""
			if t.VersionString == defaultVersion {
				status = tui.RenderMuted("default")
			}
			table.AddRow(marker, t.VersionString, status)
		}

		fmt.Println(table.Render())
		fmt.Println()
		ui.Info("Install a version with: toolvm add %s <version>", provider.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remoteCmd)
}
