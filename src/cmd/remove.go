package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/constants"
	"github.com/toolvm/toolvm/src/internal/ui"
)

var removeYesFlag bool

var removeCmd = &cobra.Command{
	Use:     "remove <runtime> <version>",
	Aliases: []string{"uninstall", "delete"},
	Short:   "Remove an installed version",
	Long: `Delete an exact installed version of a runtime.

Removing the current default re-points the default at the highest
remaining installed version. Removing the last version leaves the
runtime with no default.

Examples:
  toolvm remove node 22.19.0
  toolvm uninstall go 1.23.4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		version := strings.TrimPrefix(args[1], "v")

		provider, err := resolveProvider(args[0])
		if err != nil {
			return err
		}

		p, s, err := newPipeline()
		if err != nil {
			return err
		}

		versionPath, installed := s.VersionDir(provider.Name(), version)
		if !installed {
			ui.Info("See installed versions with: toolvm list-installed %s", provider.Name())
			return fmt.Errorf("%s %s is not installed", provider.DisplayName(), version)
		}

		if !removeYesFlag {
			ui.Warning("This will permanently delete:")
			ui.Info("  %s", versionPath)
			fmt.Printf("\nRemove %s %s? [y/N]: ", provider.DisplayName(), version)

			var response string
			_, _ = fmt.Scanln(&response)
			response = strings.ToLower(strings.TrimSpace(response))
			if response != constants.ResponseY && response != constants.ResponseYes {
				ui.Info("Remove canceled")
				return nil
			}
		}

		if err := p.Remove(provider, version); err != nil {
			return err
		}

		ui.Success("Removed %s %s", provider.DisplayName(), version)
		if newDefault, ok := s.DefaultVersion(provider.Name()); ok {
			ui.Info("Default is now %s", ui.HighlightVersion(newDefault))
		} else {
			ui.Info("No %s versions remain", provider.DisplayName())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVarP(&removeYesFlag, "yes", "y", false, "Skip confirmation prompt")
}
