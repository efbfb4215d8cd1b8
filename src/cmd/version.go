package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/tui"
)

// Version can be set at build time using ldflags
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the toolvm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("toolvm %s\n", tui.RenderVersion(Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
