package cmd

import (
	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/download"
	"github.com/toolvm/toolvm/src/internal/selfupdate"
	"github.com/toolvm/toolvm/src/internal/store"
)

var selfupdateCmd = &cobra.Command{
	Use:   "selfupdate",
	Short: "Update toolvm to the latest release",
	Long: `Check the release feed for a newer toolvm and replace the running
executable with it. The downloaded archive is checksum-verified before the
current binary is touched; when the feed version is not newer, nothing is
downloaded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open()
		if err != nil {
			return err
		}

		updater := selfupdate.New(s, download.NewClient(), Version)
		return updater.Run()
	},
}

func init() {
	rootCmd.AddCommand(selfupdateCmd)
}
