package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/store"
	"github.com/toolvm/toolvm/src/internal/ui"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and maintain the version store",
}

var storeDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the store root directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open()
		if err != nil {
			return err
		}
		fmt.Println(s.VersionsRoot())
		return nil
	},
}

var storeCacheDirCmd = &cobra.Command{
	Use:   "cache-dir",
	Short: "Print the download cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open()
		if err != nil {
			return err
		}
		fmt.Println(s.CacheRoot())
		return nil
	},
}

var storeClearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Delete cached downloads and scratch directories",
	Long: `Delete everything under the download cache. Installed versions are
not touched; the next add re-downloads what it needs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open()
		if err != nil {
			return err
		}

		removed, err := s.ClearCache()
		if err != nil {
			return err
		}
		ui.Success("Removed %d cache entries", removed)
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storeDirCmd)
	storeCmd.AddCommand(storeCacheDirCmd)
	storeCmd.AddCommand(storeClearCacheCmd)
	rootCmd.AddCommand(storeCmd)
}
