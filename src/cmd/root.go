// Package cmd implements the CLI commands for toolvm
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/download"
	"github.com/toolvm/toolvm/src/internal/pipeline"
	"github.com/toolvm/toolvm/src/internal/runtime"
	"github.com/toolvm/toolvm/src/internal/store"
	"github.com/toolvm/toolvm/src/internal/tui"
	"github.com/toolvm/toolvm/src/internal/ui"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "toolvm",
	Short: "Toolchain version manager",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetVerbose(verbose)
	},
}

func Execute() {
	// Check for --version or -v flag before Cobra parses
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			versionCmd.Run(versionCmd, []string{})
			return
		}
	}

	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Hide the completion command until we implement it
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Errors are reported once, by Execute, with a non-zero exit
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output for debugging")

	rootCmd.SetUsageFunc(customUsage)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		_ = customUsage(cmd)
	})
}

func customUsage(cmd *cobra.Command) error {
	headerTable := tui.NewTable("")
	headerTable.SetTitle(cmd.Short)
	headerTable.HideHeader()
	headerTable.AddRow("toolvm installs and switches between versions of node, zig and go,")
	headerTable.AddRow("keeping each runtime's installs side by side under a single store.")

	fmt.Println(headerTable.Render())
	fmt.Println()

	table := tui.NewTable("Command", "Description")
	table.SetTitle("Available Commands")

	for _, c := range cmd.Commands() {
		if c.Hidden || c.Name() == "completion" {
			continue
		}
		table.AddRow(c.Name(), c.Short)
	}

	fmt.Println(table.Render())

	return nil
}

// newPipeline opens the store and builds an acquisition pipeline around it.
func newPipeline() (*pipeline.Pipeline, *store.Store, error) {
	s, err := store.Open()
	if err != nil {
		return nil, nil, err
	}
	return pipeline.New(s, download.NewClient()), s, nil
}

// resolveProvider looks up a provider by name, reporting the known runtimes
// on a miss.
func resolveProvider(name string) (runtime.Provider, error) {
	provider, err := runtime.Get(name)
	if err != nil {
		ui.Info("Available runtimes: %v", runtime.List())
		return nil, err
	}
	return provider, nil
}
