package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes shared by the commands. Check-specific codes (0 unchanged,
// 1 changed, configurable first-run, 3 error) come from the check result.
const exitConfigError = 2

var configFlag string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "piholewatch",
		Short:         "Watch Pi-hole configuration files and trigger sync commands on changes",
		Long:          "piholewatch watches a directory of Pi-hole configuration files, debounces rapid event bursts, verifies against the Pi-hole API whether the configuration actually changed, and executes an optional follow-up command when it did.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")

	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newCheckCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConfigError)
	}
}
