package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aleister1102/piholewatch/internal/hasher"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run a single hash check and report the result via exit code",
		Long:  "check fetches the configured Pi-hole API resources, computes the summary hash, and compares it against the stored one. Exit codes: 0 unchanged, 1 changed, first-run uses the configured code (default 1), 3 on API errors.",
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(runCheck())
		},
	}
}

func runCheck() int {
	cfg, zLogger, err := loadAndValidate(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfigError
	}

	pipeline := buildPipeline(cfg, zLogger)
	result := pipeline.Check(context.Background())

	if result.Message != "" {
		stream := os.Stdout
		if result.Status == hasher.StatusError {
			stream = os.Stderr
		}
		fmt.Fprintln(stream, result.Message)
	}

	return result.Status.ExitCode(cfg.PiholeConfig.FirstRunExitCode)
}
