package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/piholewatch/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the configuration directory and sync on real changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}
}

func runWatch() error {
	cfg, zLogger, err := loadAndValidate(true)
	if err != nil {
		return err
	}

	pipeline := buildPipeline(cfg, zLogger)

	service, err := watcher.NewService(&cfg.WatchConfig, pipeline, zLogger)
	if err != nil {
		return err
	}
	if err := service.Start(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	zLogger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")

	service.Stop()
	return nil
}
