package main

import (
	"github.com/aleister1102/piholewatch/internal/config"
	"github.com/aleister1102/piholewatch/internal/datastore"
	"github.com/aleister1102/piholewatch/internal/hasher"
	"github.com/aleister1102/piholewatch/internal/logger"
	"github.com/aleister1102/piholewatch/internal/pihole"
	"github.com/rs/zerolog"
)

// loadAndValidate loads configuration, applies env overrides, validates it,
// and builds the logger. Any failure here is a fatal configuration error.
func loadAndValidate(requireWatchDir bool) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	zLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	if !requireWatchDir {
		// The one-shot check does not watch anything; an unset watch_dir
		// must not fail validation. A placeholder satisfies the dirpath rule.
		if cfg.WatchConfig.WatchDir == "" {
			cfg.WatchConfig.WatchDir = "/"
		}
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, zLogger, err
	}

	return cfg, zLogger, nil
}

// buildPipeline wires the API client, the two state stores, and the hash
// pipeline from configuration.
func buildPipeline(cfg *config.Config, zLogger zerolog.Logger) *hasher.Pipeline {
	client := pihole.NewClientBuilder(zLogger).
		WithBaseURL(cfg.PiholeConfig.APIURL).
		WithPassword(cfg.PiholeConfig.Password).
		WithLoginEndpoint(cfg.PiholeConfig.LoginEndpoint).
		WithTimeout(cfg.PiholeConfig.HTTPTimeout()).
		WithInsecureSkipVerify(cfg.PiholeConfig.InsecureSkipVerify).
		Build()

	hashStore := datastore.NewHashStore(cfg.StorageConfig.HashFile, zLogger)
	sessionStore := datastore.NewSessionStore(cfg.StorageConfig.SessionFile, zLogger)

	return hasher.NewPipeline(client, hashStore, sessionStore, cfg.PiholeConfig.Endpoints, zLogger)
}
