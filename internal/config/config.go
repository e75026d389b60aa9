package config

import (
	"github.com/aleister1102/piholewatch/internal/logger"
)

// Config contains all configuration sections for the application
type Config struct {
	WatchConfig   WatchConfig      `json:"watch_config,omitempty" yaml:"watch_config,omitempty"`
	PiholeConfig  PiholeConfig     `json:"pihole_config,omitempty" yaml:"pihole_config,omitempty"`
	StorageConfig StorageConfig    `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	LogConfig     logger.LogConfig `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		WatchConfig:   NewDefaultWatchConfig(),
		PiholeConfig:  NewDefaultPiholeConfig(),
		StorageConfig: NewDefaultStorageConfig(),
		LogConfig:     logger.NewDefaultLogConfig(),
	}
}
