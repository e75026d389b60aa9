package config

import "time"

// WatchConfig defines configuration for the filesystem watcher
type WatchConfig struct {
	WatchDir        string  `json:"watch_dir" yaml:"watch_dir" validate:"required,dirpath"`
	IncludePattern  string  `json:"include_pattern,omitempty" yaml:"include_pattern,omitempty" validate:"omitempty,regexp"`
	ExcludePattern  string  `json:"exclude_pattern,omitempty" yaml:"exclude_pattern,omitempty" validate:"omitempty,regexp"`
	DebounceSeconds float64 `json:"debounce_seconds,omitempty" yaml:"debounce_seconds,omitempty" validate:"omitempty,gt=0"`
	OnChangeCmd     string  `json:"onchange_cmd,omitempty" yaml:"onchange_cmd,omitempty"`
}

// NewDefaultWatchConfig creates default watch configuration
func NewDefaultWatchConfig() WatchConfig {
	return WatchConfig{
		DebounceSeconds: DefaultDebounceSeconds,
	}
}

// Debounce returns the quiet period as a duration
func (wc *WatchConfig) Debounce() time.Duration {
	if wc.DebounceSeconds <= 0 {
		return time.Duration(DefaultDebounceSeconds * float64(time.Second))
	}
	return time.Duration(wc.DebounceSeconds * float64(time.Second))
}
