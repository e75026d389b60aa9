package config

import "time"

// PiholeConfig defines how to reach the Pi-hole API
type PiholeConfig struct {
	APIURL             string   `json:"api_url" yaml:"api_url" validate:"required,url"`
	Password           string   `json:"password" yaml:"password"`
	LoginEndpoint      string   `json:"login_endpoint,omitempty" yaml:"login_endpoint,omitempty"`
	Endpoints          []string `json:"endpoints,omitempty" yaml:"endpoints,omitempty" validate:"omitempty,min=1,dive,startswith=/"`
	HTTPTimeoutSeconds int      `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	InsecureSkipVerify bool     `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	FirstRunExitCode   int      `json:"first_run_exit_code,omitempty" yaml:"first_run_exit_code,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultPiholeConfig creates default Pi-hole API configuration
func NewDefaultPiholeConfig() PiholeConfig {
	return PiholeConfig{
		LoginEndpoint:      DefaultLoginEndpoint,
		Endpoints:          append([]string(nil), DefaultEndpoints...),
		HTTPTimeoutSeconds: DefaultHTTPTimeoutSecs,
		InsecureSkipVerify: false,
		FirstRunExitCode:   DefaultFirstRunExitCode,
	}
}

// HTTPTimeout returns the per-request deadline as a duration
func (pc *PiholeConfig) HTTPTimeout() time.Duration {
	if pc.HTTPTimeoutSeconds <= 0 {
		return DefaultHTTPTimeoutSecs * time.Second
	}
	return time.Duration(pc.HTTPTimeoutSeconds) * time.Second
}
