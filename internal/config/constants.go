package config

// Default values for configuration sections.
const (
	DefaultDebounceSeconds  = 3.0
	DefaultHTTPTimeoutSecs  = 10
	DefaultLoginEndpoint    = "/api/auth"
	DefaultFirstRunExitCode = 1

	DefaultHashFile    = "/tmp/pi_hole_config_hash/config.md5"
	DefaultSessionFile = "/tmp/pi_hole_config_hash/sid.json"
)

// DefaultEndpoints is the fixed, ordered list of Pi-hole API resources that
// contribute to the summary hash. Order is significant: the combined digest
// is computed over the per-endpoint digests in this order.
var DefaultEndpoints = []string{
	"/api/config",
	"/api/dhcp/leases",
	"/api/groups",
	"/api/lists",
	"/api/domains",
	"/api/clients",
}

// Environment variable names recognized as overrides for the corresponding
// config fields. These take precedence over values from the config file.
const (
	EnvWatchDir       = "WATCH_DIR"
	EnvWatchInclude   = "WATCH_INCLUDE"
	EnvWatchExclude   = "WATCH_EXCLUDE"
	EnvDebounceTime   = "DEBOUNCE_TIME"
	EnvOnChangeCmd    = "ONCHANGE_CMD"
	EnvPiholeAPIURL   = "PIHOLE_API_URL"
	EnvPiholePassword = "PIHOLE_PASSWORD"
	EnvConfigPath     = "PIHOLEWATCH_CONFIG_PATH"
)
