package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aleister1102/piholewatch/internal/errorwrapper"
	"gopkg.in/yaml.v3"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. -config command-line flag (passed in as providedPath)
// 2. PIHOLEWATCH_CONFIG_PATH environment variable
// 3. config.yaml / config.json in the current working directory
// 4. config.yaml / config.json in the executable's directory
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		if _, err := os.Stat(providedPath); err == nil {
			return providedPath
		}
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	cwd, errCwd := os.Getwd()
	exeDir := ""
	if exePath, errExe := os.Executable(); errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	locations := []string{}
	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exeDir != "" && exeDir != cwd {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range []string{"config.yaml", "config.json"} {
			path := filepath.Join(loc, file)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadConfig loads configuration from a file (if one is found) and then
// applies environment variable overrides. A missing config file is not an
// error: the environment alone can fully configure the watcher.
func LoadConfig(providedPath string) (*Config, error) {
	cfg := NewDefaultConfig()

	filePath := GetConfigPath(providedPath)
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to read config file "+filePath)
		}
		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseConfigContent parses config data based on the file extension.
// YAML is preferred; JSON is accepted for .json files.
func parseConfigContent(data []byte, filePath string, cfg *Config) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return errorwrapper.WrapError(err, "failed to parse JSON config "+filePath)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errorwrapper.WrapError(err, "failed to parse YAML config "+filePath)
	}
	return nil
}

// applyEnvOverrides layers environment variables over the loaded config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvWatchDir); v != "" {
		abs, err := filepath.Abs(v)
		if err != nil {
			return errorwrapper.NewValidationError(EnvWatchDir, v, "cannot resolve watch directory")
		}
		cfg.WatchConfig.WatchDir = abs
	}
	if v := os.Getenv(EnvWatchInclude); v != "" {
		cfg.WatchConfig.IncludePattern = v
	}
	if v := os.Getenv(EnvWatchExclude); v != "" {
		cfg.WatchConfig.ExcludePattern = v
	}
	if v := os.Getenv(EnvDebounceTime); v != "" {
		seconds, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errorwrapper.NewValidationError(EnvDebounceTime, v, "must be a number of seconds")
		}
		cfg.WatchConfig.DebounceSeconds = seconds
	}
	if v := os.Getenv(EnvOnChangeCmd); v != "" {
		cfg.WatchConfig.OnChangeCmd = v
	}
	if v := os.Getenv(EnvPiholeAPIURL); v != "" {
		cfg.PiholeConfig.APIURL = v
	}
	if v := os.Getenv(EnvPiholePassword); v != "" {
		cfg.PiholeConfig.Password = v
	}
	return nil
}
