package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names. These match the knobs of the original local
// proxy so existing setups keep working.
const (
	// EnvAPIKey holds the DeepSeek API key.
	EnvAPIKey = "DEEPSEEK_KEY"

	// EnvUpstream overrides the upstream base URL.
	EnvUpstream = "DEEPSEEK_UPSTREAM"

	// EnvListenPort overrides the local listen port.
	EnvListenPort = "PROXY_PORT"
)

// Load builds the proxy configuration from an optional YAML file plus
// environment overrides, applies defaults, and validates the result.
//
// path may be empty or point to a nonexistent file; the proxy is fully
// usable from defaults and environment variables alone. A .env file in the
// working directory is loaded into the environment first, if present.
func Load(path string) (*Config, error) {
	// Booleans that default to true are seeded before unmarshaling so an
	// absent YAML key keeps the default while an explicit false wins.
	cfg := &Config{
		CleanResponse: DefaultCleanResponse,
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Optional file; fall through to defaults.
		default:
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)

	// .env, if present, feeds the environment without overriding variables
	// that are already set.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables always take precedence over file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv(EnvAPIKey); val != "" {
		cfg.Upstream.APIKey = val
	}
	if val := os.Getenv(EnvUpstream); val != "" {
		cfg.Upstream.BaseURL = val
	}
	if val := os.Getenv(EnvListenPort); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Proxy.ListenPort = port
		}
	}
}
