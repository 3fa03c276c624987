package config

import "time"

// Default values for configuration fields.
const (
	// ListenHost is fixed: the proxy only ever binds the loopback
	// interface.
	ListenHost = "127.0.0.1"

	DefaultListenPort      = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	DefaultUpstreamBaseURL = "https://api.deepseek.com"
	DefaultUpstreamTimeout = 60 * time.Second

	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second

	DefaultCleanResponse = true

	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
)

// DefaultAllowedPrefixes returns the path prefixes eligible for forwarding.
// Only DeepSeek API paths are admitted so the proxy never forwards traffic it
// was not meant to see.
func DefaultAllowedPrefixes() []string {
	return []string{
		"/v1/chat/completions",
		"/v1/completions",
		"/v1/models",
		"/v1/*",
	}
}

// DefaultParams returns the request parameters the proxy injects into every
// JSON request body.
func DefaultParams() map[string]any {
	return map[string]any{
		"temperature": 0.7,
		"max_tokens":  1024,
	}
}

// ApplyDefaults fills in zero-valued configuration fields with defaults.
// Explicitly configured values are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg.Proxy.ListenPort == 0 {
		cfg.Proxy.ListenPort = DefaultListenPort
	}
	if cfg.Proxy.AllowedPrefixes == nil {
		cfg.Proxy.AllowedPrefixes = DefaultAllowedPrefixes()
	}
	if cfg.Proxy.ReadTimeout == 0 {
		cfg.Proxy.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Proxy.WriteTimeout == 0 {
		cfg.Proxy.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Proxy.IdleTimeout == 0 {
		cfg.Proxy.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Proxy.ShutdownTimeout == 0 {
		cfg.Proxy.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Proxy.MaxHeaderBytes == 0 {
		cfg.Proxy.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if cfg.Upstream.MaxIdleConns == 0 {
		cfg.Upstream.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.Upstream.MaxIdleConnsPerHost == 0 {
		cfg.Upstream.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if cfg.Upstream.IdleConnTimeout == 0 {
		cfg.Upstream.IdleConnTimeout = DefaultIdleConnTimeout
	}

	if cfg.DefaultParams == nil {
		cfg.DefaultParams = DefaultParams()
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
