package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Callisto proxy.
type Config struct {
	// Proxy configures the local listener and admission rules.
	Proxy ProxyConfig `yaml:"proxy"`

	// Upstream configures the DeepSeek API endpoint and credentials.
	Upstream UpstreamConfig `yaml:"upstream"`

	// DefaultParams are merged into every JSON request object, overwriting
	// any client-supplied value under the same key.
	DefaultParams map[string]any `yaml:"default_params"`

	// CleanResponse enables empty-tools stripping on upstream responses.
	CleanResponse bool `yaml:"clean_response"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProxyConfig configures the inbound HTTP server.
type ProxyConfig struct {
	// ListenPort is the local port to listen on. The host is always the
	// loopback address; this proxy is not meant to be reachable from the
	// network.
	ListenPort int `yaml:"listen_port"`

	// AllowedPrefixes is the set of path prefixes eligible for forwarding.
	// A trailing "*" marks a wildcard prefix.
	AllowedPrefixes []string `yaml:"allowed_prefixes"`

	// ReadTimeout is the maximum duration for reading the full request.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle connection timeout.
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits inbound request header size.
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// ListenAddress returns the loopback host:port the server binds to.
func (p *ProxyConfig) ListenAddress() string {
	return fmt.Sprintf("%s:%d", ListenHost, p.ListenPort)
}

// UpstreamConfig configures the outbound DeepSeek API connection.
type UpstreamConfig struct {
	// BaseURL is the upstream API base, without a trailing slash.
	BaseURL string `yaml:"base_url"`

	// APIKey is the static DeepSeek API key injected as a bearer token on
	// every forwarded request. Required.
	APIKey string `yaml:"api_key"`

	// Timeout bounds each outbound call.
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns configures the shared connection pool.
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost configures per-host idle connections.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long idle connections are kept.
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json" or "text").
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics exposure.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is registered.
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	Path string `yaml:"path"`
}
