package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g., "upstream.api_key").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. All field errors are collected and reported together.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any rule fails. A missing API key is the misconfiguration the proxy
// refuses to start on; everything else has a safe default but is still
// checked for coherence.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Upstream.APIKey == "" {
		errs = append(errs, FieldError{
			Field:   "upstream.api_key",
			Message: fmt.Sprintf("DeepSeek API key is required; set it in the config file or via %s", EnvAPIKey),
		})
	}

	if cfg.Proxy.ListenPort < 1 || cfg.Proxy.ListenPort > 65535 {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", cfg.Proxy.ListenPort),
		})
	}

	if len(cfg.Proxy.AllowedPrefixes) == 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.allowed_prefixes",
			Message: "at least one allowed prefix is required",
		})
	}
	for i, prefix := range cfg.Proxy.AllowedPrefixes {
		if !strings.HasPrefix(prefix, "/") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("proxy.allowed_prefixes[%d]", i),
				Message: fmt.Sprintf("prefix must start with '/', got %q", prefix),
			})
		}
	}

	if u, err := url.Parse(cfg.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, FieldError{
			Field:   "upstream.base_url",
			Message: fmt.Sprintf("must be an absolute URL, got %q", cfg.Upstream.BaseURL),
		})
	}

	if cfg.Upstream.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "upstream.timeout",
			Message: "must be positive",
		})
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Telemetry.Logging.Level),
		})
	}

	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be json or text, got %q", cfg.Telemetry.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
