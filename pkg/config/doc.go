// Package config defines the immutable configuration for the Callisto proxy.
//
// Configuration is assembled once at startup from three layers, later layers
// winning:
//
//  1. Built-in defaults (ApplyDefaults)
//  2. An optional YAML file
//  3. Environment variables (DEEPSEEK_KEY, DEEPSEEK_UPSTREAM, PROXY_PORT)
//
// A .env file in the working directory is loaded into the environment first,
// so the API key can be kept out of the shell profile.
//
// The resulting Config is validated (Validate collects every field error
// before reporting) and then treated as read-only: it is passed by pointer
// into every component and never mutated after startup. A missing API key is
// the single startup-fatal misconfiguration.
package config
