package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/server"
)

var runFlags struct {
	port     int
	logLevel string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Callisto proxy server",
	Long: `Start the Callisto proxy server with the specified configuration.

The server listens on the loopback interface and forwards DeepSeek API
requests to the configured upstream, normalizing bodies in both directions.

Examples:
  # Start with defaults
  callisto run

  # Start with a custom config
  callisto run --config /etc/callisto/config.yaml

  # Override the listen port
  callisto run --port 9090`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runFlags.port, "port", "p", 0, "override listen port")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.port != 0 {
		cfg.Proxy.ListenPort = runFlags.port
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	setupLogging(&cfg.Telemetry.Logging)

	srv := server.New(cfg)
	return srv.Start(context.Background())
}

// setupLogging installs the process-wide slog default from configuration.
func setupLogging(cfg *config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration without starting the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Configuration valid\n")
		fmt.Printf("  listen:   %s\n", cfg.Proxy.ListenAddress())
		fmt.Printf("  upstream: %s\n", cfg.Upstream.BaseURL)
		fmt.Printf("  prefixes: %v\n", cfg.Proxy.AllowedPrefixes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
