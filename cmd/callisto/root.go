package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - transparent local forwarding proxy for the DeepSeek API",
	Long: `Callisto is a transparent local HTTP forwarding proxy that sits between a
client application and the DeepSeek chat-completion API.

It accepts requests on the loopback interface and, per request:
  - Filters paths against the allowed DeepSeek API prefixes
  - Strips empty "tools" arrays from JSON request and response bodies
  - Flattens structured messages[].content into plain strings
  - Injects configured default parameters (temperature, max_tokens, ...)
  - Forwards upstream with the configured API key as a bearer token

The API key is read from the DEEPSEEK_KEY environment variable, a .env file,
or the config file; the proxy refuses to start without one.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
}
