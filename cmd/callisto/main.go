// Callisto is a transparent local forwarding proxy for the DeepSeek API.
//
// It listens on the loopback interface, normalizes JSON request bodies
// (strips empty tools arrays, flattens structured message content, injects
// default parameters), forwards them to the DeepSeek API with the configured
// bearer token, and cleans the JSON response on the way back.
//
// Usage:
//
//	# Start with defaults (reads DEEPSEEK_KEY from the environment or .env)
//	callisto run
//
//	# Start with a config file
//	callisto run --config /path/to/config.yaml
//
//	# Override the listen port
//	callisto run --port 9090
//
//	# Validate configuration without starting
//	callisto validate
//
//	# Show version information
//	callisto version
package main

func main() {
	Execute()
}
