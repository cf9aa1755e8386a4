package cmd

// Exit codes for expectspec CLI
const (
	// ExitSuccess indicates the command succeeded
	ExitSuccess = 0

	// ExitMismatch indicates two renderings differ
	ExitMismatch = 1

	// ExitFixtureError indicates a fixture could not be loaded or rendered
	ExitFixtureError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
