// Package cmd implements the expectspec CLI commands using Cobra.
//
// Available commands:
//   - render: Print the canonical rendering of a fixture request
//   - diff: Compare the renderings of two fixture requests
//   - send: Send a fixture request over the network
//   - validate: Check fixtures against the expectation schema
//   - list: Display the fixtures found in files or directories
//   - init: Create a config file and an example fixture
//   - version: Show expectspec version information
//
// Fixture placeholders are resolved from the config file, the selected
// provider's defaults and --var flags, in that order.
package cmd
