// Package config handles the settings clients are assembled with.
//
// It provides functionality for:
//   - Loading client configuration from .expectspec.json files
//   - Default configuration values and merging of overrides
//   - Provider properties (endpoint, api version, credentials) from YAML
package config
