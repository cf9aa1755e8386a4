package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the settings a client is assembled with
type Config struct {
	Provider        string            `json:"provider,omitempty"`
	Endpoint        string            `json:"endpoint,omitempty"`
	APIVersion      string            `json:"apiVersion,omitempty"`
	Identity        string            `json:"identity,omitempty"`
	Credential      string            `json:"credential,omitempty"`
	Timeout         int               `json:"timeout,omitempty"`    // milliseconds
	Retries         int               `json:"retries,omitempty"`
	RetryDelay      int               `json:"retryDelay,omitempty"` // milliseconds
	FollowRedirects *bool             `json:"followRedirects,omitempty"`
	MaxRedirects    int               `json:"maxRedirects,omitempty"`
	ValidateSSL     *bool             `json:"validateSSL,omitempty"`
	Proxy           string            `json:"proxy,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`   // Default headers for all requests
	UserThreads     int               `json:"userThreads,omitempty"`
	IOWorkerThreads int               `json:"ioWorkerThreads,omitempty"`
	RateLimit       float64           `json:"rateLimit,omitempty"` // requests per second, 0 disables
	Verbose         *bool             `json:"verbose,omitempty"`
	Properties      map[string]string `json:"properties,omitempty"` // Provider specific settings
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// Property returns a provider specific setting
func (c *Config) Property(key string) (string, bool) {
	v, ok := c.Properties[key]
	return v, ok
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".expectspec.json",
	"expectspec.json",
	".expectspecrc",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c
	result.Headers = copyMap(c.Headers)
	result.Properties = copyMap(c.Properties)

	if other.Provider != "" {
		result.Provider = other.Provider
	}
	if other.Endpoint != "" {
		result.Endpoint = other.Endpoint
	}
	if other.APIVersion != "" {
		result.APIVersion = other.APIVersion
	}
	if other.Identity != "" {
		result.Identity = other.Identity
	}
	if other.Credential != "" {
		result.Credential = other.Credential
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.Retries > 0 {
		result.Retries = other.Retries
	}
	if other.RetryDelay > 0 {
		result.RetryDelay = other.RetryDelay
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.UserThreads > 0 {
		result.UserThreads = other.UserThreads
	}
	if other.IOWorkerThreads > 0 {
		result.IOWorkerThreads = other.IOWorkerThreads
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}

	// Boolean flags - only override if explicitly set in other config
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}

	for k, v := range other.Headers {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		result.Headers[k] = v
	}
	for k, v := range other.Properties {
		if result.Properties == nil {
			result.Properties = make(map[string]string)
		}
		result.Properties[k] = v
	}

	return &result
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
