package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:         30000, // 30 seconds
		Retries:         5,
		RetryDelay:      50,
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    10,
		ValidateSSL:     BoolPtr(true),
		UserThreads:     10,
		IOWorkerThreads: 10,
		Verbose:         BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Provider == "" &&
		c.Endpoint == "" &&
		c.Timeout == defaults.Timeout &&
		c.Retries == defaults.Retries &&
		c.RetryDelay == defaults.RetryDelay &&
		c.GetFollowRedirects() == defaults.GetFollowRedirects() &&
		c.MaxRedirects == defaults.MaxRedirects &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.Proxy == defaults.Proxy &&
		len(c.Headers) == 0 &&
		c.UserThreads == defaults.UserThreads &&
		c.IOWorkerThreads == defaults.IOWorkerThreads &&
		c.RateLimit == defaults.RateLimit &&
		c.GetVerbose() == defaults.GetVerbose() &&
		len(c.Properties) == 0
}
