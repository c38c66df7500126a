package config

import "fmt"

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the configuration for values that would misbehave later.
// Missing broker credentials are deliberately NOT an error: the server must
// come up and list its catalog without them.
func (c *Config) Validate() error {
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	// Half-configured credentials are almost certainly a mistake.
	if (c.Kite.APIKey == "") != (c.Kite.APISecret == "") {
		return fmt.Errorf("kite api_key and api_secret must be set together")
	}

	return nil
}
