package config

// Config is the full tradebot configuration.
type Config struct {
	// Kite holds the broker API credentials.
	Kite KiteConfig `json:"kite" mapstructure:"kite"`

	// Logging configures the zerolog sink.
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// DataDir is where logs and local state live.
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// KiteConfig holds the Kite Connect app credentials. Both values may be
// empty: the tool catalog still lists without them, and gateway-dependent
// calls then fail with an authentication error instead of crashing startup.
type KiteConfig struct {
	APIKey    string `json:"api_key" mapstructure:"api_key"`
	APISecret string `json:"api_secret" mapstructure:"api_secret"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// HasCredentials reports whether both broker credentials are present.
func (c *Config) HasCredentials() bool {
	return c.Kite.APIKey != "" && c.Kite.APISecret != ""
}
