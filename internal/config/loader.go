package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Loader handles configuration loading and watching.
type Loader struct {
	configPath string
	viper      *viper.Viper
}

// NewLoader creates a config loader. An empty configPath falls back to
// $HOME/.tradebot/tradebot.json.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load reads the configuration. Precedence: environment (KITE_API_KEY,
// KITE_API_SECRET, TRADEBOT_*) over file over defaults. A missing file is
// not an error.
func (l *Loader) Load() (*Config, error) {
	configPath := l.configPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".tradebot", "tradebot.json")
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	v.SetEnvPrefix("TRADEBOT")
	v.AutomaticEnv()

	// The broker credentials keep their Kite Connect names.
	_ = v.BindEnv("kite.api_key", "KITE_API_KEY")
	_ = v.BindEnv("kite.api_secret", "KITE_API_SECRET")

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".tradebot")
	}

	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(cfg.DataDir, "tradebot.log")
	}

	l.viper = v
	return cfg, nil
}

// Watch re-reads the config file whenever it changes on disk and hands the
// fresh Config to onChange. Load must have been called first.
func (l *Loader) Watch(onChange func(*Config)) {
	if l.viper == nil {
		return
	}

	l.viper.OnConfigChange(func(event fsnotify.Event) {
		log.Info().Str("file", event.Name).Msg("Config file changed, reloading")

		cfg := DefaultConfig()
		if err := l.viper.Unmarshal(cfg); err != nil {
			log.Error().Err(err).Msg("Failed to reload config")
			return
		}
		onChange(cfg)
	})
	l.viper.WatchConfig()
}
