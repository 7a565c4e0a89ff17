// Package config loads client configuration from file, environment,
// and defaults. The backend origin is configuration, not code: every
// request goes to base_url and nowhere else.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the client configuration.
type Config struct {
	API APIConfig `mapstructure:"api"`
	UI  UIConfig  `mapstructure:"ui"`
}

// APIConfig controls how the backend is reached.
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	Debug      bool          `mapstructure:"debug"`
}

// UIConfig controls presentation.
type UIConfig struct {
	Color   bool `mapstructure:"color"`
	Verbose bool `mapstructure:"verbose"`
}

// Dir returns the helpdesk config directory under the user config root.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "helpdesk"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api/v1")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry_count", 0)
	v.SetDefault("api.debug", false)
	v.SetDefault("ui.color", true)
	v.SetDefault("ui.verbose", false)
}

// Load reads configuration from the given file path, or from
// config.yaml in the helpdesk config directory when path is empty.
// Environment variables with the HELPDESK_ prefix override file values
// (HELPDESK_API_BASE_URL and so on). A missing file yields defaults.
func Load(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HELPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Validate checks the loaded configuration for values the client
// cannot work with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.RetryCount < 0 {
		return fmt.Errorf("api.retry_count must not be negative, got %d", c.API.RetryCount)
	}
	return nil
}

// Watch re-reads the config file whenever it changes on disk and hands
// the fresh Config to onChange. Parse or validation failures keep the
// previous configuration in effect.
func Watch(v *viper.Viper, onChange func(*Config)) {
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			return
		}
		if err := cfg.Validate(); err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
