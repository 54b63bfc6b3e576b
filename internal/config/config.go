// Package config loads the optional snipd.yml application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/snipkit/snipd/internal/update"
	"github.com/spf13/viper"
)

// Config is the application configuration. Every field has a usable
// default, so a missing config file is not an error for callers that use
// LoadOrDefault.
type Config struct {
	UpdateFeedURL string `yaml:"updateFeedUrl" mapstructure:"updateFeedUrl"`
	Version       string `yaml:"version" mapstructure:"version"`
	LogLevel      string `yaml:"logLevel" mapstructure:"logLevel"`
	Portable      bool   `yaml:"portable,omitempty" mapstructure:"portable"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(path)
	setDefaults(viperInstance)

	if err := viperInstance.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viperInstance.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// LoadFromYAML loads config from YAML bytes - helper for tests
func LoadFromYAML(data []byte) (*Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigType("yaml")
	setDefaults(viperInstance)

	if err := viperInstance.ReadConfig(strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viperInstance.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads the config file at path, falling back to the default
// configuration when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	config, err := Load(path)
	if err == nil {
		return config, nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return DefaultConfig(), nil
	}
	// viper reports a missing explicit file as a plain *PathError
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return nil, err
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("updateFeedUrl", defaults.UpdateFeedURL)
	v.SetDefault("version", defaults.Version)
	v.SetDefault("logLevel", defaults.LogLevel)
	v.SetDefault("portable", defaults.Portable)
}

// Validate performs config validation
func (c *Config) Validate() error {
	if c.UpdateFeedURL == "" {
		return errors.New("updateFeedUrl is required and cannot be empty")
	}
	parsed, err := url.Parse(c.UpdateFeedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid update feed URL %q", c.UpdateFeedURL)
	}

	if _, _, err := update.ParseVersion(c.Version); err != nil {
		return fmt.Errorf("invalid version: %w", err)
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// CurrentVersion returns the parsed running version.
func (c *Config) CurrentVersion() (major, minor int) {
	major, minor, err := update.ParseVersion(c.Version)
	if err != nil {
		// Validate rejects unparseable versions, so this only happens for a
		// hand-built Config.
		return 0, 0
	}
	return major, minor
}
