package config

import (
	"fmt"

	"github.com/snipkit/snipd/internal/constants"
	"gopkg.in/yaml.v3"
)

// defaultVersion is overridden at build time with -ldflags.
var defaultVersion = "0.1"

// DefaultConfig returns the default snipd configuration
func DefaultConfig() *Config {
	return &Config{
		UpdateFeedURL: constants.DefaultUpdateFeedURL,
		Version:       defaultVersion,
		LogLevel:      "info",
		Portable:      false,
	}
}

// DefaultConfigYAML returns the default configuration as YAML bytes
func DefaultConfigYAML() ([]byte, error) {
	config := DefaultConfig()
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config to YAML: %w", err)
	}
	return data, nil
}
