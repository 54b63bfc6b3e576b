package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
updateFeedUrl: https://example.com/latest.json
version: "2.4"
logLevel: debug
`)

	config, err := LoadFromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/latest.json", config.UpdateFeedURL)
	assert.Equal(t, "2.4", config.Version)
	assert.Equal(t, "debug", config.LogLevel)
	assert.False(t, config.Portable)
}

func TestLoadFromYAML_AppliesDefaults(t *testing.T) {
	t.Parallel()

	config, err := LoadFromYAML([]byte(`logLevel: warn`))
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.UpdateFeedURL, config.UpdateFeedURL)
	assert.Equal(t, defaults.Version, config.Version)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snipd.yml")
	content := "updateFeedUrl: https://example.com/feed.json\nversion: \"1.0\"\nlogLevel: info\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/feed.json", config.UpdateFeedURL)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Parallel()

	config, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoad_MissingFileIsNotExist(t *testing.T) {
	t.Parallel()

	// LoadOrDefault classifies the missing-file case with errors.Is, not by
	// matching the platform-specific message text.
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty feed URL",
			mutate:  func(c *Config) { c.UpdateFeedURL = "" },
			wantErr: "updateFeedUrl is required",
		},
		{
			name:    "relative feed URL",
			mutate:  func(c *Config) { c.UpdateFeedURL = "latest.json" },
			wantErr: "invalid update feed URL",
		},
		{
			name:    "garbage version",
			mutate:  func(c *Config) { c.Version = "latest" },
			wantErr: "invalid version",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCurrentVersion(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Version = "2.7"

	major, minor := config.CurrentVersion()
	assert.Equal(t, 2, major)
	assert.Equal(t, 7, minor)
}

func TestDefaultConfigYAMLRoundTrips(t *testing.T) {
	t.Parallel()

	data, err := DefaultConfigYAML()
	require.NoError(t, err)

	config, err := LoadFromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}
