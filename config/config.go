// ABOUTME: Configuration management for the export client
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

// Package config loads and saves the playlist-export configuration file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the export endpoint and download settings
type Config struct {
	Endpoint       string            `toml:"endpoint"`        // Form action URL
	DownloadDir    string            `toml:"download_dir"`    // Where CSV files are saved
	URLField       string            `toml:"url_field"`       // Form field carrying the playlist URL
	TimeoutSeconds int               `toml:"timeout_seconds"` // 0 = wait indefinitely
	Fields         map[string]string `toml:"fields"`          // Extra form fields sent with every export
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/playlist-export/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./playlist-export.toml"); err == nil {
		return "./playlist-export.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./playlist-export.toml"
	}

	return filepath.Join(home, ".config", "playlist-export", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so keys missing from the file keep their default values
	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return normalize(config), nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(normalize(config)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the defaults matching a locally running export server
func DefaultConfig() Config {
	return Config{
		Endpoint:       "http://localhost:5000/",
		DownloadDir:    ".",
		URLField:       "playlist_url",
		TimeoutSeconds: 0,
	}
}

// Timeout returns the request timeout, zero meaning none
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}

	return time.Duration(c.TimeoutSeconds) * time.Second
}

// normalize trims values and restores defaults for blank required fields
func normalize(config Config) Config {
	defaults := DefaultConfig()

	config.Endpoint = strings.TrimSpace(config.Endpoint)
	if config.Endpoint == "" {
		config.Endpoint = defaults.Endpoint
	}

	config.URLField = strings.TrimSpace(config.URLField)
	if config.URLField == "" {
		config.URLField = defaults.URLField
	}

	if strings.TrimSpace(config.DownloadDir) == "" {
		config.DownloadDir = defaults.DownloadDir
	}

	if config.TimeoutSeconds < 0 {
		config.TimeoutSeconds = 0
	}

	return config
}

// FormFields returns the extra form fields as url.Values
func (c Config) FormFields() url.Values {
	values := url.Values{}
	for name, value := range c.Fields {
		values.Set(name, value)
	}

	return values
}
