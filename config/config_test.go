// ABOUTME: Tests for configuration load/save functionality
// ABOUTME: Validates TOML parsing and default config fallback behavior

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != "http://localhost:5000/" {
		t.Errorf("Expected default endpoint, got %q", cfg.Endpoint)
	}

	if cfg.URLField != "playlist_url" {
		t.Errorf("Expected URLField playlist_url, got %q", cfg.URLField)
	}

	if cfg.Timeout() != 0 {
		t.Errorf("Expected no timeout by default, got %v", cfg.Timeout())
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Endpoint = "https://export.example.com/"
	cfg.TimeoutSeconds = 30
	cfg.Fields = map[string]string{"format": "csv"}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Endpoint != cfg.Endpoint {
		t.Errorf("Endpoint mismatch: got %q, want %q", loaded.Endpoint, cfg.Endpoint)
	}

	if loaded.Timeout() != 30*time.Second {
		t.Errorf("Timeout mismatch: got %v", loaded.Timeout())
	}

	if loaded.Fields["format"] != "csv" {
		t.Errorf("Fields mismatch: got %v", loaded.Fields)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("download_dir = \"/tmp/exports\"\nurl_field = \"  \"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DownloadDir != "/tmp/exports" {
		t.Errorf("Expected download_dir from file, got %q", cfg.DownloadDir)
	}

	if cfg.Endpoint != DefaultConfig().Endpoint {
		t.Errorf("Expected default endpoint, got %q", cfg.Endpoint)
	}

	if cfg.URLField != "playlist_url" {
		t.Errorf("Expected blank url_field to fall back to default, got %q", cfg.URLField)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("endpoint = [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("Expected parse error")
	}

	if cfg.Endpoint != DefaultConfig().Endpoint {
		t.Errorf("Expected defaults on parse error, got %q", cfg.Endpoint)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	if cfg.Endpoint != DefaultConfig().Endpoint {
		t.Errorf("Expected default endpoint, got %q", cfg.Endpoint)
	}
}
