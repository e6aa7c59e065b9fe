// ABOUTME: Shared initialization code for CLI and TUI modes
// ABOUTME: Resolves configuration from file and flags, and sets up debug logging

package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"playlist-export/config"
	"playlist-export/export"
)

const debugLogFile = "playlist-export-debug.log"

var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	PlaylistURL string
	ConfigPath  string
	Endpoint    string // Overrides the config file when set
	DownloadDir string // Overrides the config file when set
	URLField    string // Overrides the config file when set
	Timeout     time.Duration
	Preview     int // CSV lines to echo in CLI mode
	DebugLog    bool
}

// Settings is the effective configuration after flags are applied
type Settings struct {
	Endpoint    string
	DownloadDir string
	URLField    string
	Fields      url.Values
	Timeout     time.Duration
}

// ResolveSettings loads the config file and applies flag overrides
func ResolveSettings(opts RunOptions) (Settings, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Endpoint:    cfg.Endpoint,
		DownloadDir: cfg.DownloadDir,
		URLField:    cfg.URLField,
		Fields:      cfg.FormFields(),
		Timeout:     cfg.Timeout(),
	}

	if opts.Endpoint != "" {
		s.Endpoint = opts.Endpoint
	}

	if opts.DownloadDir != "" {
		s.DownloadDir = opts.DownloadDir
	}

	if opts.URLField != "" {
		s.URLField = opts.URLField
	}

	if opts.Timeout > 0 {
		s.Timeout = opts.Timeout
	}

	if _, err := url.ParseRequestURI(s.Endpoint); err != nil {
		return Settings{}, fmt.Errorf("invalid endpoint %q: %w", s.Endpoint, err)
	}

	return s, nil
}

// NewHTTPClient builds the transport for the given settings
func NewHTTPClient(s Settings) *export.HTTPClient {
	client := export.NewHTTPClient(s.Timeout)
	client.Logger = export.LoggerFunc(debugf)

	return client
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	fileInfo, _ := os.Stdout.Stat()
	if fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}
