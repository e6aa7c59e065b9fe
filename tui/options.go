// ABOUTME: TUI mode configuration and injected dependencies
// ABOUTME: Defines input parameters for running the interactive export form

package tui

import (
	"net/url"

	"playlist-export/export"
)

// Options contains configuration for running the TUI
type Options struct {
	Endpoint    string     // Form action URL
	URLField    string     // Form field name for the playlist URL
	Fields      url.Values // Extra form fields
	InitialURL  string     // Pre-filled playlist URL
	ConfigPath  string     // Watched for endpoint changes; empty disables watching
	DownloadDir string     // Shown in the result panel
}

// Dependencies holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Dependencies struct {
	Submitter  export.Submitter
	Reloader   export.Reloader
	Downloader export.Downloader
	Debugf     func(string, ...interface{})
}
