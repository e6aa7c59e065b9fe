// ABOUTME: Config file watching for the export form
// ABOUTME: Reloads endpoint settings when the TOML file is written

package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"playlist-export/config"
)

// configDebounce lets editors finish atomic writes before reloading
const configDebounce = 100 * time.Millisecond

// watchConfig watches the directory holding path so that
// rename-based saves are seen as well as in-place writes
func watchConfig(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return watcher, nil
}

// waitForConfigChange returns a command that waits for the config file to change
func waitForConfigChange(watcher *fsnotify.Watcher, path string) tea.Cmd {
	if watcher == nil {
		return nil
	}

	target := filepath.Clean(path)

	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if filepath.Clean(event.Name) != target {
					continue
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					time.Sleep(configDebounce)
					return loadConfigMsg(path)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// loadConfigMsg reads the config file into a configChangedMsg
func loadConfigMsg(path string) configChangedMsg {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return configChangedMsg{err: err}
	}

	return configChangedMsg{
		endpoint: cfg.Endpoint,
		urlField: cfg.URLField,
		fields:   cfg.FormFields(),
	}
}
