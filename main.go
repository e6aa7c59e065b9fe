// ABOUTME: Entry point for playlist-export application
// ABOUTME: Handles command-line parsing and routing to CLI or TUI modes

// Package main provides the entry point for playlist-export, a client for the playlist CSV export server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"playlist-export/config"
	"playlist-export/export"
	"playlist-export/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	interactive := flag.Bool("i", false, "open the interactive export form")
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogFile)
	configPath := flag.String("config", config.GetConfigPath(), "path to the TOML config file")
	initConfig := flag.Bool("init-config", false, "write a config file with the current settings and exit")
	endpoint := flag.String("endpoint", "", "export form URL (overrides config)")
	outDir := flag.String("out", "", "directory to save CSV files in (overrides config)")
	field := flag.String("field", "", "form field carrying the playlist URL (overrides config)")
	timeout := flag.Duration("timeout", 0, "request timeout, 0 waits indefinitely (overrides config)")
	preview := flag.Int("preview", 5, "CSV lines to print after a CLI export, 0 for none")
	flag.Parse()

	opts := RunOptions{
		ConfigPath:  *configPath,
		Endpoint:    *endpoint,
		DownloadDir: *outDir,
		URLField:    *field,
		Timeout:     *timeout,
		Preview:     *preview,
		DebugLog:    *debug,
	}

	if *initConfig {
		if err := writeConfig(opts); err != nil {
			log.Printf("Config error: %v", err)

			return 1
		}

		fmt.Printf("Wrote config to %s\n", opts.ConfigPath)

		return 0
	}

	args := flag.Args()

	if *interactive {
		if len(args) > 0 {
			opts.PlaylistURL = args[0]
		}

		if err := runTUI(opts); err != nil {
			log.Printf("TUI error: %v", err)

			return 1
		}

		return 0
	}

	if len(args) != 1 {
		fmt.Println("Usage: playlist-export [flags] <spotify-playlist-url>")
		fmt.Println("Example: playlist-export https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	opts.PlaylistURL = args[0]

	outcome, err := RunCLI(opts)
	if err != nil {
		log.Printf("CLI error: %v", err)

		return 1
	}

	return exitCode(outcome)
}

// runTUI resolves settings and starts the interactive form
func runTUI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog(debugLogFile); err != nil {
			return err
		}
	}

	settings, err := ResolveSettings(opts)
	if err != nil {
		return err
	}

	client := NewHTTPClient(settings)

	return tui.Run(tui.Options{
		Endpoint:    settings.Endpoint,
		URLField:    settings.URLField,
		Fields:      settings.Fields,
		InitialURL:  opts.PlaylistURL,
		ConfigPath:  opts.ConfigPath,
		DownloadDir: settings.DownloadDir,
	}, tui.Dependencies{
		Submitter:  client,
		Reloader:   client,
		Downloader: export.NewFileDownloader(settings.DownloadDir),
		Debugf:     debugf,
	})
}

// writeConfig saves the effective settings so later runs pick them up
func writeConfig(opts RunOptions) error {
	settings, err := ResolveSettings(opts)
	if err != nil {
		return err
	}

	cfg := config.Config{
		Endpoint:       settings.Endpoint,
		DownloadDir:    settings.DownloadDir,
		URLField:       settings.URLField,
		TimeoutSeconds: int(settings.Timeout / time.Second),
		Fields:         map[string]string{},
	}

	for name := range settings.Fields {
		cfg.Fields[name] = settings.Fields.Get(name)
	}

	return config.SaveConfig(opts.ConfigPath, cfg)
}
