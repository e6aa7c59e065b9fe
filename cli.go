// ABOUTME: CLI mode implementation for one-shot playlist exports
// ABOUTME: Renders controller output to the console and handles interrupt signals

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"playlist-export/export"
)

var (
	cliErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	cliSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cliMetaStyle    = lipgloss.NewStyle().Bold(true)
)

// consoleRenderer implements export.Renderer for line-oriented output
type consoleRenderer struct {
	out     io.Writer
	errOut  io.Writer
	preview int
}

func (r consoleRenderer) SetLoading(loading bool) {
	if loading {
		fmt.Fprintln(r.out, "Exporting...")
	}
}

func (r consoleRenderer) SetInvalid(bool) {}

func (r consoleRenderer) SetMessage(text string, kind export.MessageKind) {
	if kind == export.MessageError {
		fmt.Fprintln(r.errOut, cliErrorStyle.Render(text))
		return
	}

	fmt.Fprintln(r.out, cliSuccessStyle.Render(text))
}

func (r consoleRenderer) ClearMessage() {}

func (r consoleRenderer) ShowResult(res export.Result) {
	fmt.Fprintf(r.out, "Filename: %s\n", cliMetaStyle.Render(res.Filename))
	fmt.Fprintf(r.out, "Rows exported: %s\n", cliMetaStyle.Render(fmt.Sprint(res.RowCount)))

	if r.preview <= 0 {
		return
	}

	lines := strings.Split(strings.TrimSpace(res.CSVData), "\n")
	if len(lines) > r.preview {
		lines = lines[:r.preview]
	}

	for _, line := range lines {
		fmt.Fprintln(r.out, "  "+line)
	}
}

func (r consoleRenderer) HideResult() {}

func (r consoleRenderer) ShowFlashes(flashes []export.Flash) {
	for _, f := range flashes {
		fmt.Fprintln(r.errOut, cliErrorStyle.Render(f.Text))
	}
}

// RunCLI executes a single export and returns its outcome
func RunCLI(opts RunOptions) (export.Outcome, error) {
	if opts.DebugLog {
		if err := SetupDebugLog(debugLogFile); err != nil {
			return export.OutcomeIdle, err
		}
	}

	settings, err := ResolveSettings(opts)
	if err != nil {
		return export.OutcomeIdle, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	renderer := consoleRenderer{out: os.Stdout, errOut: os.Stderr, preview: opts.Preview}
	downloader := export.NewFileDownloader(settings.DownloadDir)
	client := NewHTTPClient(settings)
	ctrl := export.NewController(client, renderer, downloader, client, export.LoggerFunc(debugf))

	outcome := ctrl.Submit(ctx, export.Form{
		Action:      settings.Endpoint,
		URLField:    settings.URLField,
		PlaylistURL: opts.PlaylistURL,
		Fields:      settings.Fields,
	})

	debugf("[CLI] Export finished: %s", outcome)

	return outcome, nil
}

// exitCode maps an outcome to the process exit status
func exitCode(outcome export.Outcome) int {
	switch outcome {
	case export.OutcomeSuccess, export.OutcomeEmpty:
		return 0
	default:
		return 1
	}
}
