// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model for the playlist export form

// Package tui provides an interactive terminal form for exporting playlists to CSV.
package tui

import (
	"context"
	"fmt"
	"net/url"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"playlist-export/export"
)

// Submit button labels
const (
	labelIdle    = "Export to CSV"
	labelLoading = "Exporting..."
)

// Layout constants for UI dimensions
const (
	formWidth         = 72 // Width of the URL input
	resultChrome      = 12 // Lines used by everything except the preview
	minPreviewHeight  = 3
	defaultPreviewH   = 10
	eventBufferSize   = 64 // Rendering events queued between controller and UI
	placeholderPrompt = "https://open.spotify.com/playlist/..."
)

// submitDoneMsg is sent when a controller submission returns
type submitDoneMsg struct {
	outcome export.Outcome
}

// configChangedMsg carries an endpoint reloaded from the config file
type configChangedMsg struct {
	endpoint string
	urlField string
	fields   url.Values
	err      error
}

// model holds the TUI state
type model struct {
	// Dependencies
	ctrl   *export.Controller
	debugf func(string, ...interface{})

	// Framework exception: Bubble Tea owns the model lifecycle, so the
	// submission context lives in the struct and is cancelled on quit.
	ctx    context.Context //nolint:containedctx // See framework exception above
	cancel context.CancelFunc
	events chan uiEvent
	done   chan struct{}

	// Form target
	endpoint    string
	urlField    string
	fields      url.Values
	configPath  string
	watcher     *fsnotify.Watcher
	downloadDir string

	// Form state mirrored from controller events
	input      textinput.Model
	spinner    spinner.Model
	submitting bool // Set on Enter, cleared when the submission returns
	loading    bool
	invalid    bool
	message    string
	msgKind    export.MessageKind
	result     *export.Result
	preview    viewport.Model

	lastOutcome export.Outcome // How the most recent submission ended

	// UI state
	width    int
	height   int
	quitting bool
}

// Key bindings
type keyMap struct {
	Submit   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "export"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll preview"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll preview"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	invalidInputStyle = inputStyle.
				BorderForeground(lipgloss.Color("9"))

	buttonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("28")).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Padding(0, 2)

	disabledButtonStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("238")).
				Foreground(lipgloss.Color("245")).
				Padding(0, 2)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")).
				Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("236"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run starts the interactive form with injected dependencies
func Run(opts Options, deps Dependencies) error {
	m := initModel(opts, deps)

	if opts.ConfigPath != "" {
		watcher, err := watchConfig(opts.ConfigPath)
		if err != nil {
			m.debugf("[TUI] Config watching disabled: %v", err)
		} else {
			m.watcher = watcher
			defer watcher.Close()
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if fm, ok := finalModel.(model); ok {
		fm.shutdown()

		if fm.result != nil {
			fmt.Printf("\nLast export: %s (%d rows) in %s\n", fm.result.Filename, fm.result.RowCount, fm.downloadDir)
		}
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, deps Dependencies) model {
	debugf := deps.Debugf
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan uiEvent, eventBufferSize)
	done := make(chan struct{})

	renderer := channelRenderer{events: events, done: done}
	ctrl := export.NewController(deps.Submitter, renderer, deps.Downloader, deps.Reloader, export.LoggerFunc(debugf))

	ti := textinput.New()
	ti.Placeholder = placeholderPrompt
	ti.Prompt = "Playlist URL: "
	ti.Width = formWidth
	ti.SetValue(opts.InitialURL)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		ctrl:        ctrl,
		debugf:      debugf,
		ctx:         ctx,
		cancel:      cancel,
		events:      events,
		done:        done,
		endpoint:    opts.Endpoint,
		urlField:    opts.URLField,
		fields:      opts.Fields,
		configPath:  opts.ConfigPath,
		downloadDir: opts.DownloadDir,
		input:       ti,
		spinner:     sp,
		preview:     viewport.New(formWidth, defaultPreviewH),
	}
}

// Init initializes the TUI
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		waitForEvent(m.events),
	}

	if m.watcher != nil {
		cmds = append(cmds, waitForConfigChange(m.watcher, m.configPath))
	}

	return tea.Batch(cmds...)
}

// form builds the submission from the current input and target
func (m model) form() export.Form {
	return export.Form{
		Action:      m.endpoint,
		URLField:    m.urlField,
		PlaylistURL: m.input.Value(),
		Fields:      m.fields,
	}
}

// submit runs one controller submission off the UI goroutine
func (m model) submit() tea.Cmd {
	ctrl := m.ctrl
	ctx := m.ctx
	form := m.form()

	return func() tea.Msg {
		return submitDoneMsg{outcome: ctrl.Submit(ctx, form)}
	}
}

// shutdown cancels any in-flight submission and unblocks the renderer
func (m model) shutdown() {
	m.cancel()

	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// resizePreview fits the CSV preview to the window
func (m *model) resizePreview() {
	height := m.height - resultChrome
	if height < minPreviewHeight {
		height = minPreviewHeight
	}

	width := m.width - 2
	if width < formWidth {
		width = formWidth
	}

	m.preview.Width = width
	m.preview.Height = height
}
