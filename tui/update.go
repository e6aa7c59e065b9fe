// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"playlist-export/export"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePreview()

		return m, nil

	case uiEvent:
		cmd := m.applyEvent(msg)

		return m, tea.Batch(cmd, waitForEvent(m.events))

	case submitDoneMsg:
		m.submitting = false
		m.lastOutcome = msg.outcome
		m.debugf("[TUI] Submission finished: %s", msg.outcome)

		return m, nil

	case configChangedMsg:
		return m.handleConfigChanged(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			m.shutdown()

			return m, tea.Quit

		case key.Matches(msg, keys.Submit):
			return m.handleSubmitKey()

		case key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)

			return m, cmd
		}

		return m.handleInputKey(msg)
	}

	return m, nil
}

// handleSubmitKey starts a submission unless one is already in flight
func (m model) handleSubmitKey() (tea.Model, tea.Cmd) {
	if m.submitting || m.loading {
		return m, nil
	}

	m.submitting = true

	return m, m.submit()
}

// handleInputKey forwards editing keys to the URL field
func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.ctrl.Input()
	}

	return m, cmd
}

// applyEvent mirrors one controller rendering call into the model
func (m *model) applyEvent(ev uiEvent) tea.Cmd {
	switch ev.kind {
	case eventLoading:
		wasLoading := m.loading
		m.loading = ev.flag

		if m.loading && !wasLoading {
			return m.spinner.Tick
		}

	case eventInvalid:
		m.invalid = ev.flag

	case eventMessage:
		m.message = ev.text
		m.msgKind = ev.msgKind

	case eventClearMessage:
		m.message = ""
		m.msgKind = export.MessageInfo

	case eventShowResult:
		res := ev.result
		m.result = &res
		m.preview.SetContent(res.CSVData)
		m.preview.GotoTop()

	case eventHideResult:
		m.result = nil
		m.preview.SetContent("")

	case eventFlashes:
		m.message = flashText(ev.flashes)
		m.msgKind = export.MessageError
	}

	return nil
}

// handleConfigChanged retargets the form after the config file changed
func (m model) handleConfigChanged(msg configChangedMsg) (tea.Model, tea.Cmd) {
	next := waitForConfigChange(m.watcher, m.configPath)

	if msg.err != nil {
		m.debugf("[TUI] Config reload failed: %v", msg.err)

		return m, next
	}

	if msg.endpoint != m.endpoint {
		m.debugf("[TUI] Endpoint changed: %s -> %s", m.endpoint, msg.endpoint)
	}

	m.endpoint = msg.endpoint
	m.urlField = msg.urlField
	m.fields = msg.fields

	return m, next
}
