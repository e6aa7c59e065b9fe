// ABOUTME: View rendering for the export form TUI
// ABOUTME: Draws the URL field, submit button, status line and result panel

package tui

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"playlist-export/export"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return ""
	}

	sections := []string{
		titleStyle.Render("Spotify playlist export"),
		helpStyle.Render("Endpoint: " + m.endpoint),
		m.renderInput(),
		m.renderButton(),
	}

	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}

	if m.result != nil {
		sections = append(sections, m.renderResult())
	}

	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderInput draws the URL field, red-bordered while invalid
func (m model) renderInput() string {
	style := inputStyle
	if m.invalid {
		style = invalidInputStyle
	}

	return style.Render(m.input.View())
}

// renderButton draws the submit affordance with its loader
func (m model) renderButton() string {
	if m.loading {
		return m.spinner.View() + " " + disabledButtonStyle.Render(labelLoading)
	}

	return "  " + buttonStyle.Render(labelIdle)
}

// renderStatus draws the current status message, if any
func (m model) renderStatus() string {
	if m.message == "" {
		return ""
	}

	if m.msgKind == export.MessageError {
		return errorMessageStyle.Render(m.message)
	}

	return messageStyle.Render(m.message)
}

// renderResult draws file metadata and the CSV preview
func (m model) renderResult() string {
	meta := fmt.Sprintf("Filename: %s   Rows exported: %d", m.result.Filename, m.result.RowCount)

	return lipgloss.JoinVertical(lipgloss.Left,
		metaStyle.Render(meta),
		previewStyle.Render(m.preview.View()),
	)
}

func (m model) renderHelp() string {
	parts := []string{
		keys.Submit.Help().Key + " " + keys.Submit.Help().Desc,
		keys.PageUp.Help().Key + "/" + keys.PageDown.Help().Key + " " + keys.PageDown.Help().Desc,
		keys.Quit.Help().Key + " " + keys.Quit.Help().Desc,
	}

	return helpStyle.Render(strings.Join(parts, " • "))
}

// flashText joins server flash messages into one status line
func flashText(flashes []export.Flash) string {
	texts := make([]string, 0, len(flashes))
	for _, f := range flashes {
		texts = append(texts, f.Text)
	}

	return strings.Join(texts, " ")
}
