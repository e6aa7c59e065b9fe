// ABOUTME: Bridges controller rendering calls into Bubble Tea messages
// ABOUTME: Controller runs off the UI goroutine; every call becomes a uiEvent on a channel

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"playlist-export/export"
)

type eventKind int

const (
	eventLoading eventKind = iota
	eventInvalid
	eventMessage
	eventClearMessage
	eventShowResult
	eventHideResult
	eventFlashes
)

// uiEvent is one rendering call from the controller
type uiEvent struct {
	kind    eventKind
	flag    bool
	text    string
	msgKind export.MessageKind
	result  export.Result
	flashes []export.Flash
}

// channelRenderer implements export.Renderer by queueing uiEvents
type channelRenderer struct {
	events chan<- uiEvent
	done   <-chan struct{}
}

func (r channelRenderer) send(ev uiEvent) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

func (r channelRenderer) SetLoading(loading bool) {
	r.send(uiEvent{kind: eventLoading, flag: loading})
}

func (r channelRenderer) SetInvalid(invalid bool) {
	r.send(uiEvent{kind: eventInvalid, flag: invalid})
}

func (r channelRenderer) SetMessage(text string, kind export.MessageKind) {
	r.send(uiEvent{kind: eventMessage, text: text, msgKind: kind})
}

func (r channelRenderer) ClearMessage() {
	r.send(uiEvent{kind: eventClearMessage})
}

func (r channelRenderer) ShowResult(res export.Result) {
	r.send(uiEvent{kind: eventShowResult, result: res})
}

func (r channelRenderer) HideResult() {
	r.send(uiEvent{kind: eventHideResult})
}

func (r channelRenderer) ShowFlashes(flashes []export.Flash) {
	r.send(uiEvent{kind: eventFlashes, flashes: flashes})
}

// waitForEvent returns a command that waits for the next rendering event
func waitForEvent(events <-chan uiEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}

		return ev
	}
}
