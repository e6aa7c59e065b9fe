// ABOUTME: Unit tests for TUI model behavior
// ABOUTME: Drives the form with key messages and replays controller events synchronously

package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"playlist-export/export"
)

type mockSubmitter struct {
	resp  *export.Response
	err   error
	calls int
	last  export.Form
}

func (s *mockSubmitter) Submit(_ context.Context, form export.Form) (*export.Response, error) {
	s.calls++
	s.last = form

	return s.resp, s.err
}

type mockReloader struct {
	flashes []export.Flash
	calls   int
}

func (r *mockReloader) Reload(_ context.Context, _ string) ([]export.Flash, error) {
	r.calls++

	return r.flashes, nil
}

type mockDownloader struct {
	saved []export.Artifact
}

func (d *mockDownloader) Download(a export.Artifact) (string, error) {
	d.saved = append(d.saved, a)

	return a.Name, nil
}

type testDeps struct {
	submitter  *mockSubmitter
	reloader   *mockReloader
	downloader *mockDownloader
}

// createTestModel creates a model with mock dependencies for testing
func createTestModel(resp *export.Response, err error) (model, testDeps) {
	deps := testDeps{
		submitter:  &mockSubmitter{resp: resp, err: err},
		reloader:   &mockReloader{},
		downloader: &mockDownloader{},
	}

	m := initModel(Options{Endpoint: "http://localhost:5000/", URLField: "playlist_url"}, Dependencies{
		Submitter:  deps.submitter,
		Reloader:   deps.reloader,
		Downloader: deps.downloader,
		Debugf:     func(string, ...interface{}) {},
	})

	return m, deps
}

func csvResponse(body string) *export.Response {
	header := http.Header{}
	header.Set("Content-Disposition", `attachment; filename="mylist.csv"`)

	return &export.Response{StatusCode: http.StatusOK, Header: header, Body: []byte(body)}
}

// update applies a message and returns the concrete model
func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", next)
	}

	return nm, cmd
}

// drainEvents applies every queued controller event
func drainEvents(t *testing.T, m model) model {
	t.Helper()

	for {
		select {
		case ev := <-m.events:
			m, _ = update(t, m, ev)
		default:
			return m
		}
	}
}

// typeText sends each rune as a key press
func typeText(t *testing.T, m model, text string) model {
	t.Helper()

	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

// submitAndWait presses Enter, runs the submission, and applies the results
func submitAndWait(t *testing.T, m model) model {
	t.Helper()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected submit command")
	}

	if !m.submitting {
		t.Error("Expected submitting flag while request is in flight")
	}

	done := cmd()
	m = drainEvents(t, m)
	m, _ = update(t, m, done)

	return m
}

func TestModelInitialization(t *testing.T) {
	m, _ := createTestModel(nil, nil)

	if m.loading || m.invalid || m.result != nil {
		t.Error("Expected idle form on start")
	}

	if !strings.Contains(m.View(), labelIdle) {
		t.Errorf("Expected %q button label in view", labelIdle)
	}
}

func TestEmptySubmitShowsValidationError(t *testing.T) {
	m, deps := createTestModel(csvResponse("a\n1\n"), nil)
	m = typeText(t, m, "   ")

	m = submitAndWait(t, m)

	if deps.submitter.calls != 0 {
		t.Errorf("Expected no request, got %d", deps.submitter.calls)
	}

	if !m.invalid {
		t.Error("Expected field marked invalid")
	}

	if m.message != export.MsgEmptyURL {
		t.Errorf("Expected validation message, got %q", m.message)
	}

	if m.lastOutcome != export.OutcomeValidationError {
		t.Errorf("Expected validation outcome, got %v", m.lastOutcome)
	}

	if !strings.Contains(m.View(), export.MsgEmptyURL) {
		t.Error("Expected validation message in view")
	}
}

func TestTypingClearsValidationError(t *testing.T) {
	m, _ := createTestModel(nil, nil)
	m = submitAndWait(t, m)

	m = typeText(t, m, "h")
	m = drainEvents(t, m)

	if m.invalid {
		t.Error("Expected invalid cleared after typing")
	}

	if m.message != "" {
		t.Errorf("Expected message cleared after typing, got %q", m.message)
	}
}

func TestSuccessfulExport(t *testing.T) {
	m, deps := createTestModel(csvResponse("a,b\n1,2\n3,4\n"), nil)
	m = typeText(t, m, "https://open.spotify.com/playlist/abc")

	m = submitAndWait(t, m)

	if m.result == nil {
		t.Fatal("Expected result panel")
	}

	if m.result.Filename != "mylist.csv" || m.result.RowCount != 2 {
		t.Errorf("Unexpected result %+v", m.result)
	}

	if m.loading || m.submitting {
		t.Error("Expected loading cleared")
	}

	if len(deps.downloader.saved) != 1 {
		t.Errorf("Expected one download, got %d", len(deps.downloader.saved))
	}

	if deps.submitter.last.URLField != "playlist_url" || deps.submitter.last.Action != "http://localhost:5000/" {
		t.Errorf("Unexpected form target %+v", deps.submitter.last)
	}

	view := m.View()
	if !strings.Contains(view, "Rows exported: 2") || !strings.Contains(view, export.MsgComplete) {
		t.Errorf("Expected result meta and success message in view:\n%s", view)
	}
}

func TestServerErrorShowsFlash(t *testing.T) {
	m, deps := createTestModel(&export.Response{StatusCode: http.StatusFound, Header: http.Header{}}, nil)
	deps.reloader.flashes = []export.Flash{{Category: "danger", Text: "Invalid Spotify playlist URL."}}
	m = typeText(t, m, "nope")

	m = submitAndWait(t, m)

	if deps.reloader.calls != 1 {
		t.Errorf("Expected reload, got %d", deps.reloader.calls)
	}

	if m.message != "Invalid Spotify playlist URL." || m.msgKind != export.MessageError {
		t.Errorf("Expected server flash as error, got %q", m.message)
	}

	if m.lastOutcome != export.OutcomeServerError {
		t.Errorf("Expected server error outcome, got %v", m.lastOutcome)
	}
}

func TestNetworkErrorReenablesSubmit(t *testing.T) {
	m, deps := createTestModel(nil, errors.New("connection refused"))
	m = typeText(t, m, "https://open.spotify.com/playlist/abc")

	m = submitAndWait(t, m)

	if m.message != export.MsgNetworkError {
		t.Errorf("Expected network error message, got %q", m.message)
	}

	if m.loading {
		t.Error("Expected submit re-enabled")
	}

	// A second submission goes through
	m = submitAndWait(t, m)

	if deps.submitter.calls != 2 {
		t.Errorf("Expected 2 requests, got %d", deps.submitter.calls)
	}
}

func TestSubmitIgnoredWhileInFlight(t *testing.T) {
	m, _ := createTestModel(csvResponse("a\n1\n"), nil)
	m = typeText(t, m, "https://open.spotify.com/playlist/abc")

	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if first == nil {
		t.Fatal("Expected first submit command")
	}

	_, second := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if second != nil {
		t.Error("Expected second Enter to be ignored while submitting")
	}
}

func TestEmptyBodyShowsNothing(t *testing.T) {
	m, _ := createTestModel(csvResponse(""), nil)
	m = typeText(t, m, "https://open.spotify.com/playlist/abc")

	m = submitAndWait(t, m)

	if m.result != nil || m.message != "" || m.loading {
		t.Errorf("Expected quiet completion, got result=%v message=%q loading=%v", m.result, m.message, m.loading)
	}

	if m.lastOutcome != export.OutcomeEmpty {
		t.Errorf("Expected empty outcome, got %v", m.lastOutcome)
	}
}

func TestQuitCancelsContext(t *testing.T) {
	m, _ := createTestModel(nil, nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !m.quitting {
		t.Fatal("Expected quit command")
	}

	if m.ctx.Err() == nil {
		t.Error("Expected submission context cancelled on quit")
	}
}

func TestConfigChangeRetargetsForm(t *testing.T) {
	m, deps := createTestModel(csvResponse("a\n1\n"), nil)

	m, _ = update(t, m, configChangedMsg{endpoint: "https://export.example.com/", urlField: "url"})
	m = typeText(t, m, "https://open.spotify.com/playlist/abc")
	_ = submitAndWait(t, m)

	if deps.submitter.last.Action != "https://export.example.com/" || deps.submitter.last.URLField != "url" {
		t.Errorf("Expected reloaded endpoint to be used, got %+v", deps.submitter.last)
	}
}
