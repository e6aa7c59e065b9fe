// ABOUTME: Export form controller driving one submit-to-download cycle
// ABOUTME: Validates input, posts the form, and maps failures to user-visible messages

// Package export implements the playlist export form: submission, response handling and download.
package export

import (
	"context"
	"fmt"
	"sync"
)

// User-visible messages
const (
	MsgEmptyURL     = "Please enter a Spotify playlist URL to continue."
	MsgComplete     = "Export complete. Your CSV is downloading now."
	MsgNetworkError = "A network error occurred. Please check your connection and try again."
	MsgSaveFailed   = "The CSV could not be saved: %v"
)

// Outcome is the terminal state of one submission
type Outcome int

const (
	OutcomeIdle Outcome = iota
	OutcomeSuccess
	OutcomeEmpty // 2xx with an empty body
	OutcomeValidationError
	OutcomeServerError // Non-2xx, page reloaded
	OutcomeNetworkError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeValidationError:
		return "validation error"
	case OutcomeServerError:
		return "server error"
	case OutcomeNetworkError:
		return "network error"
	default:
		return "idle"
	}
}

// Controller orchestrates the export form.
// It keeps no state beyond the current submission cycle.
type Controller struct {
	submitter  Submitter
	renderer   Renderer
	downloader Downloader
	reloader   Reloader
	logger     Logger

	mu    sync.Mutex
	state FormState
}

// NewController creates a controller with its collaborators.
// reloader and logger may be nil.
func NewController(submitter Submitter, renderer Renderer, downloader Downloader, reloader Reloader, logger Logger) *Controller {
	if logger == nil {
		logger = LoggerFunc(nil)
	}

	return &Controller{
		submitter:  submitter,
		renderer:   renderer,
		downloader: downloader,
		reloader:   reloader,
		logger:     logger,
	}
}

// State returns a copy of the current form state
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Submit runs one submission cycle and returns how it ended
func (c *Controller) Submit(ctx context.Context, form Form) Outcome {
	c.renderer.HideResult()
	c.renderer.ClearMessage()
	c.setLoading(true)

	playlistURL := form.TrimmedURL()

	c.mu.Lock()
	c.state.PlaylistURL = playlistURL
	c.mu.Unlock()

	if playlistURL == "" {
		c.setLoading(false)
		c.markInvalid(MsgEmptyURL)

		return OutcomeValidationError
	}

	c.logger.Debugf("[EXPORT] Submitting %s to %s", playlistURL, form.Action)

	resp, err := c.submitter.Submit(ctx, form)
	if err != nil {
		c.setLoading(false)
		c.logger.Debugf("[EXPORT] Export failed: %v", err)
		c.renderer.SetMessage(MsgNetworkError, MessageError)

		return OutcomeNetworkError
	}

	if !resp.OK() {
		c.logger.Debugf("[EXPORT] Server returned status %d, reloading form page", resp.StatusCode)
		c.reload(ctx, form.Action)
		c.setLoading(false)

		return OutcomeServerError
	}

	filename := ParseFilename(resp.Header.Get("Content-Disposition"))
	csvData := string(resp.Body)

	if csvData == "" {
		c.setLoading(false)

		return OutcomeEmpty
	}

	result := NewResult(csvData, filename)

	c.setInvalid(false)
	c.renderer.ShowResult(result)
	c.renderer.SetMessage(MsgComplete, MessageInfo)

	path, err := c.downloader.Download(result.Artifact())
	if err != nil {
		c.logger.Debugf("[EXPORT] Download of %s failed: %v", filename, err)
		c.renderer.SetMessage(fmt.Sprintf(MsgSaveFailed, err), MessageError)
	} else {
		c.logger.Debugf("[EXPORT] Saved %d rows to %s", result.RowCount, path)
	}

	c.setLoading(false)

	return OutcomeSuccess
}

// Input handles an edit of the URL field.
// A pending validation error is cleared; nothing is re-validated.
func (c *Controller) Input() {
	c.mu.Lock()
	invalid := c.state.Invalid
	c.mu.Unlock()

	if !invalid {
		return
	}

	c.setInvalid(false)
	c.renderer.ClearMessage()
}

func (c *Controller) reload(ctx context.Context, action string) {
	if c.reloader == nil {
		return
	}

	flashes, err := c.reloader.Reload(ctx, action)
	if err != nil {
		c.logger.Debugf("[EXPORT] Reload failed: %v", err)

		return
	}

	if len(flashes) > 0 {
		c.renderer.ShowFlashes(flashes)
	}
}

func (c *Controller) setLoading(loading bool) {
	c.mu.Lock()
	c.state.Loading = loading
	c.mu.Unlock()

	c.renderer.SetLoading(loading)
}

func (c *Controller) setInvalid(invalid bool) {
	c.mu.Lock()
	c.state.Invalid = invalid
	c.mu.Unlock()

	c.renderer.SetInvalid(invalid)
}

func (c *Controller) markInvalid(message string) {
	c.setInvalid(true)
	c.renderer.SetMessage(message, MessageError)
}
