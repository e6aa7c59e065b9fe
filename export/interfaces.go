// ABOUTME: Interfaces the export controller depends on
// ABOUTME: Separates form orchestration from HTTP, display and file output

package export

import (
	"context"
	"net/http"
)

// MessageKind selects how a status message is styled
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageError
)

// Renderer is the display surface for one form
type Renderer interface {
	SetLoading(loading bool)
	SetInvalid(invalid bool)
	SetMessage(text string, kind MessageKind)
	ClearMessage()
	ShowResult(r Result)
	HideResult()
	ShowFlashes(flashes []Flash)
}

// Submitter sends a form to the export endpoint.
// A returned error means the request could not complete; HTTP error statuses are not errors.
type Submitter interface {
	Submit(ctx context.Context, form Form) (*Response, error)
}

// Downloader saves an artifact for the user
type Downloader interface {
	Download(a Artifact) (string, error)
}

// Reloader re-renders the form page so server-side feedback becomes visible
type Reloader interface {
	Reload(ctx context.Context, action string) ([]Flash, error)
}

// Logger provides debug logging capability
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// LoggerFunc adapts a printf-style function to Logger
type LoggerFunc func(format string, args ...interface{})

// Debugf calls f
func (f LoggerFunc) Debugf(format string, args ...interface{}) {
	if f != nil {
		f(format, args...)
	}
}
