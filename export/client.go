// ABOUTME: HTTP transport for the export form
// ABOUTME: Multipart POST to the export endpoint and page reload sharing one cookie jar

package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// HTTPClient submits export forms and reloads the form page over HTTP.
// Redirects are returned to the caller instead of followed, so the
// server's flash-and-redirect error answer counts as a failed export.
type HTTPClient struct {
	HTTPClient *http.Client
	Logger     Logger
}

// NewHTTPClient creates an HTTPClient. A zero timeout means no timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	jar, _ := cookiejar.New(nil)

	return &HTTPClient{
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Logger: LoggerFunc(nil),
	}
}

// Submit posts the form as multipart/form-data and reads the full response
func (c *HTTPClient) Submit(ctx context.Context, form Form) (*Response, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, form.Action, body)
	if err != nil {
		return nil, fmt.Errorf("creating export request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/csv, text/html;q=0.9, */*;q=0.8")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading export response: %w", err)
	}

	c.logger().Debugf("[HTTP] POST %s -> %d (%d bytes)", form.Action, resp.StatusCode, len(data))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Reload fetches the form page again and returns the flash messages it shows.
// Redirects are followed here; the jar carries the session cookie holding the flash.
func (c *HTTPClient) Reload(ctx context.Context, action string) ([]Flash, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, action, nil)
	if err != nil {
		return nil, fmt.Errorf("creating reload request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	client := *c.HTTPClient
	client.CheckRedirect = nil

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reload failed (status %d)", resp.StatusCode)
	}

	flashes, err := ParseFlashes(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing reloaded page: %w", err)
	}

	c.logger().Debugf("[HTTP] Reloaded %s, %d flash message(s)", action, len(flashes))

	return flashes, nil
}

func (c *HTTPClient) logger() Logger {
	if c.Logger == nil {
		return LoggerFunc(nil)
	}

	return c.Logger
}
