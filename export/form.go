// ABOUTME: Form payload and per-submission form state
// ABOUTME: Builds the multipart body sent to the export endpoint

package export

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"
)

// DefaultURLField is the form field the export server reads the playlist URL from
const DefaultURLField = "playlist_url"

// Form is one submission of the export form
type Form struct {
	Action      string     // Target URL of the form
	URLField    string     // Field name for PlaylistURL (defaults to DefaultURLField)
	PlaylistURL string     // As entered by the user, untrimmed
	Fields      url.Values // Any other fields present on the form
}

// FormState is the transient state of the current submission cycle
type FormState struct {
	PlaylistURL string
	Loading     bool
	Invalid     bool
}

// TrimmedURL returns the playlist URL with surrounding whitespace removed
func (f Form) TrimmedURL() string {
	return strings.TrimSpace(f.PlaylistURL)
}

func (f Form) urlField() string {
	if f.URLField == "" {
		return DefaultURLField
	}

	return f.URLField
}

// Encode writes the form as multipart/form-data and returns the body and content type.
// The playlist URL is sent exactly as entered, matching what the form holds.
func (f Form) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	// Deterministic field order keeps requests reproducible
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		if name != f.urlField() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range f.Fields[name] {
			if err := w.WriteField(name, value); err != nil {
				return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
			}
		}
	}

	if err := w.WriteField(f.urlField(), f.PlaylistURL); err != nil {
		return nil, "", fmt.Errorf("failed to write form field %s: %w", f.urlField(), err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form body: %w", err)
	}

	return body, w.FormDataContentType(), nil
}
