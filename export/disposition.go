// ABOUTME: Content-Disposition filename extraction for export responses
// ABOUTME: Pure header parsing, no network or filesystem access

package export

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultFilename is used when the response does not name the file
const DefaultFilename = "playlist.csv"

// filenamePattern matches both filename= and filename*=UTF-8'' directives.
// Only the first directive in the header is used.
var filenamePattern = regexp.MustCompile(`filename\*?=(?:UTF-8'')?([^;]+)`)

// ParseFilename derives the download filename from a content-disposition header value.
// Quote characters are stripped and the value is percent-decoded.
func ParseFilename(header string) string {
	if header == "" {
		return DefaultFilename
	}

	match := filenamePattern.FindStringSubmatch(header)
	if len(match) < 2 {
		return DefaultFilename
	}

	raw := strings.ReplaceAll(match[1], `"`, "")

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		// Malformed escapes: keep what the server sent
		return raw
	}

	return decoded
}
