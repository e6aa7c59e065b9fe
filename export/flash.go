// ABOUTME: Extraction of server-rendered flash messages from the form page
// ABOUTME: Walks the HTML tree looking for alert/flash elements

package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Flash is a one-shot message the server rendered into the page
type Flash struct {
	Category string // e.g. "danger", from an alert-<category> class
	Text     string
}

// ParseFlashes returns the flash messages found in an HTML document, in document order
func ParseFlashes(r io.Reader) ([]Flash, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var flashes []Flash

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if category, ok := flashCategory(n); ok {
				if text := nodeText(n); text != "" {
					flashes = append(flashes, Flash{Category: category, Text: text})
				}

				return
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return flashes, nil
}

// flashCategory reports whether n is a flash element and which category it carries
func flashCategory(n *html.Node) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}

		isFlash := false
		category := ""

		for _, class := range strings.Fields(attr.Val) {
			switch {
			case class == "alert" || class == "flash":
				isFlash = true
			case category != "" || class == "alert-dismissible":
			case strings.HasPrefix(class, "alert-"):
				category = strings.TrimPrefix(class, "alert-")
			case strings.HasPrefix(class, "flash-"):
				category = strings.TrimPrefix(class, "flash-")
			}
		}

		return category, isFlash
	}

	return "", false
}

// nodeText joins the text content of n, collapsing whitespace
func nodeText(n *html.Node) string {
	var sb strings.Builder

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		case html.ElementNode:
			// Dismiss buttons carry no message text
			if node.Data == "button" || node.Data == "script" {
				return
			}
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}
