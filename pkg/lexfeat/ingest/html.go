package ingest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
)

// skippedElements hold no reader-visible prose.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"template": true,
}

// ExtractText returns the visible text of an HTML document, one space between
// text nodes, so markup can be fed to Tokenize.
func ExtractText(doc string) (string, error) {
	if !utf8.ValidString(doc) {
		return "", fmt.Errorf("%w: document is not valid UTF-8", internalerr.ErrInvalidInput)
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", internalerr.ErrInvalidInput, err)
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(parts, " "), nil
}
