package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL       string // The URL or path
	Text      string // Link text/title
	Tag       string // HTML tag (a, img, link, ...)
	Attribute string // Attribute containing the link (href, src)
	// IsLocal is true for relative links that point into the output tree.
	IsLocal bool
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string) ([]*Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithSeverity(errors.SeverityError).WithContext("html_path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader extracts all links from an HTML reader.
func ExtractLinksFromReader(r io.Reader) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").WithSeverity(errors.SeverityError).Build()
	}

	var links []*Link
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			extractElementLinks(n, &links)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(doc)
	return links, nil
}

// linkAttrs maps element names to the attribute carrying their link.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
}

// extractElementLinks extracts links from a single HTML element.
func extractElementLinks(n *html.Node, links *[]*Link) {
	attr, ok := linkAttrs[n.Data]
	if !ok {
		return
	}
	val := getAttr(n, attr)
	if val == "" {
		return
	}

	var text string
	switch n.Data {
	case "a":
		text = extractText(n)
	case "img":
		text = getAttr(n, "alt")
	case "link":
		text = getAttr(n, "rel")
	}
	*links = append(*links, &Link{
		URL:       val,
		Text:      text,
		Tag:       n.Data,
		Attribute: attr,
		IsLocal:   isLocalLink(val),
	})
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}

	return strings.TrimSpace(text.String())
}

// isLocalLink reports whether a URL is a relative path into the output tree.
func isLocalLink(linkURL string) bool {
	if linkURL == "" || strings.HasPrefix(linkURL, "#") {
		return false
	}
	u, err := url.Parse(linkURL)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && !strings.HasPrefix(u.Path, "/") && u.Path != ""
}

// ShouldVerifyLink determines if a link should be checked against the output.
func ShouldVerifyLink(link *Link) bool {
	return link != nil && link.IsLocal
}

// FilterLinks returns the links that should be verified.
func FilterLinks(links []*Link) []*Link {
	var filtered []*Link
	for _, link := range links {
		if ShouldVerifyLink(link) {
			filtered = append(filtered, link)
		}
	}
	return filtered
}
