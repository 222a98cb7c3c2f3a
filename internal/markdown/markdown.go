// Package markdown renders hand-written content fragments to HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown fragments into trusted HTML snippets.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub-flavoured extensions. Raw HTML inside
// fragments is passed through: fragments are authored alongside the site and
// carry forms and buttons that Markdown cannot express.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// ToHTML renders src. Empty input yields an empty fragment.
func (r *Renderer) ToHTML(src []byte) (template.HTML, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", err
	}
	// #nosec G203 -- fragments are site-authored content, not user input
	return template.HTML(buf.String()), nil
}
