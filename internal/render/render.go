// Package render turns planned page records into complete HTML documents.
//
// Every page is composed from html/template components embedded in the
// binary: a shared layout, card and breadcrumb partials, and one body
// template per page kind. All links are built from the page tree, prefixed
// with the record's link prefix, so rendered output never guesses a path.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/pagetree"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed fragments/*.md
var fragmentFS embed.FS

// DefaultBrand is the site name shown in the header, title and footer.
const DefaultBrand = "Politica & Geopolitica"

// DateLayout renders calendar dates the way it-IT readers expect (d/m/yyyy).
const DateLayout = "2/1/2006"

const (
	featuredArticles = 3
	featuredSections = 4
)

// FragmentReader looks up a hand-written page body by page name.
type FragmentReader interface {
	Read(name string) (content.Fragment, bool, error)
}

// Options configures a Renderer.
type Options struct {
	Brand string
	Lang  string
	// StyleVersion is appended to the stylesheet URL as a cache buster.
	StyleVersion string
	// HeroImage is set when images/home_page.jpg was materialized.
	HeroImage bool
	Clock     clockwork.Clock
	Markdown  *markdown.Renderer
	// Fragments overrides the embedded static page bodies.
	Fragments FragmentReader
}

// Site is everything a page may reference.
type Site struct {
	Content  *content.Tree
	Articles []content.Article
	Pages    *pagetree.Tree
}

// Renderer executes the embedded templates. It is safe for concurrent use
// once constructed.
type Renderer struct {
	tpl      *template.Template
	opts     Options
	defaults content.Fragments
	year     int
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	if opts.Brand == "" {
		opts.Brand = DefaultBrand
	}
	if opts.Lang == "" {
		opts.Lang = "it"
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Markdown == nil {
		opts.Markdown = markdown.New()
	}

	tpl, err := template.New("site").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "parse page templates").Build()
	}
	sub, err := fs.Sub(fragmentFS, "fragments")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "open embedded fragments").Build()
	}

	return &Renderer{
		tpl:      tpl,
		opts:     opts,
		defaults: content.NewFragmentsFS(sub),
		year:     opts.Clock.Now().Year(),
	}, nil
}

// Render produces the complete document for rec.
func (r *Renderer) Render(site *Site, rec pagetree.Record) ([]byte, error) {
	v := view{site: site, rec: rec}

	var (
		name string
		data any
		err  error
	)
	switch rec.Kind {
	case pagetree.KindHome:
		name, data = "home", r.home(v)
	case pagetree.KindSectionIndex:
		name, data = "sectionIndex", r.sectionIndex(v)
	case pagetree.KindSection:
		name, data = "section", r.section(v)
	case pagetree.KindSectionTopic:
		name, data = "sectionTopic", r.topic(v)
	case pagetree.KindFlatList:
		name, data = "flatList", r.flatList(v)
	case pagetree.KindStatic:
		name = "static"
		data, err = r.static(v)
	case pagetree.KindArticle:
		name = "article"
		data, err = r.article(v)
	default:
		err = fmt.Errorf("unknown page kind %q", rec.Kind)
	}
	if err != nil {
		return nil, renderError(err, rec)
	}

	var body bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&body, name, data); err != nil {
		return nil, renderError(err, rec)
	}

	var doc bytes.Buffer
	// #nosec G203 -- body was produced by html/template above
	if err := r.tpl.ExecuteTemplate(&doc, "layout", r.layout(v, template.HTML(body.String()))); err != nil {
		return nil, renderError(err, rec)
	}
	return doc.Bytes(), nil
}

func renderError(err error, rec pagetree.Record) error {
	if errors.IsClassified(err) {
		return err
	}
	return errors.WrapError(err, errors.CategoryRender, "render page").
		Fatal().
		WithContext("path", rec.OutputPath).
		WithContext("kind", rec.Kind.String()).
		Build()
}

// staticBody resolves a static page fragment: an authored override first,
// then the embedded default.
func (r *Renderer) staticBody(name string) (content.Fragment, template.HTML, error) {
	var (
		frag content.Fragment
		ok   bool
		err  error
	)
	if r.opts.Fragments != nil {
		frag, ok, err = r.opts.Fragments.Read(name)
		if err != nil {
			return content.Fragment{}, "", err
		}
	}
	if !ok {
		if frag, _, err = r.defaults.Read(name); err != nil {
			return content.Fragment{}, "", err
		}
	}
	html, err := r.opts.Markdown.ToHTML(frag.Body)
	if err != nil {
		return content.Fragment{}, "", err
	}
	return frag, html, nil
}

// readingTime estimates minutes at 200 words per minute.
func readingTime(body template.HTML) string {
	if body == "" {
		return "8-10 minuti"
	}
	words := len(strings.Fields(stripTags(string(body))))
	minutes := (words + 199) / 200
	if minutes <= 1 {
		return "1 minuto"
	}
	return fmt.Sprintf("%d minuti", minutes)
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
