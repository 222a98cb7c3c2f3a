package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// dateLayouts are tried in order for the frontmatter date field.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// articleMeta is the frontmatter schema of an article file.
type articleMeta struct {
	Slug    string `yaml:"slug" validate:"required,excludesall=/\\"`
	Title   string `yaml:"title" validate:"required"`
	Excerpt string `yaml:"excerpt"`
	Date    string `yaml:"date" validate:"required"`
	Section string `yaml:"section" validate:"required"`
	Author  string `yaml:"author"`
}

const defaultAuthor = "Redazione"

// DirSource reads articles from *.md files with YAML frontmatter. Files are
// returned in file-name order. A missing directory yields no articles.
type DirSource struct {
	dir string
	md  *markdown.Renderer
}

// NewDirSource returns a source over dir rendering bodies with md.
func NewDirSource(dir string, md *markdown.Renderer) *DirSource {
	return &DirSource{dir: dir, md: md}
}

func (s *DirSource) Articles(ctx context.Context) ([]Article, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read articles directory").
			Fatal().
			WithContext("path", s.dir).
			Build()
	}

	var out []Article
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := s.readArticle(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *DirSource) readArticle(path string) (Article, error) {
	// #nosec G304 -- path is a directory entry under the configured source dir
	raw, err := os.ReadFile(path)
	if err != nil {
		return Article{}, errors.WrapError(err, errors.CategoryFileSystem, "read article").
			Fatal().WithContext("path", path).Build()
	}

	fm, body, had, err := frontmatter.Split(raw)
	if err != nil || !had {
		if err == nil {
			err = fmt.Errorf("no frontmatter block")
		}
		return Article{}, errors.WrapError(err, errors.CategoryValidation, "invalid article frontmatter").
			Fatal().WithContext("path", path).Build()
	}

	var meta articleMeta
	if err := frontmatter.Decode(fm, &meta); err != nil {
		return Article{}, errors.WrapError(err, errors.CategoryValidation, "invalid article frontmatter").
			Fatal().WithContext("path", path).Build()
	}
	if err := validate.Struct(meta); err != nil {
		return Article{}, errors.WrapError(err, errors.CategoryValidation, "invalid article frontmatter").
			Fatal().WithContext("path", path).Build()
	}

	date, err := parseDate(meta.Date)
	if err != nil {
		return Article{}, errors.WrapError(err, errors.CategoryValidation, "invalid article date").
			Fatal().WithContext("path", path).WithContext("date", meta.Date).Build()
	}

	html, err := s.md.ToHTML(body)
	if err != nil {
		return Article{}, errors.WrapError(err, errors.CategoryRender, "render article body").
			Fatal().WithContext("path", path).Build()
	}

	author := meta.Author
	if author == "" {
		author = defaultAuthor
	}
	return Article{
		Slug:    meta.Slug,
		Title:   meta.Title,
		Excerpt: meta.Excerpt,
		Date:    date,
		Section: meta.Section,
		Author:  author,
		Body:    html,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (use YYYY-MM-DD or RFC3339)", s)
}
