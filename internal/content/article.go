package content

import (
	"context"
	"html/template"
	"time"
)

// Article is a single published piece. Slug is assigned by the source and
// used verbatim as the output file stem.
type Article struct {
	Slug    string
	Title   string
	Excerpt string
	Date    time.Time
	Section string
	Author  string
	// Body is the rendered article text; empty means the placeholder body.
	Body template.HTML
}

// Source supplies the ordered article list for one build.
type Source interface {
	Articles(ctx context.Context) ([]Article, error)
}

// MultiSource concatenates sources in order.
type MultiSource []Source

func (m MultiSource) Articles(ctx context.Context) ([]Article, error) {
	var out []Article
	for _, src := range m {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		articles, err := src.Articles(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, articles...)
	}
	return out, nil
}

// CalendarDate truncates t to its UTC calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
