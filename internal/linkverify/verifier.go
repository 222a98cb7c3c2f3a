// Package linkverify checks that relative links in generated pages resolve
// to files inside the output tree.
package linkverify

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitegen/internal/util/sets"
)

// BrokenLink is a relative link whose target is missing from the output.
type BrokenLink struct {
	Page   string // Output path of the page carrying the link
	URL    string // Link as written
	Target string // Site-root-relative resolution of URL
	Tag    string
}

// Report summarizes one verification run.
type Report struct {
	Pages  int
	Links  int
	Broken []BrokenLink
}

// Verifier resolves links against planned pages first and the output
// directory second, so assets written outside the plan are found too.
type Verifier struct {
	root        string
	planned     sets.Set[string]
	concurrency int
}

// NewVerifier returns a verifier for the output tree at root. planned lists
// the slash-separated page paths the build produced.
func NewVerifier(root string, planned []string, concurrency int) *Verifier {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Verifier{root: root, planned: sets.New(planned...), concurrency: concurrency}
}

// Verify parses each page and checks its local links. Broken links are
// reported in page order; only I/O and parse failures return an error.
func (v *Verifier) Verify(ctx context.Context, pages []string) (*Report, error) {
	results := make([][]BrokenLink, len(pages))
	counts := make([]int, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			links, err := ExtractLinks(filepath.Join(v.root, filepath.FromSlash(page)))
			if err != nil {
				return err
			}
			links = FilterLinks(links)
			counts[i] = len(links)
			for _, l := range links {
				if target, ok := v.resolves(page, l.URL); !ok {
					results[i] = append(results[i], BrokenLink{Page: page, URL: l.URL, Target: target, Tag: l.Tag})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Pages: len(pages)}
	for i := range pages {
		report.Links += counts[i]
		report.Broken = append(report.Broken, results[i]...)
	}
	return report, nil
}

// resolves reports whether link, found on page, names an existing file.
func (v *Verifier) resolves(page, link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return link, false
	}
	target := path.Clean(path.Join(path.Dir(page), u.Path))
	if target == ".." || strings.HasPrefix(target, "../") {
		return target, false
	}
	if v.planned.Has(target) {
		return target, true
	}
	info, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(target)))
	return target, err == nil && !info.IsDir()
}
