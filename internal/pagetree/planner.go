package pagetree

import (
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/slug"
)

// Output directories for depth-1 pages.
const (
	SectionsDir = "sezioni"
	ArticlesDir = "articoli"
)

const pageExt = ".html"

// Placement is where a page lives and how it links back to the site root.
type Placement struct {
	OutputPath string
	Depth      int
	LinkPrefix string
}

// Place derives depth and link prefix from a slash-separated output path.
func Place(outputPath string) Placement {
	depth := strings.Count(outputPath, "/")
	return Placement{OutputPath: outputPath, Depth: depth, LinkPrefix: LinkPrefix(depth)}
}

// LinkPrefix returns "./" for root pages and "../" repeated depth times otherwise.
func LinkPrefix(depth int) string {
	if depth <= 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}

// RootPage places a site-root page such as "index" or "chi-siamo".
func RootPage(name string) Placement {
	return Place(name + pageExt)
}

// SectionPage places a section's own page.
func SectionPage(sectionSlug string) Placement {
	return Place(SectionsDir + "/" + sectionSlug + pageExt)
}

// TopicPage places a section+sub-topic page beside its section page.
func TopicPage(sectionSlug, topicSlug string) Placement {
	return Place(SectionsDir + "/" + slug.Join(sectionSlug, topicSlug) + pageExt)
}

// ArticlePage places an article under its verbatim slug.
func ArticlePage(articleSlug string) Placement {
	return Place(ArticlesDir + "/" + articleSlug + pageExt)
}
