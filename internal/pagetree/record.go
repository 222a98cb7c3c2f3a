package pagetree

// Record is one planned output page plus the references the renderer needs
// to find its payload.
type Record struct {
	Kind       Kind
	OutputPath string
	Depth      int
	LinkPrefix string

	Title string
	// Name is the root page name for fixed pages ("index", "chi-siamo", ...).
	Name        string
	Section     string
	SectionSlug string
	Topic       string
	// ListKey names the content flat list backing a root page, if any.
	ListKey string
	// Article indexes the build's article slice; -1 for non-article pages.
	Article int
	// BackLink is the site-root-relative path of an article's section page.
	// Empty when the article names an unknown section.
	BackLink string
}

// Href returns a link from this page to a site-root-relative target.
func (r Record) Href(target string) string {
	return r.LinkPrefix + target
}
