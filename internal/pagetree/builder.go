package pagetree

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/slug"
)

// Root page names.
const (
	HomeName         = "index"
	SectionIndexName = "sezioni"
)

type rootPage struct {
	name    string
	kind    Kind
	title   string
	listKey string
}

// fixedPages are the root pages after home and the section index, in order.
var fixedPages = []rootPage{
	{name: "rubriche", kind: KindFlatList, title: "Rubriche", listKey: content.KeyRubriche},
	{name: "approfondimenti", kind: KindStatic, title: "Approfondimenti", listKey: content.KeyApprofondimenti},
	{name: "autori", kind: KindStatic, title: "Autori", listKey: content.KeyAutori},
	{name: "chi-siamo", kind: KindStatic, title: "Chi siamo", listKey: content.KeyChiSiamo},
	{name: "contatti", kind: KindStatic, title: "Contatti", listKey: content.KeyContatti},
}

// WarningUnknownSection marks an article whose section is not in the tree.
const WarningUnknownSection = "unknown_section"

// Warning is a non-fatal planning finding.
type Warning struct {
	Kind    string
	Subject string
	Message string
}

// Options tunes planning policy.
type Options struct {
	// StrictSections makes an article with an unknown section fatal.
	StrictSections bool
}

// Tree is the planned site: records in emission order plus lookup indexes.
type Tree struct {
	Records  []Record
	Warnings []Warning

	sectionSlugs map[string]string
	topicPaths   map[[2]string]string
	articlePaths map[string]string
	byPath       map[string]int
}

// Build plans every page of the site. It fails before producing any record
// when a name normalizes to an empty slug or two nodes claim the same path.
func Build(tree *content.Tree, articles []content.Article, opts Options) (*Tree, error) {
	if tree == nil {
		tree = content.NewTree()
	}
	b := &builder{
		t: &Tree{
			sectionSlugs: make(map[string]string, len(tree.Sections)),
			topicPaths:   make(map[[2]string]string),
			articlePaths: make(map[string]string, len(articles)),
			byPath:       make(map[string]int),
		},
		owners: make(map[string]string),
	}

	if err := b.rootPages(); err != nil {
		return nil, err
	}
	if err := b.sections(tree.Sections); err != nil {
		return nil, err
	}
	if err := b.articles(articles, opts); err != nil {
		return nil, err
	}
	return b.t, nil
}

type builder struct {
	t *Tree
	// owners maps an output path to a description of the node that claimed it.
	owners map[string]string
}

func (b *builder) add(rec Record, owner string) error {
	if first, taken := b.owners[rec.OutputPath]; taken {
		return errors.ValidationError(fmt.Sprintf("slug collision: %s and %s both map to %s", first, owner, rec.OutputPath)).
			WithContext("path", rec.OutputPath).
			WithContext("first", first).
			WithContext("second", owner).
			Build()
	}
	b.owners[rec.OutputPath] = owner
	b.t.byPath[rec.OutputPath] = len(b.t.Records)
	b.t.Records = append(b.t.Records, rec)
	return nil
}

func place(rec Record, p Placement) Record {
	rec.OutputPath = p.OutputPath
	rec.Depth = p.Depth
	rec.LinkPrefix = p.LinkPrefix
	return rec
}

func (b *builder) rootPages() error {
	pages := append([]rootPage{
		{name: HomeName, kind: KindHome, title: "Homepage"},
		{name: SectionIndexName, kind: KindSectionIndex, title: "Sezioni"},
	}, fixedPages...)

	for _, p := range pages {
		rec := place(Record{Kind: p.kind, Title: p.title, Name: p.name, ListKey: p.listKey, Article: -1}, RootPage(p.name))
		if err := b.add(rec, fmt.Sprintf("page %q", p.name)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) sections(sections []content.Section) error {
	for _, sec := range sections {
		secSlug := slug.Normalize(sec.Name)
		if secSlug == "" {
			return emptySlugError("section", sec.Name, "").Build()
		}
		b.t.sectionSlugs[sec.Name] = secSlug

		rec := place(Record{Kind: KindSection, Title: sec.Name, Section: sec.Name, SectionSlug: secSlug, Article: -1}, SectionPage(secSlug))
		if err := b.add(rec, fmt.Sprintf("section %q", sec.Name)); err != nil {
			return err
		}

		for _, topic := range sec.Topics {
			topicSlug := slug.Normalize(topic)
			if topicSlug == "" {
				return emptySlugError("sub-topic", topic, sec.Name).Build()
			}
			rec := place(Record{
				Kind:        KindSectionTopic,
				Title:       sec.Name + " · " + topic,
				Section:     sec.Name,
				SectionSlug: secSlug,
				Topic:       topic,
				Article:     -1,
			}, TopicPage(secSlug, topicSlug))
			if err := b.add(rec, fmt.Sprintf("sub-topic %q of section %q", topic, sec.Name)); err != nil {
				return err
			}
			b.t.topicPaths[[2]string{sec.Name, topic}] = rec.OutputPath
		}
	}
	return nil
}

func emptySlugError(what, name, section string) *errors.ErrorBuilder {
	eb := errors.ValidationError(fmt.Sprintf("%s name %q has no letters or digits and cannot be used in a file name", what, name)).
		WithContext(strings.ReplaceAll(what, "-", "_"), name)
	if section != "" {
		eb = eb.WithContext("section", section)
	}
	return eb
}

func (b *builder) articles(articles []content.Article, opts Options) error {
	for i, a := range articles {
		if a.Slug == "" || strings.ContainsAny(a.Slug, `/\`) {
			return errors.ValidationError(fmt.Sprintf("article slug %q is not a valid file name", a.Slug)).
				WithContext("article", a.Title).
				Build()
		}

		rec := place(Record{Kind: KindArticle, Title: a.Title, Section: a.Section, Article: i}, ArticlePage(a.Slug))
		if secSlug, ok := b.t.sectionSlugs[a.Section]; ok {
			rec.SectionSlug = secSlug
			rec.BackLink = SectionPage(secSlug).OutputPath
		} else {
			msg := fmt.Sprintf("article %q references unknown section %q", a.Slug, a.Section)
			if opts.StrictSections {
				return errors.ValidationError(msg).
					WithContext("article", a.Slug).
					WithContext("section", a.Section).
					Build()
			}
			b.t.Warnings = append(b.t.Warnings, Warning{Kind: WarningUnknownSection, Subject: a.Slug, Message: msg})
		}

		if err := b.add(rec, fmt.Sprintf("article %q", a.Slug)); err != nil {
			return err
		}
		b.t.articlePaths[a.Slug] = rec.OutputPath
	}
	return nil
}

// SectionPath returns the page path of a section by display name.
func (t *Tree) SectionPath(section string) (string, bool) {
	s, ok := t.sectionSlugs[section]
	if !ok {
		return "", false
	}
	return SectionPage(s).OutputPath, true
}

// SectionSlug returns the slug assigned to a section display name.
func (t *Tree) SectionSlug(section string) (string, bool) {
	s, ok := t.sectionSlugs[section]
	return s, ok
}

// TopicPath returns the page path of a section's sub-topic.
func (t *Tree) TopicPath(section, topic string) (string, bool) {
	p, ok := t.topicPaths[[2]string{section, topic}]
	return p, ok
}

// ArticlePath returns the page path of an article slug.
func (t *Tree) ArticlePath(articleSlug string) (string, bool) {
	p, ok := t.articlePaths[articleSlug]
	return p, ok
}

// Lookup returns the record planned at outputPath.
func (t *Tree) Lookup(outputPath string) (Record, bool) {
	i, ok := t.byPath[outputPath]
	if !ok {
		return Record{}, false
	}
	return t.Records[i], true
}

// ByKind returns the records of one kind in emission order.
func (t *Tree) ByKind(kind Kind) []Record {
	var out []Record
	for _, r := range t.Records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// Paths returns every planned output path in emission order.
func (t *Tree) Paths() []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.OutputPath
	}
	return out
}
