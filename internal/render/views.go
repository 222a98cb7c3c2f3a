package render

import (
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/pagetree"
)

type view struct {
	site *Site
	rec  pagetree.Record
}

func (v view) href(target string) string { return v.rec.Href(target) }

type link struct {
	Label string
	Href  string
}

type layoutData struct {
	Lang         string
	Title        string
	Brand        string
	Prefix       string
	StyleVersion string
	Year         int
	Nav          []link
	Content      template.HTML
}

var navPages = []link{
	{Label: "Home", Href: "index.html"},
	{Label: "Approfondimenti", Href: "approfondimenti.html"},
	{Label: "Autori", Href: "autori.html"},
	{Label: "Chi siamo", Href: "chi-siamo.html"},
	{Label: "Contatti", Href: "contatti.html"},
}

func (r *Renderer) layout(v view, body template.HTML) layoutData {
	nav := make([]link, len(navPages))
	for i, l := range navPages {
		nav[i] = link{Label: l.Label, Href: v.href(l.Href)}
	}
	return layoutData{
		Lang:         r.opts.Lang,
		Title:        v.rec.Title,
		Brand:        r.opts.Brand,
		Prefix:       v.rec.LinkPrefix,
		StyleVersion: r.opts.StyleVersion,
		Year:         r.year,
		Nav:          nav,
		Content:      body,
	}
}

type articleCard struct {
	Title   string
	Excerpt string
	Section string
	Date    string
	Href    string
}

type imageCard struct {
	Title   string
	Caption string
	Alt     string
	Href    string
	Image   string
}

func (v view) articleCard(a content.Article) articleCard {
	p, _ := v.site.Pages.ArticlePath(a.Slug)
	return articleCard{
		Title:   a.Title,
		Excerpt: a.Excerpt,
		Section: a.Section,
		Date:    a.Date.Format(DateLayout),
		Href:    v.href(p),
	}
}

// sectionImage is the conventional card image for a section slug.
func (v view) sectionImage(sectionSlug string) string {
	return v.href("images/sections/" + sectionSlug + ".jpg")
}

func (v view) sectionCard(name string) imageCard {
	p, _ := v.site.Pages.SectionPath(name)
	s, _ := v.site.Pages.SectionSlug(name)
	return imageCard{Title: name, Alt: name, Href: v.href(p), Image: v.sectionImage(s)}
}

func (v view) topicCards(sec content.Section) []imageCard {
	s, _ := v.site.Pages.SectionSlug(sec.Name)
	cards := make([]imageCard, 0, len(sec.Topics))
	for _, topic := range sec.Topics {
		p, _ := v.site.Pages.TopicPath(sec.Name, topic)
		cards = append(cards, imageCard{
			Title:   topic,
			Caption: sec.Name,
			Alt:     sec.Name + " · " + topic,
			Href:    v.href(p),
			Image:   v.sectionImage(s),
		})
	}
	return cards
}

func (v view) sectionArticles(section string) []articleCard {
	var cards []articleCard
	for _, a := range v.site.Articles {
		if a.Section == section {
			cards = append(cards, v.articleCard(a))
		}
	}
	return cards
}

func (v view) sectionCrumbs() []link {
	return []link{
		{Label: "Home", Href: v.href("index.html")},
		{Label: "Sezioni", Href: v.href(pagetree.SectionIndexName + ".html")},
	}
}

type homeData struct {
	HeroImage string
	Focus     string
	Featured  []articleCard
	Sections  []imageCard
}

func (r *Renderer) home(v view) homeData {
	d := homeData{Focus: v.site.Content.Focus()}
	if r.opts.HeroImage {
		d.HeroImage = v.href("images/home_page.jpg")
	}
	for i, a := range v.site.Articles {
		if i == featuredArticles {
			break
		}
		d.Featured = append(d.Featured, v.articleCard(a))
	}
	for i, sec := range v.site.Content.Sections {
		if i == featuredSections {
			break
		}
		d.Sections = append(d.Sections, v.sectionCard(sec.Name))
	}
	return d
}

type sectionGroup struct {
	Name   string
	Href   string
	Topics []imageCard
}

type sectionIndexData struct {
	Groups []sectionGroup
}

func (r *Renderer) sectionIndex(v view) sectionIndexData {
	var d sectionIndexData
	for _, sec := range v.site.Content.Sections {
		p, _ := v.site.Pages.SectionPath(sec.Name)
		d.Groups = append(d.Groups, sectionGroup{Name: sec.Name, Href: v.href(p), Topics: v.topicCards(sec)})
	}
	return d
}

type sectionData struct {
	Crumbs   []link
	Name     string
	Topics   []imageCard
	Articles []articleCard
}

func (r *Renderer) section(v view) sectionData {
	sec, _ := v.site.Content.Section(v.rec.Section)
	return sectionData{
		Crumbs:   append(v.sectionCrumbs(), link{Label: sec.Name}),
		Name:     v.rec.Section,
		Topics:   v.topicCards(sec),
		Articles: v.sectionArticles(v.rec.Section),
	}
}

type topicData struct {
	Crumbs   []link
	Section  string
	Topic    string
	Articles []articleCard
}

func (r *Renderer) topic(v view) topicData {
	p, _ := v.site.Pages.SectionPath(v.rec.Section)
	return topicData{
		Crumbs: append(v.sectionCrumbs(),
			link{Label: v.rec.Section, Href: v.href(p)},
			link{Label: v.rec.Topic},
		),
		Section:  v.rec.Section,
		Topic:    v.rec.Topic,
		Articles: v.sectionArticles(v.rec.Section),
	}
}

type listData struct {
	Title string
	Items []string
}

func (r *Renderer) flatList(v view) listData {
	return listData{Title: v.rec.ListKey, Items: v.site.Content.FlatList(v.rec.ListKey)}
}

type staticData struct {
	Title string
	Lead  string
	Body  template.HTML
	Items []string
}

func (r *Renderer) static(v view) (staticData, error) {
	frag, body, err := r.staticBody(v.rec.Name)
	if err != nil {
		return staticData{}, err
	}
	title := frag.Title
	if title == "" {
		title = v.rec.Title
	}
	return staticData{
		Title: title,
		Lead:  frag.Lead,
		Body:  body,
		Items: v.site.Content.FlatList(v.rec.ListKey),
	}, nil
}

type articleData struct {
	Crumbs      []link
	Section     string
	Date        string
	Title       string
	Excerpt     string
	Author      string
	ReadingTime string
	Body        template.HTML
}

func (r *Renderer) article(v view) (articleData, error) {
	if v.rec.Article < 0 || v.rec.Article >= len(v.site.Articles) {
		return articleData{}, errArticleIndex(v.rec)
	}
	a := v.site.Articles[v.rec.Article]

	section := link{Label: a.Section}
	if v.rec.BackLink != "" {
		section.Href = v.href(v.rec.BackLink)
	}
	return articleData{
		Crumbs:      []link{{Label: "Home", Href: v.href("index.html")}, section, {Label: a.Title}},
		Section:     a.Section,
		Date:        a.Date.Format(DateLayout),
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Author:      a.Author,
		ReadingTime: readingTime(a.Body),
		Body:        a.Body,
	}, nil
}

func errArticleIndex(rec pagetree.Record) error {
	return fmt.Errorf("article index %d out of range for %s", rec.Article, rec.OutputPath)
}
