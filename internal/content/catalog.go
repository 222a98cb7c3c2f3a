package content

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

const day = 24 * time.Hour

type sample struct {
	slug, title, excerpt, section, author string
	daysAgo                               int
}

var samples = []sample{
	{
		slug:    "prova-prospettive-riforma-istituzionale",
		title:   "Prova · Prospettive di riforma istituzionale",
		excerpt: "Un articolo di prova per illustrare layout, tipografia e card minimaliste. Contenuti reali verranno aggiunti successivamente.",
		section: "Politica interna",
		author:  "Redazione",
	},
	{
		slug:    "analisi-sistema-partitico-italiano",
		title:   "Analisi del sistema partitico italiano",
		excerpt: "Un approfondimento sui partiti politici italiani e le loro dinamiche interne.",
		section: "Politica interna",
		author:  "Marco Rossi",
		daysAgo: 2,
	},
	{
		slug:    "relazioni-ue-italia",
		title:   "Le relazioni tra UE e Italia",
		excerpt: "Analisi delle dinamiche politiche ed economiche tra l'Unione Europea e l'Italia.",
		section: "Relazioni internazionali",
		author:  "Anna Bianchi",
		daysAgo: 5,
	},
	{
		slug:    "crisi-energetica-europa",
		title:   "La crisi energetica in Europa",
		excerpt: "Impatto della crisi energetica sui paesi europei e strategie di risposta.",
		section: "Economia globale",
		author:  "Luca Verdi",
		daysAgo: 7,
	},
	{
		slug:    "media-informazione-politica",
		title:   "Media e informazione politica",
		excerpt: "Il ruolo dei media nella formazione dell'opinione pubblica e nella politica.",
		section: "Società e cultura politica",
		author:  "Sofia Neri",
		daysAgo: 10,
	},
	{
		slug:    "storia-democrazia-italiana",
		title:   "Storia della democrazia italiana",
		excerpt: "Un percorso attraverso la storia democratica dell'Italia dal dopoguerra a oggi.",
		section: "Storia e prospettive",
		author:  "Giuseppe Bianchi",
		daysAgo: 12,
	},
}

// Catalog is the built-in sample article list. Publication dates are relative
// to the build clock so a fixed clock yields identical output.
type Catalog struct {
	clock clockwork.Clock
}

// NewCatalog returns the sample catalog dated against clock.
func NewCatalog(clock clockwork.Clock) *Catalog {
	return &Catalog{clock: clock}
}

func (c *Catalog) Articles(_ context.Context) ([]Article, error) {
	now := c.clock.Now()
	out := make([]Article, 0, len(samples))
	for _, s := range samples {
		out = append(out, Article{
			Slug:    s.slug,
			Title:   s.title,
			Excerpt: s.excerpt,
			Date:    CalendarDate(now.Add(-time.Duration(s.daysAgo) * day)),
			Section: s.section,
			Author:  s.author,
		})
	}
	return out, nil
}
