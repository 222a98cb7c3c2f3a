package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
)

var buildTime = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func TestCatalog_DatesFollowClock(t *testing.T) {
	articles, err := NewCatalog(clockwork.NewFakeClockAt(buildTime)).Articles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 6)

	require.Equal(t, "prova-prospettive-riforma-istituzionale", articles[0].Slug)
	require.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), articles[0].Date)

	crisi := articles[3]
	require.Equal(t, "crisi-energetica-europa", crisi.Slug)
	require.Equal(t, "Economia globale", crisi.Section)
	require.Equal(t, time.Date(2026, time.October, 8, 0, 0, 0, 0, time.UTC), crisi.Date)
}

func TestCatalog_Deterministic(t *testing.T) {
	clock := clockwork.NewFakeClockAt(buildTime)
	a, err := NewCatalog(clock).Articles(context.Background())
	require.NoError(t, err)
	b, err := NewCatalog(clock).Articles(context.Background())
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func writeArticle(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestDirSource_ReadsArticlesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "b.md", "---\nslug: elezioni-europee\ntitle: Elezioni europee\ndate: 2026-05-01\nsection: Politica interna\n---\n## Scenario\n\nTesto.\n")
	writeArticle(t, dir, "a.md", "---\nslug: nato-vertice\ntitle: Vertice NATO\nexcerpt: Sintesi\ndate: \"2026-06-10T12:00:00Z\"\nsection: Relazioni internazionali\nauthor: Anna Bianchi\n---\nCorpo.\n")
	writeArticle(t, dir, "notes.txt", "ignored")

	articles, err := NewDirSource(dir, markdown.New()).Articles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)

	require.Equal(t, "nato-vertice", articles[0].Slug)
	require.Equal(t, "Anna Bianchi", articles[0].Author)
	require.Equal(t, time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), articles[0].Date)

	require.Equal(t, "elezioni-europee", articles[1].Slug)
	require.Equal(t, "Redazione", articles[1].Author)
	require.Contains(t, string(articles[1].Body), "<h2 id=\"scenario\">Scenario</h2>")
}

func TestDirSource_MissingDirectory(t *testing.T) {
	articles, err := NewDirSource(filepath.Join(t.TempDir(), "none"), markdown.New()).Articles(context.Background())
	require.NoError(t, err)
	require.Empty(t, articles)
}

func TestDirSource_RejectsInvalidFrontmatter(t *testing.T) {
	cases := map[string]string{
		"missing slug":  "---\ntitle: X\ndate: 2026-01-01\nsection: S\n---\n",
		"slash in slug": "---\nslug: a/b\ntitle: X\ndate: 2026-01-01\nsection: S\n---\n",
		"bad date":      "---\nslug: a\ntitle: X\ndate: ieri\nsection: S\n---\n",
		"no block":      "# just markdown\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeArticle(t, dir, "x.md", doc)
			_, err := NewDirSource(dir, markdown.New()).Articles(context.Background())
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryValidation), "got %v", err)
		})
	}
}

func TestMultiSource_Concatenates(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "x.md", "---\nslug: extra\ntitle: Extra\ndate: 2026-01-01\nsection: Economia globale\n---\n")

	src := MultiSource{NewCatalog(clockwork.NewFakeClockAt(buildTime)), NewDirSource(dir, markdown.New())}
	articles, err := src.Articles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 7)
	require.Equal(t, "extra", articles[6].Slug)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Articles(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFragments_Read(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chi-siamo.md"),
		[]byte("---\ntitle: Chi siamo davvero\nlead: Una redazione indipendente.\n---\n## Missione\n"), 0o600))

	frag, ok, err := NewFragments(dir).Read("chi-siamo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Chi siamo davvero", frag.Title)
	require.Equal(t, "Una redazione indipendente.", frag.Lead)
	require.Equal(t, "## Missione\n", string(frag.Body))

	_, ok, err = NewFragments(dir).Read("contatti")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = NewFragments("").Read("contatti")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFragments_ReadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"autori.md": {Data: []byte("Solo corpo, senza intestazione.\n")},
	}

	frag, ok, err := NewFragmentsFS(fsys).Read("autori")
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, frag.Title)
	require.Equal(t, "Solo corpo, senza intestazione.\n", string(frag.Body))
}
