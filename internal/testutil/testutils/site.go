// Package testutils holds fixtures and assertions shared by build tests.
package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CoreJSON is a small content document whose sections cover every section
// named by the built-in article catalog.
const CoreJSON = `{
  "Homepage": ["Ultime notizie", "Focus del mese: crisi energetica"],
  "Sezioni principali": {
    "Politica interna": ["Parlamento", "Governo"],
    "Relazioni internazionali": ["Unione Europea", "NATO"],
    "Economia globale": ["Commercio", "Energia"],
    "Società e cultura politica": ["Mass media", "Movimenti"],
    "Storia e prospettive": ["Dopoguerra"]
  },
  "Rubriche fisse": ["Il punto settimanale", "Mappe"],
  "Approfondimenti": ["Dossier"],
  "Autori": ["Redazione"],
  "Chi siamo": ["La nostra missione"],
  "Contatti": ["Email", "Newsletter"]
}`

// WriteFile writes content to rel under dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// Site asserts on the state of a build output directory.
type Site struct {
	t    *testing.T
	root string
}

// NewSite returns assertions rooted at an output directory.
func NewSite(t *testing.T, root string) *Site {
	return &Site{t: t, root: root}
}

// Read returns the content of rel, failing the test when it is missing.
func (s *Site) Read(rel string) string {
	s.t.Helper()
	// #nosec G304 -- test helper, paths are controlled by test code
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	require.NoError(s.t, err, "expected %s to exist", rel)
	return string(data)
}

// HasFile asserts that every rel exists as a regular file.
func (s *Site) HasFile(rels ...string) *Site {
	s.t.Helper()
	for _, rel := range rels {
		info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
		require.NoError(s.t, err, "expected %s to exist", rel)
		require.False(s.t, info.IsDir(), "expected %s to be a file", rel)
	}
	return s
}

// NoFile asserts that rel was not written.
func (s *Site) NoFile(rel string) *Site {
	s.t.Helper()
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	require.True(s.t, os.IsNotExist(err), "expected %s to be absent", rel)
	return s
}

// Contains asserts that rel contains every fragment.
func (s *Site) Contains(rel string, fragments ...string) *Site {
	s.t.Helper()
	body := s.Read(rel)
	for _, f := range fragments {
		require.Contains(s.t, body, f, "in %s", rel)
	}
	return s
}

// HTMLFiles returns the slash-separated paths of every .html file written.
func (s *Site) HTMLFiles() []string {
	s.t.Helper()
	var out []string
	err := filepath.WalkDir(s.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(s.t, err)
	return out
}
