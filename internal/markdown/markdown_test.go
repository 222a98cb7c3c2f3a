package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToHTML_RendersHeadingsAndLists(t *testing.T) {
	r := New()

	out, err := r.ToHTML([]byte("## La nostra missione\n\n- Trasparenza\n- Accuratezza\n"))
	require.NoError(t, err)

	html := string(out)
	require.Contains(t, html, `<h2 id="la-nostra-missione">La nostra missione</h2>`)
	require.Contains(t, html, "<li>Trasparenza</li>")
}

func TestToHTML_PassesThroughRawHTML(t *testing.T) {
	out, err := New().ToHTML([]byte("<div class=\"card\">\n<p>ciao</p>\n</div>\n"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(out), `<div class="card">`))
}

func TestToHTML_GFMTable(t *testing.T) {
	out, err := New().ToHTML([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<table>")
}

func TestToHTML_EmptyInput(t *testing.T) {
	out, err := New().ToHTML([]byte("  \n"))
	require.NoError(t, err)
	require.Empty(t, out)
}
