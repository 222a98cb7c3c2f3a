package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Politica interna", "politica-interna"},
		{"Società e cultura politica", "societa-e-cultura-politica"},
		{"Mass media", "mass-media"},
		{"Economia globale", "economia-globale"},
		{"Caffè", "caffe"},
		{"Caffe!", "caffe"},
		{"123", "123"},
		{"—", ""},
		{"", ""},
		{"  Relazioni   internazionali  ", "relazioni-internazionali"},
		{"UE/Italia: 2025", "ue-italia-2025"},
		{"Ñandú Ärger", "nandu-arger"},
		{"l'Europa", "l-europa"},
		{"--già--", "gia"},
		{"ÉLITE", "elite"},
		{"straße", "stra-e"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

var slugShape = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)

func TestNormalize_ShapeAndIdempotence(t *testing.T) {
	inputs := []string{
		"Politica interna", "Storia e prospettive", "  ", "!!!", "a--b", "-a-", "Ünïcödé ƒun",
		"日本語", "x́y", "tab\tand\nnewline", "Ελληνικά 42", "emoji 🚀 launch", "ÅÄÖ-åäö",
	}
	for _, in := range inputs {
		got := Normalize(in)
		require.Regexp(t, slugShape, got, "input %q", in)
		require.Equal(t, got, Normalize(got), "normalize must be idempotent for %q", in)
	}
}

func TestJoin(t *testing.T) {
	require.Equal(t, "societa-e-cultura-politica-mass-media",
		Join(Normalize("Società e cultura politica"), Normalize("Mass media")))
}
