package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Titolo\n\nCiao\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nslug: relazioni-ue-italia\n---\n# Titolo\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("slug: relazioni-ue-italia\n"), fm)
	require.Equal(t, []byte("# Titolo\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_FrontmatterOnly(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Empty(t, body)
}

func TestDecode(t *testing.T) {
	var meta struct {
		Title string `yaml:"title"`
		Date  string `yaml:"date"`
	}
	require.NoError(t, Decode([]byte("title: Prova\ndate: 2025-03-01\n"), &meta))
	require.Equal(t, "Prova", meta.Title)
	require.Equal(t, "2025-03-01", meta.Date)

	require.NoError(t, Decode(nil, &meta))
	require.Error(t, Decode([]byte(": not yaml"), &meta))
}
