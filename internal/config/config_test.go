package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 4, cfg.Build.Concurrency)
	require.True(t, cfg.Build.VerifyLinks)
	require.Equal(t, "core.json", cfg.Paths.Content)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_OverridesKeepDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
paths:
  output: public
build:
  strict_sections: true
  verify_links: false
metrics:
  textfile: /tmp/sitegen.prom
`))
	require.NoError(t, err)
	require.Equal(t, "public", cfg.Paths.Output)
	require.Equal(t, "core.json", cfg.Paths.Content)
	require.True(t, cfg.Build.StrictSections)
	require.False(t, cfg.Build.VerifyLinks)
	require.Equal(t, 4, cfg.Build.Concurrency)
	require.Equal(t, "/tmp/sitegen.prom", cfg.Metrics.Textfile)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SITEGEN_TEST_OUT", "dist")
	cfg, err := Load(writeConfig(t, "paths:\n  output: ${SITEGEN_TEST_OUT}\n"))
	require.NoError(t, err)
	require.Equal(t, "dist", cfg.Paths.Output)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, "build:\n  workers: 3\n"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_ValidatesFields(t *testing.T) {
	tests := map[string]string{
		"zero concurrency": "build:\n  concurrency: 0\n",
		"empty content":    "paths:\n  content: \"\"\n",
		"bad lang":         "site:\n  lang: \"not a tag!\"\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, doc))
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITEGEN_TEST_FROM_ENV=si\n"), 0o600))
	t.Setenv("SITEGEN_TEST_FROM_ENV", "")
	require.NoError(t, os.Unsetenv("SITEGEN_TEST_FROM_ENV"))

	LoadEnvFiles(dir)
	require.Equal(t, "si", os.Getenv("SITEGEN_TEST_FROM_ENV"))
}

func TestSourcePath(t *testing.T) {
	cfg := Default()
	require.Equal(t, filepath.Join("src", "images"), cfg.SourcePath("images"))
	cfg.Paths.Source = ""
	require.Empty(t, cfg.SourcePath("images"))
}

func TestResolveLogLevel(t *testing.T) {
	lvl, err := ResolveLogLevel(true, "error")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ResolveLogLevel(false, "WARN")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ResolveLogLevel(false, "")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, lvl)

	_, err = ResolveLogLevel(false, "loud")
	require.Error(t, err)
}
