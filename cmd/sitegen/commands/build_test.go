package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/testutil/testutils"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	err = kctx.Run(&Global{Context: context.Background(), Out: &out})
	return out.String(), err
}

func TestBuildCommand_WritesSite(t *testing.T) {
	dir := t.TempDir()
	core := testutils.WriteFile(t, dir, "core.json", testutils.CoreJSON)
	textfile := filepath.Join(dir, "sitegen.prom")
	cfgPath := testutils.WriteFile(t, dir, "sitegen.yaml",
		"paths:\n  content: "+core+"\n  source: \"\"\n  output: "+filepath.Join(dir, "public")+"\nmetrics:\n  textfile: "+textfile+"\n")

	out, err := run(t, "--config", cfgPath, "build")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote 27 pages")
	require.Contains(t, out, "Build completed successfully")

	testutils.NewSite(t, filepath.Join(dir, "public")).HasFile("index.html", "styles.css")
	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	require.Contains(t, string(prom), `sitegen_pages_written_total{kind="home"} 1`)
}

func TestBuildCommand_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	core := testutils.WriteFile(t, dir, "content.json", `{"Sezioni principali": {"Politica interna": []}}`)
	output := filepath.Join(dir, "site")

	_, err := run(t, "--config", filepath.Join(dir, "missing.yaml"),
		"build", "--content", core, "-o", output, "--strict-sections")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	testutils.NewSite(t, output).NoFile("index.html")

	out, err := run(t, "--config", filepath.Join(dir, "missing.yaml"),
		"build", "--content", core, "-o", output, "--no-verify-links")
	require.NoError(t, err)
	require.Contains(t, out, "warnings")
}

func TestBuildCommand_IsDefault(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"-c", filepath.Join(t.TempDir(), "none.yaml")})
	require.NoError(t, err)
	require.Equal(t, "build", kctx.Command())
}

func TestBuildCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := testutils.WriteFile(t, dir, "sitegen.yaml", "build:\n  concurrency: 0\n")

	_, err := run(t, "--config", cfgPath, "build")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestAfterApply_RejectsUnknownLogLevel(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "chatty")
	_, err := run(t, "build")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
