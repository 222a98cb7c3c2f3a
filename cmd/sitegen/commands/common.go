package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Context context.Context
	Out     io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitegen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"1" help:"Build the site once from core.json and the source directory"`
}

// AfterApply runs after flag parsing; loads .env files and sets up logging once.
func (c *CLI) AfterApply() error {
	config.LoadEnvFiles(".")
	level, err := config.ResolveLogLevel(c.Verbose, os.Getenv(config.LogLevelEnv))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid log level").
			WithContext("env", config.LogLevelEnv).
			Build()
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
