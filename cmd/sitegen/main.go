package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/cmd/sitegen/commands"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Must(&cli,
		kong.Name("sitegen"),
		kong.Description("Static site builder for Politica & Geopolitica"),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	kctx, err := parser.Parse(os.Args[1:])
	adapter := errors.NewCLIErrorAdapter(cli.Verbose, nil)
	if err != nil {
		// Flag errors are usage problems; AfterApply failures are already classified.
		if !errors.IsClassified(err) {
			parser.FatalIfErrorf(err)
		}
		adapter.HandleError(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := kctx.Run(&commands.Global{Context: ctx, Out: os.Stdout}); err != nil {
		cancel()
		adapter.HandleError(err)
	}
}
