package commands

import (
	"fmt"
	"sort"

	"git.home.luguber.info/inful/sitegen/internal/build"
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output         string `short:"o" help:"Output directory (overrides paths.output)"`
	Content        string `help:"Content document (overrides paths.content)"`
	StrictSections bool   `name:"strict-sections" help:"Fail when an article names an unknown section"`
	NoVerifyLinks  bool   `name:"no-verify-links" help:"Skip checking relative links in the written pages"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	b.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	return RunBuild(g, cfg)
}

// apply layers command-line overrides over the loaded configuration.
func (b *BuildCmd) apply(cfg *config.Config) {
	if b.Output != "" {
		cfg.Paths.Output = b.Output
	}
	if b.Content != "" {
		cfg.Paths.Content = b.Content
	}
	if b.StrictSections {
		cfg.Build.StrictSections = true
	}
	if b.NoVerifyLinks {
		cfg.Build.VerifyLinks = false
	}
}

// RunBuild executes one build and prints a short summary. When
// metrics.textfile is configured the build metrics are written there, even
// for a failed build.
func RunBuild(g *Global, cfg *config.Config) error {
	out := g.out()
	_, _ = fmt.Fprintln(out, "Starting site build")

	svc := build.NewService()
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		svc.WithRecorder(prom)
	}

	result, runErr := svc.Run(g.context(), build.Request{Config: cfg})
	if prom != nil {
		if err := prom.WriteTextfile(cfg.Metrics.Textfile); err != nil && runErr == nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "write metrics textfile").
				WithContext("path", cfg.Metrics.Textfile).
				Build()
		}
	}
	if runErr != nil {
		return runErr
	}

	kinds := make([]string, 0, len(result.PagesByKind))
	for k := range result.PagesByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	_, _ = fmt.Fprintf(out, "Wrote %d pages to %s\n", result.Pages, result.OutputPath)
	for _, k := range kinds {
		_, _ = fmt.Fprintf(out, "  %-14s %d\n", k, result.PagesByKind[k])
	}
	if n := len(result.Warnings); n > 0 {
		_, _ = fmt.Fprintf(out, "%d warnings\n", n)
	}
	if n := len(result.BrokenLinks); n > 0 {
		_, _ = fmt.Fprintf(out, "%d broken links\n", n)
	}
	_, _ = fmt.Fprintln(out, "Build completed successfully")
	return nil
}
