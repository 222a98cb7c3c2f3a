package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitegen/internal/assets"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/linkverify"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/observability"
	"git.home.luguber.info/inful/sitegen/internal/output"
	"git.home.luguber.info/inful/sitegen/internal/pagetree"
	"git.home.luguber.info/inful/sitegen/internal/render"
)

// Stage names used for logging and metrics.
const (
	StageLoad   = "load"
	StagePlan   = "plan"
	StageAssets = "assets"
	StageRender = "render"
	StageVerify = "verify"
)

const warningContentShape = "content_shape"

// Service is the standard build implementation.
type Service struct {
	clock    clockwork.Clock
	recorder metrics.Recorder
	newID    func() string
	md       *markdown.Renderer
}

// NewService creates a Service with the real clock and no metrics.
func NewService() *Service {
	return &Service{
		clock:    clockwork.NewRealClock(),
		recorder: metrics.NoopRecorder{},
		newID:    uuid.NewString,
		md:       markdown.New(),
	}
}

// WithClock sets the build clock used for article dates, the footer year
// and timings.
func (s *Service) WithClock(c clockwork.Clock) *Service {
	s.clock = c
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithIDGenerator replaces the build ID generator.
func (s *Service) WithIDGenerator(f func() string) *Service {
	s.newID = f
	return s
}

// Run executes the complete build pipeline.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{
		StartTime:   s.clock.Now(),
		BuildID:     s.newID(),
		PagesByKind: make(map[string]int),
	}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	if req.Config == nil {
		return s.fail(ctx, result, "", errors.ConfigError("config required").Build())
	}
	cfg := req.Config
	result.OutputPath = cfg.Paths.Output
	observability.InfoContext(ctx, "Starting build",
		logfields.Path(cfg.Paths.Output),
		slog.String("content", cfg.Paths.Content))

	// Stage 1: content and articles
	stageStart := s.clock.Now()
	ctx = observability.WithStage(ctx, StageLoad)
	tree, err := content.Load(cfg.Paths.Content)
	if err != nil {
		return s.fail(ctx, result, StageLoad, err)
	}
	for _, w := range tree.Warnings {
		observability.WarnContext(ctx, "Content shape warning", slog.String("detail", w))
		s.recorder.IncWarning(warningContentShape)
		result.Warnings = append(result.Warnings, w)
	}

	sources := content.MultiSource{content.NewCatalog(s.clock)}
	if dir := cfg.SourcePath("articles"); dir != "" {
		sources = append(sources, content.NewDirSource(dir, s.md))
	}
	articles, err := sources.Articles(ctx)
	if err != nil {
		return s.fail(ctx, result, StageLoad, err)
	}
	result.Articles = len(articles)
	s.stageDone(ctx, StageLoad, stageStart,
		slog.Int("sections", len(tree.Sections)),
		slog.Int("articles", len(articles)))

	// Stage 2: plan every page before writing anything
	stageStart = s.clock.Now()
	ctx = observability.WithStage(ctx, StagePlan)
	pages, err := pagetree.Build(tree, articles, pagetree.Options{StrictSections: cfg.Build.StrictSections})
	if err != nil {
		return s.fail(ctx, result, StagePlan, err)
	}
	for _, w := range pages.Warnings {
		observability.WarnContext(ctx, w.Message, logfields.Article(w.Subject))
		s.recorder.IncWarning(w.Kind)
		result.Warnings = append(result.Warnings, w.Message)
	}
	s.stageDone(ctx, StagePlan, stageStart, logfields.Count(len(pages.Records)))

	// Stage 3: stylesheet and images
	stageStart = s.clock.Now()
	ctx = observability.WithStage(ctx, StageAssets)
	out := output.NewWriter(cfg.Paths.Output)
	result.Assets, err = assets.NewMaterializer(cfg.Paths.Source, out).Materialize()
	if err != nil {
		return s.fail(ctx, result, StageAssets, err)
	}
	s.recorder.AddAssetsCopied("stylesheet", 1)
	s.recorder.AddAssetsCopied("image", result.Assets.Images)
	s.stageDone(ctx, StageAssets, stageStart,
		slog.Bool("default_styles", result.Assets.DefaultStyles),
		slog.Int("images", result.Assets.Images))

	// Stage 4: render and write pages
	stageStart = s.clock.Now()
	ctx = observability.WithStage(ctx, StageRender)
	renderer, err := render.New(render.Options{
		Brand:        cfg.Site.Title,
		Lang:         cfg.Site.Lang,
		StyleVersion: result.Assets.StyleVersion,
		HeroImage:    result.Assets.HeroImage,
		Clock:        s.clock,
		Markdown:     s.md,
		Fragments:    content.NewFragments(cfg.SourcePath("pages")),
	})
	if err != nil {
		return s.fail(ctx, result, StageRender, err)
	}
	site := &render.Site{Content: tree, Articles: articles, Pages: pages}
	if err := s.writePages(ctx, renderer, site, out, cfg.Build.Concurrency); err != nil {
		return s.fail(ctx, result, StageRender, err)
	}
	for _, rec := range pages.Records {
		result.PagesByKind[rec.Kind.String()]++
	}
	result.Pages = len(pages.Records)
	s.stageDone(ctx, StageRender, stageStart, logfields.Count(result.Pages))

	// Stage 5: link verification
	if cfg.Build.VerifyLinks {
		stageStart = s.clock.Now()
		ctx = observability.WithStage(ctx, StageVerify)
		report, err := linkverify.NewVerifier(cfg.Paths.Output, pages.Paths(), cfg.Build.Concurrency).
			Verify(ctx, pages.Paths())
		if err != nil {
			return s.fail(ctx, result, StageVerify, err)
		}
		for _, b := range report.Broken {
			observability.WarnContext(ctx, "Broken link",
				logfields.Path(b.Page),
				slog.String("url", b.URL),
				slog.String("target", b.Target))
		}
		result.BrokenLinks = report.Broken
		s.recorder.SetBrokenLinks(len(report.Broken))
		s.stageDone(ctx, StageVerify, stageStart,
			slog.Int("links", report.Links),
			slog.Int("broken", len(report.Broken)))
	}

	result.Status = StatusSuccess
	if len(result.Warnings) > 0 || len(result.BrokenLinks) > 0 {
		result.Status = StatusWarning
	}
	s.finish(result)
	s.recorder.IncBuildOutcome(outcomeFor(result.Status))
	observability.InfoContext(ctx, "Build completed",
		slog.String("status", string(result.Status)),
		logfields.Count(result.Pages),
		logfields.Duration(result.Duration))
	return result, nil
}

// writePages renders and writes every record through a bounded group. The
// first failure cancels the remaining writes.
func (s *Service) writePages(ctx context.Context, r *render.Renderer, site *render.Site, out *output.Writer, concurrency int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for _, rec := range site.Pages.Records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := r.Render(site, rec)
			if err != nil {
				return err
			}
			if _, err := out.Write(rec.OutputPath, doc); err != nil {
				return errors.WrapError(err, errors.CategoryFileSystem, "write page").
					Fatal().
					WithContext("path", rec.OutputPath).
					Build()
			}
			s.recorder.IncPageWritten(rec.Kind.String())
			observability.DebugContext(gctx, "Page written",
				logfields.PageKind(rec.Kind.String()),
				logfields.Path(rec.OutputPath))
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) stageDone(ctx context.Context, stage string, start time.Time, attrs ...slog.Attr) {
	d := s.clock.Since(start)
	s.recorder.ObserveStageDuration(stage, d)
	s.recorder.IncStageResult(stage, metrics.ResultSuccess)
	observability.InfoContext(ctx, "Stage complete", append(attrs, logfields.Duration(d))...)
}

func (s *Service) fail(ctx context.Context, result *Result, stage string, err error) (*Result, error) {
	result.Status = StatusFailed
	label := metrics.ResultFatal
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		result.Status = StatusCancelled
		label = metrics.ResultCanceled
	}
	s.finish(result)
	if stage != "" {
		s.recorder.IncStageResult(stage, label)
	}
	s.recorder.IncBuildOutcome(outcomeFor(result.Status))
	observability.ErrorContext(ctx, "Build failed", logfields.Error(err))
	return result, err
}

func (s *Service) finish(result *Result) {
	result.EndTime = s.clock.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.recorder.ObserveBuildDuration(result.Duration)
}

func outcomeFor(status Status) metrics.BuildOutcomeLabel {
	switch status {
	case StatusSuccess:
		return metrics.BuildOutcomeSuccess
	case StatusWarning:
		return metrics.BuildOutcomeWarning
	case StatusCancelled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}
