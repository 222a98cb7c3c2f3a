package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitegen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	pagesWritten  *prom.CounterVec
	assetsCopied  *prom.CounterVec
	warnings      *prom.CounterVec
	brokenLinks   prom.Gauge
}

// NewPrometheusRecorder constructs the build metrics and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		pagesWritten: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "Pages written by page kind",
		}, []string{"kind"}),
		assetsCopied: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "assets_copied_total",
			Help:      "Asset files materialized by kind",
		}, []string{"kind"}),
		warnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Non-fatal build findings by kind",
		}, []string{"kind"}),
		brokenLinks: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "broken_links",
			Help:      "Relative links without a target in the last build",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.pagesWritten, pr.assetsCopied, pr.warnings, pr.brokenLinks)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes the registry in text exposition format for the
// node exporter textfile collector. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}
func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}
func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncPageWritten(kind string) {
	if p == nil || p.pagesWritten == nil {
		return
	}
	p.pagesWritten.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) AddAssetsCopied(kind string, n int) {
	if p == nil || p.assetsCopied == nil || n <= 0 {
		return
	}
	p.assetsCopied.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) IncWarning(kind string) {
	if p == nil || p.warnings == nil {
		return
	}
	p.warnings.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetBrokenLinks(n int) {
	if p == nil || p.brokenLinks == nil {
		return
	}
	p.brokenLinks.Set(float64(n))
}
