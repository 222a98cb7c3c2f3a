package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("render", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("render", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.IncPageWritten("article")
	pr.IncPageWritten("article")
	pr.IncPageWritten("home")
	pr.AddAssetsCopied("image", 3)
	pr.AddAssetsCopied("image", 0)
	pr.IncWarning("unknown_section")
	pr.SetBrokenLinks(2)

	require.InDelta(t, 2, testutil.ToFloat64(pr.pagesWritten.WithLabelValues("article")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.pagesWritten.WithLabelValues("home")), 0)
	require.InDelta(t, 3, testutil.ToFloat64(pr.assetsCopied.WithLabelValues("image")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.warnings.WithLabelValues("unknown_section")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(pr.brokenLinks), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncPageWritten("section")

	path := filepath.Join(t.TempDir(), "sitegen.prom")
	require.NoError(t, pr.WriteTextfile(path))

	// #nosec G304 -- test path
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), `sitegen_pages_written_total{kind="section"} 1`))
}

func TestNilPrometheusRecorder(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.IncPageWritten("home")
		pr.ObserveBuildDuration(time.Second)
		pr.SetBrokenLinks(1)
	})
}
