package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	require.NotPanics(t, func() {
		r.ObserveStageDuration("plan", time.Millisecond)
		r.ObserveBuildDuration(time.Second)
		r.IncStageResult("plan", ResultSuccess)
		r.IncBuildOutcome(BuildOutcomeFailed)
		r.IncPageWritten("home")
		r.AddAssetsCopied("image", 1)
		r.IncWarning("unknown_section")
		r.SetBrokenLinks(0)
	})
}
