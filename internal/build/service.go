package build

import (
	"time"

	"git.home.luguber.info/inful/sitegen/internal/assets"
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/linkverify"
)

// Request contains all inputs required to execute a build.
type Request struct {
	// Config is the loaded configuration for this build.
	Config *config.Config
}

// Result contains the outcome of a build execution.
type Result struct {
	Status  Status
	BuildID string

	// OutputPath is the output root pages were written under.
	OutputPath string

	// Pages counts written pages; PagesByKind splits them by page kind.
	Pages       int
	PagesByKind map[string]int
	Articles    int

	Assets assets.Result

	// Warnings lists non-fatal findings from loading and planning.
	Warnings    []string
	BrokenLinks []linkverify.BrokenLink

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Status represents the outcome of a build execution.
type Status string

const (
	// StatusSuccess indicates the build completed without findings.
	StatusSuccess Status = "success"

	// StatusWarning indicates the build completed with non-fatal findings.
	StatusWarning Status = "warning"

	// StatusFailed indicates the build encountered an error.
	StatusFailed Status = "failed"

	// StatusCancelled indicates the build was cancelled.
	StatusCancelled Status = "cancelled"
)

// IsSuccess returns true if the site was written completely.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess || s == StatusWarning
}
