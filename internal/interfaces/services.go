// Package interfaces defines service contracts for Teaser AI
package interfaces

import (
	"context"

	"github.com/ateger/teaserai/internal/models"
)

// ReportGenerator renders a multi-section PDF report from analysis data.
type ReportGenerator interface {
	// Generate writes a PDF with one heading+paragraph block per analysis
	// section, in section order, and returns the full path of the written
	// file. An empty analysis produces no file and returns ErrEmptyAnalysis.
	Generate(ctx context.Context, analysis models.Analysis, filename string) (string, error)
}

// ScreeningService produces screening reports for teasers.
type ScreeningService interface {
	// GenerateScreeningReport renders the screening report PDF for a teaser.
	// A teaser without analysis data returns ("", nil): nothing to do.
	GenerateScreeningReport(ctx context.Context, teaser *models.Teaser) (string, error)
}

// PipelineService runs the full teaser processing pipeline.
type PipelineService interface {
	// Process runs extraction, analysis, and report generation for a teaser,
	// transitioning its status as it goes. buildingBlocks optionally limits
	// which analysis sections are requested; empty means all.
	Process(ctx context.Context, teaserID string, buildingBlocks []string) error

	// Start launches Process in the background.
	Start(teaserID string, buildingBlocks []string)

	// Cancel stops processing for a teaser. Returns false if the teaser was
	// not being processed.
	Cancel(teaserID string) bool
}
