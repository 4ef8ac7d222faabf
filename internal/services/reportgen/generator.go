// Package reportgen renders multi-section PDF reports from analysis data
package reportgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/interfaces"
	"github.com/ateger/teaserai/internal/models"
)

// ErrEmptyAnalysis is returned when the analysis has no sections: an empty
// analysis produces no document.
var ErrEmptyAnalysis = errors.New("analysis has no sections")

// emptySectionPlaceholder is rendered for sections present without a body.
const emptySectionPlaceholder = "No data available for this section."

// Page geometry (mm).
const (
	pageMargin    = 19 // ~0.75 inch
	headingHeight = 8
	lineHeight    = 5
)

// Generator renders analysis sections into a PDF report on disk.
type Generator struct {
	reportsDir    string
	coverageChart bool
	logger        *common.Logger
	now           func() time.Time
}

// Option configures the generator
type Option func(*Generator)

// WithCoverageChart enables the section coverage chart on the first page.
func WithCoverageChart(enabled bool) Option {
	return func(g *Generator) {
		g.coverageChart = enabled
	}
}

// WithClock overrides the clock used for the generation date line.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a report generator writing into reportsDir.
func NewGenerator(reportsDir string, logger *common.Logger, opts ...Option) *Generator {
	g := &Generator{
		reportsDir: reportsDir,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders one heading+paragraph block per analysis section, in
// section order, and returns the full path of the written file.
//
// The document is assembled in memory and written to a temp file that is
// renamed into place, so a failure mid-build never leaves a truncated file
// at the target path. An existing report at the same path is overwritten.
func (g *Generator) Generate(ctx context.Context, analysis models.Analysis, filename string) (string, error) {
	if analysis.IsEmpty() {
		g.logger.Info().Str("filename", filename).Msg("No analysis sections, skipping report")
		return "", ErrEmptyAnalysis
	}

	g.logger.Info().Str("filename", filename).Int("sections", len(analysis)).Msg("Starting report generation")

	g.logger.Info().Str("dir", g.reportsDir).Msg("Ensuring reports directory")
	if err := os.MkdirAll(g.reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	reportPath := filepath.Join(g.reportsDir, filename)

	g.logger.Info().Str("path", reportPath).Msg("Creating PDF document")
	doc, err := g.buildDocument(analysis, filename)
	if err != nil {
		return "", err
	}

	g.logger.Info().Str("path", reportPath).Msg("Building PDF document")
	if err := g.writeAtomic(reportPath, doc); err != nil {
		return "", err
	}

	g.logger.Info().Str("path", reportPath).Msg("Successfully generated report")
	return reportPath, nil
}

// buildDocument assembles the PDF in memory and returns its bytes.
func (g *Generator) buildDocument(analysis models.Analysis, filename string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("Analysis Report: "+filename, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title and date
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Analysis Report: "+filename), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated on "+g.now().Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if g.coverageChart {
		g.addCoverageChart(pdf, analysis)
	}

	// Sections, in analysis order
	for _, section := range analysis {
		g.logger.Info().
			Str("section", section.Title).
			Int("content_length", len(section.Body)).
			Msg("Processing section")

		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, headingHeight, tr(section.Title), "", 1, "L", false, 0, "")
		pdf.Ln(1)

		body := section.Body
		if body == "" {
			body = emptySectionPlaceholder
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, lineHeight, tr(body), "", "J", false)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf build failed: %w", err)
	}
	return buf.Bytes(), nil
}

// addCoverageChart embeds the section coverage bar chart. Chart failures
// are logged and skipped; the report itself still renders.
func (g *Generator) addCoverageChart(pdf *fpdf.Fpdf, analysis models.Analysis) {
	png, err := RenderCoverageChart(analysis)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Coverage chart render failed, skipping")
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("coverage", opts, bytes.NewReader(png))

	pageW, _ := pdf.GetPageSize()
	chartW := pageW - 2*pageMargin
	pdf.ImageOptions("coverage", pageMargin, pdf.GetY(), chartW, 0, true, opts, 0, "")
	pdf.Ln(8)
}

// writeAtomic writes data to a temp file in the reports directory and
// renames it over the target path.
func (g *Generator) writeAtomic(target string, data []byte) error {
	dir := filepath.Dir(target)

	tmp, err := os.CreateTemp(dir, ".tmp-report-*")
	if err != nil {
		return fmt.Errorf("failed to create temp report: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close report: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize report: %w", err)
	}
	return nil
}

// Ensure Generator implements ReportGenerator
var _ interfaces.ReportGenerator = (*Generator)(nil)
