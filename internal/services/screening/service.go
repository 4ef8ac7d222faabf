// Package screening produces screening reports for teasers
package screening

import (
	"context"
	"fmt"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/interfaces"
	"github.com/ateger/teaserai/internal/models"
)

// Service derives the report filename for a teaser and delegates rendering
// to the report generator. It performs no retries and no validation of
// section content.
type Service struct {
	generator interfaces.ReportGenerator
	logger    *common.Logger
}

// NewService creates a new screening service
func NewService(generator interfaces.ReportGenerator, logger *common.Logger) *Service {
	return &Service{
		generator: generator,
		logger:    logger,
	}
}

// GenerateScreeningReport renders the screening report PDF for a teaser.
//
// A teaser without analysis data is not an error: the call logs and returns
// ("", nil), "nothing to do". A render failure returns ("", err) with the
// failure reason; callers treat an empty path as "no report produced".
func (s *Service) GenerateScreeningReport(ctx context.Context, teaser *models.Teaser) (string, error) {
	if teaser == nil {
		return "", fmt.Errorf("teaser is required")
	}

	if !teaser.HasAnalysis() {
		s.logger.Info().Str("teaser", teaser.ID).Msg("No analysis data available for the teaser")
		return "", nil
	}

	filename := teaser.ReportFilename()

	reportPath, err := s.generator.Generate(ctx, teaser.Analysis, filename)
	if err != nil {
		s.logger.Error().Err(err).Str("teaser", teaser.ID).Msg("Failed to generate screening report")
		return "", fmt.Errorf("generate screening report for teaser '%s': %w", teaser.ID, err)
	}

	s.logger.Info().
		Str("teaser", teaser.ID).
		Str("path", reportPath).
		Msg("Screening report generated successfully")
	return reportPath, nil
}

// Ensure Service implements ScreeningService
var _ interfaces.ScreeningService = (*Service)(nil)
