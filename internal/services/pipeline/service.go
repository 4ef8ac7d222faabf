// Package pipeline runs the teaser processing pipeline
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/interfaces"
	"github.com/ateger/teaserai/internal/models"
	"github.com/ateger/teaserai/internal/parser"
)

// Service runs the processing pipeline for uploaded teasers: text
// extraction, entity extraction, AI analysis, and screening report
// generation, with status transitions at each boundary.
type Service struct {
	storage   interfaces.StorageManager
	gemini    interfaces.GeminiClient
	screening interfaces.ScreeningService
	logger    *common.Logger

	mu      sync.Mutex
	running map[string]context.CancelFunc
}

// NewService creates a new pipeline service. gemini may be nil when no API
// key is configured; analysis is skipped in that case.
func NewService(
	storage interfaces.StorageManager,
	gemini interfaces.GeminiClient,
	screening interfaces.ScreeningService,
	logger *common.Logger,
) *Service {
	return &Service{
		storage:   storage,
		gemini:    gemini,
		screening: screening,
		logger:    logger,
		running:   make(map[string]context.CancelFunc),
	}
}

// Start launches Process in the background.
func (s *Service) Start(teaserID string, buildingBlocks []string) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if prev, ok := s.running[teaserID]; ok {
		prev() // supersede an earlier run for the same teaser
	}
	s.running[teaserID] = cancel
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.running, teaserID)
			s.mu.Unlock()
			cancel()
		}()

		if err := s.Process(ctx, teaserID, buildingBlocks); err != nil {
			s.logger.Error().Err(err).Str("teaser", teaserID).Msg("Pipeline failed")
		}
	}()
}

// Cancel stops processing for a teaser. Returns false if the teaser was not
// being processed.
func (s *Service) Cancel(teaserID string) bool {
	s.mu.Lock()
	cancel, ok := s.running[teaserID]
	if ok {
		delete(s.running, teaserID)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}

	cancel()
	s.logger.Info().Str("teaser", teaserID).Msg("Processing canceled")
	return true
}

// Process runs all pipeline steps for a teaser. Cancellation is honored
// between steps; a canceled or failed run leaves the teaser in error status.
func (s *Service) Process(ctx context.Context, teaserID string, buildingBlocks []string) error {
	teasers := s.storage.TeaserStore()

	teaser, err := teasers.GetTeaser(ctx, teaserID)
	if err != nil {
		return err
	}

	if err := teasers.UpdateStatus(ctx, teaserID, models.TeaserStatusProcessing, ""); err != nil {
		return err
	}

	if err := s.runSteps(ctx, teaser, buildingBlocks); err != nil {
		// Status writes after cancellation use a fresh context.
		if stErr := teasers.UpdateStatus(context.Background(), teaserID, models.TeaserStatusError, err.Error()); stErr != nil {
			s.logger.Error().Err(stErr).Str("teaser", teaserID).Msg("Failed to record error status")
		}
		return err
	}

	if err := teasers.UpdateStatus(ctx, teaserID, models.TeaserStatusCompleted, ""); err != nil {
		return err
	}

	s.logger.Info().Str("teaser", teaserID).Msg("Pipeline complete")
	return nil
}

func (s *Service) runSteps(ctx context.Context, teaser *models.Teaser, buildingBlocks []string) error {
	teasers := s.storage.TeaserStore()

	// Step 1: extract text from the uploaded PDF if not done yet
	if teaser.ExtractedText == "" {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := s.storage.DocumentStore().ReadUpload(teaser.ID)
		if err != nil {
			return fmt.Errorf("read upload: %w", err)
		}

		text, err := parser.ExtractTextFromBytes(content)
		if err != nil {
			return fmt.Errorf("extract text: %w", err)
		}

		teaser.ExtractedText = text
		if err := teasers.SaveTeaser(ctx, teaser); err != nil {
			return err
		}

		s.logger.Info().
			Str("teaser", teaser.ID).
			Int("chars", len(text)).
			Msg("Text extracted")
	}

	// Step 2: extract entities if not done yet
	if len(teaser.Entities) == 0 && teaser.ExtractedText != "" {
		if err := ctx.Err(); err != nil {
			return err
		}

		teaser.Entities = parser.ExtractEntities(teaser.ExtractedText)
		if err := teasers.SaveTeaser(ctx, teaser); err != nil {
			return err
		}

		s.logger.Info().
			Str("teaser", teaser.ID).
			Int("labels", len(teaser.Entities)).
			Msg("Entities extracted")
	}

	// Step 3: AI analysis
	if teaser.ExtractedText == "" {
		s.logger.Info().Str("teaser", teaser.ID).Msg("Skipping analysis - no extracted text available")
	} else if s.gemini == nil {
		s.logger.Warn().Str("teaser", teaser.ID).Msg("Skipping analysis - no Gemini API key configured")
	} else {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.logger.Info().Str("teaser", teaser.ID).Msg("Starting analysis")
		analysis, err := s.gemini.AnalyzeTeaser(ctx, teaser.ExtractedText, buildingBlocks)
		if err != nil {
			return fmt.Errorf("analyze teaser: %w", err)
		}

		teaser.Analysis = analysis
		if err := teasers.SaveTeaser(ctx, teaser); err != nil {
			return err
		}
	}

	// Step 4: screening report
	if teaser.HasAnalysis() {
		if err := ctx.Err(); err != nil {
			return err
		}

		reportPath, err := s.screening.GenerateScreeningReport(ctx, teaser)
		if err != nil {
			return err
		}

		teaser.ReportPath = reportPath
		if err := teasers.SaveTeaser(ctx, teaser); err != nil {
			return err
		}
	}

	return nil
}

// Ensure Service implements PipelineService
var _ interfaces.PipelineService = (*Service)(nil)
