// Package interfaces defines service contracts for Teaser AI
package interfaces

import (
	"context"

	"github.com/ateger/teaserai/internal/models"
)

// GeminiClient generates AI analysis content
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// AnalyzeTeaser produces a structured MECE analysis of teaser text.
	// buildingBlocks optionally limits the requested sections; empty means
	// the full framework.
	AnalyzeTeaser(ctx context.Context, text string, buildingBlocks []string) (models.Analysis, error)

	// Close closes the client
	Close() error
}
