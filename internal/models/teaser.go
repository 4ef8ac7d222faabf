// Package models defines domain types for Teaser AI
package models

import (
	"fmt"
	"time"
)

// TeaserStatus tracks a teaser through the processing lifecycle.
type TeaserStatus string

const (
	TeaserStatusPending    TeaserStatus = "pending"
	TeaserStatusProcessing TeaserStatus = "processing"
	TeaserStatusCompleted  TeaserStatus = "completed"
	TeaserStatusError      TeaserStatus = "error"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s TeaserStatus) Valid() bool {
	switch s {
	case TeaserStatusPending, TeaserStatusProcessing, TeaserStatusCompleted, TeaserStatusError:
		return true
	}
	return false
}

// Entity is a named entity extracted from teaser text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start_char"`
	End   int    `json:"end_char"`
}

// Teaser is an uploaded private-equity teaser document and everything
// derived from it: extracted text, entities, the structured analysis, and
// the generated screening report path.
type Teaser struct {
	ID            string              `json:"id" badgerhold:"key"`
	Filename      string              `json:"filename"`
	ExtractedText string              `json:"extracted_text,omitempty"`
	Entities      map[string][]Entity `json:"entities,omitempty"`
	Analysis      Analysis            `json:"analysis,omitempty"`
	Status        TeaserStatus        `json:"status"`
	ReportPath    string              `json:"report_path,omitempty"`
	Error         string              `json:"error,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// HasAnalysis reports whether the teaser carries analysis sections.
func (t *Teaser) HasAnalysis() bool {
	return t != nil && !t.Analysis.IsEmpty()
}

// ReportFilename derives the screening report filename for this teaser.
func (t *Teaser) ReportFilename() string {
	return fmt.Sprintf("screening_report_%s.pdf", t.ID)
}
