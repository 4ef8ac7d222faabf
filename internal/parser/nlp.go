package parser

import (
	"regexp"

	"github.com/ateger/teaserai/internal/models"
)

// Entity extraction patterns, compiled once.
var (
	moneyPattern = regexp.MustCompile(`(?:[$€£]\s?\d[\d,.]*(?:\s?(?:million|billion|bn|m|k|M|B|K))?|\b\d[\d,.]*\s?(?:million|billion)\s?(?:USD|EUR|GBP|AUD|dollars|euros)\b)`)

	percentPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\s?(?:%|percent|per cent)\b|\b\d+(?:\.\d+)?%`)

	datePattern = regexp.MustCompile(`\b(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}|(?:FY|CY|H1|H2|Q[1-4])\s?\d{2,4}|\b(?:19|20)\d{2}\b)`)

	// Capitalized runs ending in a corporate suffix.
	orgPattern = regexp.MustCompile(`\b(?:[A-Z][A-Za-z&'-]+\s)+(?:Ltd|Limited|Inc|LLC|LLP|GmbH|Pty|PLC|Corp|Corporation|Holdings|Group|Partners|Capital)\b\.?`)
)

// entityPatterns maps entity labels to their extraction patterns. Label
// names follow the NER convention the analysis consumers expect.
var entityPatterns = map[string]*regexp.Regexp{
	"MONEY":   moneyPattern,
	"PERCENT": percentPattern,
	"DATE":    datePattern,
	"ORG":     orgPattern,
}

// ExtractEntities extracts named entities from teaser text using rule-based
// matching, grouped by label.
func ExtractEntities(text string) map[string][]models.Entity {
	entities := make(map[string][]models.Entity)

	for label, pattern := range entityPatterns {
		locs := pattern.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}

		seen := make(map[string]bool)
		for _, loc := range locs {
			match := text[loc[0]:loc[1]]
			if seen[match] {
				continue
			}
			seen[match] = true

			entities[label] = append(entities[label], models.Entity{
				Text:  match,
				Label: label,
				Start: loc[0],
				End:   loc[1],
			})
		}
	}

	return entities
}
