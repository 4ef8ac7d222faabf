package gemini

import (
	"fmt"
	"strings"

	"github.com/ateger/teaserai/internal/models"
)

// meceSections is the full analysis framework vocabulary, in report order.
// Each entry is "Title: guidance".
var meceSections = []string{
	"Teaser Summary: A concise, bias-conscious summary of the key points in the teaser document",
	"Company Profile: Products, business model, form, geography, status",
	"Customer & Demand Analysis: Target customers, market demand patterns",
	"Industry & Competitive Landscape: Industry position, competitive analysis",
	"Commercial Strategy: Go-to-market approach, revenue strategy",
	"Talent Development: Team structure, expertise, development plans",
	"Market Growth and Trends: Analysis of market trajectory and trends",
	"Breadth Analysis: Assessment of market breadth, expansion potential",
	"Forces Analysis: External forces affecting the business",
	"Moat Identification: Competitive advantages and barriers to entry",
	"Key Value Creation Drivers & Risks: Factors driving value, associated risks",
	"Compensation & Ownership Structure: Executive compensation, ownership analysis",
	"Related-party Transactions: Assessment of related-party dealings",
	"Share Repurchases: History and strategy of share buybacks",
	"Dividends: Dividend history and policy",
	"Risk: Risk assessment and mitigation strategies",
	"Synergies: Potential revenue and cost synergies",
	"Investment Criteria: Key criteria for investment decisions",
	"Exit Perspective: Potential exit strategies and timelines",
	"Graveyard: Failed competitors or previous attempts in this space",
}

// SectionTitles returns the full framework section vocabulary in order.
func SectionTitles() []string {
	titles := make([]string, len(meceSections))
	for i, s := range meceSections {
		titles[i] = s[:strings.Index(s, ":")]
	}
	return titles
}

// buildTeaserAnalysisPrompt creates the MECE analysis prompt.
// buildingBlocks optionally restricts the requested sections by title.
func buildTeaserAnalysisPrompt(text string, buildingBlocks []string) string {
	sections := meceSections
	if len(buildingBlocks) > 0 {
		wanted := make(map[string]bool, len(buildingBlocks))
		for _, b := range buildingBlocks {
			wanted[strings.ToLower(strings.TrimSpace(b))] = true
		}
		var filtered []string
		for _, s := range meceSections {
			title := s[:strings.Index(s, ":")]
			if wanted[strings.ToLower(title)] {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) > 0 {
			sections = filtered
		}
	}

	var sb strings.Builder
	sb.WriteString(`You are a private equity expert tasked with analyzing a teaser document.
Extract information from the document following the MECE (Mutually Exclusive, Collectively Exhaustive) framework.

Analyze the document below and provide a structured analysis as a single flat JSON object.
Use exactly these keys, in this order, each mapping to a plain-text analysis string:

`)
	for _, s := range sections {
		sb.WriteString(fmt.Sprintf("- %s\n", s))
	}
	sb.WriteString(`
Format your response as valid JSON that can be parsed programmatically.
Always be clear about what is factual information from the document versus your analysis or interpretation.
If information for a section is not available in the document, use the value "Information not available in the teaser."

Teaser Document:
`)
	sb.WriteString(text)

	return sb.String()
}

// parseAnalysisReply parses a model reply into ordered analysis sections.
// Replies are frequently wrapped in markdown code fences or surrounded by
// prose; only the outermost JSON object is parsed.
func parseAnalysisReply(reply string) (models.Analysis, error) {
	jsonText := extractJSONObject(reply)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON object in reply")
	}
	return models.FlattenAnalysis([]byte(jsonText))
}

// extractJSONObject returns the substring spanning the first top-level JSON
// object in s, or "" if none exists.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
