package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnalysisSection is one titled block of analysis text.
type AnalysisSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Analysis is an ordered list of analysis sections. Section order is the
// order sections appear in the rendered report, so Analysis is a slice
// rather than a map: Go maps do not preserve insertion order.
type Analysis []AnalysisSection

// IsEmpty reports whether the analysis has no sections.
func (a Analysis) IsEmpty() bool {
	return len(a) == 0
}

// Get returns the body for a title and whether it exists.
func (a Analysis) Get(title string) (string, bool) {
	for _, s := range a {
		if s.Title == title {
			return s.Body, true
		}
	}
	return "", false
}

// Set appends a section, or replaces the body if the title already exists.
func (a *Analysis) Set(title, body string) {
	for i, s := range *a {
		if s.Title == title {
			(*a)[i].Body = body
			return
		}
	}
	*a = append(*a, AnalysisSection{Title: title, Body: body})
}

// Titles returns the section titles in order.
func (a Analysis) Titles() []string {
	titles := make([]string, len(a))
	for i, s := range a {
		titles[i] = s.Title
	}
	return titles
}

// MarshalJSON renders the analysis as a JSON object with keys in section
// order, matching the shape produced by the language-model analysis step.
func (a Analysis) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Title)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Body)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object into sections, preserving the key order
// of the document. Non-string values are flattened: nested objects become
// "Parent - Child" titled sections, other scalars are rendered as text.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	parsed, err := FlattenAnalysis(data)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// FlattenAnalysis converts an arbitrary JSON object into ordered sections.
// The analysis producer may return nested objects (e.g. grouped MECE
// categories); nesting collapses into "Parent - Child" titles so the
// renderer only ever sees title/body pairs.
func FlattenAnalysis(data []byte) (Analysis, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("analysis must be a JSON object, got %v", tok)
	}

	var out Analysis
	if err := flattenObject(dec, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenObject(dec *json.Decoder, prefix string, out *Analysis) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parse analysis: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in analysis object", tok)
		}

		title := key
		if prefix != "" {
			title = prefix + " - " + key
		}

		if err := flattenValue(dec, title, out); err != nil {
			return err
		}
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parse analysis: %w", err)
	}
	return nil
}

func flattenValue(dec *json.Decoder, title string, out *Analysis) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parse analysis: %w", err)
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return flattenObject(dec, title, out)
		case '[':
			var items []string
			for dec.More() {
				var sub Analysis
				if err := flattenValue(dec, title, &sub); err != nil {
					return err
				}
				for _, s := range sub {
					items = append(items, s.Body)
				}
			}
			if _, err := dec.Token(); err != nil {
				return fmt.Errorf("parse analysis: %w", err)
			}
			body := ""
			for i, it := range items {
				if i > 0 {
					body += "\n"
				}
				body += "- " + it
			}
			out.Set(title, body)
			return nil
		}
		return fmt.Errorf("unexpected delimiter %v in analysis", v)
	case string:
		out.Set(title, v)
	case json.Number:
		out.Set(title, v.String())
	case bool:
		out.Set(title, fmt.Sprintf("%t", v))
	case nil:
		out.Set(title, "")
	}
	return nil
}
