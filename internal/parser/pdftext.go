// Package parser extracts text and entities from teaser documents
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxExtractChars caps extracted text for LLM context limits.
const maxExtractChars = 50000

// ExtractText extracts plain text from a PDF file on disk.
func ExtractText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	totalPages := r.NumPage()

	for i := 1; i <= totalPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")

		if sb.Len() > maxExtractChars {
			break
		}
	}

	result := strings.TrimSpace(sb.String())
	if len(result) > maxExtractChars {
		result = result[:maxExtractChars]
	}

	return result, nil
}

// ExtractTextFromBytes extracts plain text from in-memory PDF content.
// The reader library works on files, so the content goes through a temp file.
func ExtractTextFromBytes(content []byte) (string, error) {
	tmp, err := os.CreateTemp("", "teaser-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp PDF: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp PDF: %w", err)
	}

	return ExtractText(tmpName)
}
