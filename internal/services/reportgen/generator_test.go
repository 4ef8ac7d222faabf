package reportgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/models"
)

func newTestGenerator(t *testing.T, opts ...Option) (*Generator, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "reports")
	return NewGenerator(dir, common.NewSilentLogger(), opts...), dir
}

// extractPDFText reads back the plain text of a generated report.
func extractPDFText(t *testing.T, path string) string {
	t.Helper()
	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func TestGenerate_SectionsInOrder(t *testing.T) {
	gen, dir := newTestGenerator(t)

	analysis := models.Analysis{
		{Title: "Risk", Body: "Mock risk analysis."},
		{Title: "Dividends", Body: "Mock dividends."},
	}

	path, err := gen.Generate(context.Background(), analysis, "screening_report_999.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "screening_report_999.pdf"), path)
	require.FileExists(t, path)

	text := extractPDFText(t, path)
	riskIdx := strings.Index(text, "Risk")
	divIdx := strings.Index(text, "Dividends")
	require.GreaterOrEqual(t, riskIdx, 0, "Risk heading missing")
	require.GreaterOrEqual(t, divIdx, 0, "Dividends heading missing")
	assert.Less(t, riskIdx, divIdx, "sections out of order")

	assert.Contains(t, text, "Mock risk analysis.")
	assert.Contains(t, text, "Mock dividends.")
}

func TestGenerate_EmptyAnalysis(t *testing.T) {
	gen, dir := newTestGenerator(t)

	path, err := gen.Generate(context.Background(), models.Analysis{}, "report.pdf")
	require.ErrorIs(t, err, ErrEmptyAnalysis)
	assert.Empty(t, path)

	// No file and no directory side effects.
	assert.NoFileExists(t, filepath.Join(dir, "report.pdf"))
}

func TestGenerate_EmptySectionBody(t *testing.T) {
	gen, _ := newTestGenerator(t)

	analysis := models.Analysis{
		{Title: "Synergies", Body: ""},
	}

	path, err := gen.Generate(context.Background(), analysis, "report.pdf")
	require.NoError(t, err)

	text := extractPDFText(t, path)
	assert.Contains(t, text, "Synergies")
	assert.Contains(t, text, "No data available for this section.")
}

func TestGenerate_CreatesReportsDir(t *testing.T) {
	gen, dir := newTestGenerator(t)

	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err))

	path, err := gen.Generate(context.Background(), models.Analysis{{Title: "Risk", Body: "r"}}, "report.pdf")
	require.NoError(t, err)

	assert.DirExists(t, dir)
	assert.FileExists(t, path)
}

func TestGenerate_Overwrite(t *testing.T) {
	gen, _ := newTestGenerator(t)
	ctx := context.Background()

	_, err := gen.Generate(ctx, models.Analysis{{Title: "First Pass", Body: "old content"}}, "report.pdf")
	require.NoError(t, err)

	path, err := gen.Generate(ctx, models.Analysis{{Title: "Second Pass", Body: "new content"}}, "report.pdf")
	require.NoError(t, err)

	text := extractPDFText(t, path)
	assert.Contains(t, text, "Second Pass")
	assert.Contains(t, text, "new content")
	assert.NotContains(t, text, "First Pass")
	assert.NotContains(t, text, "old content")
}

func TestGenerate_Idempotent(t *testing.T) {
	gen, _ := newTestGenerator(t)
	ctx := context.Background()

	analysis := models.Analysis{
		{Title: "Risk", Body: "r"},
		{Title: "Dividends", Body: "d"},
	}

	path1, err := gen.Generate(ctx, analysis, "report.pdf")
	require.NoError(t, err)
	text1 := extractPDFText(t, path1)

	path2, err := gen.Generate(ctx, analysis, "report.pdf")
	require.NoError(t, err)
	text2 := extractPDFText(t, path2)

	assert.Equal(t, path1, path2)
	assert.Equal(t, text1, text2)
}

func TestGenerate_FailureLeavesNoPartialFile(t *testing.T) {
	base := t.TempDir()

	// Make the reports path unusable: a regular file where the directory
	// should be.
	blocked := filepath.Join(base, "reports")
	require.NoError(t, os.WriteFile(blocked, []byte("not a dir"), 0o644))

	gen := NewGenerator(filepath.Join(blocked, "nested"), common.NewSilentLogger())

	path, err := gen.Generate(context.Background(), models.Analysis{{Title: "Risk", Body: "r"}}, "report.pdf")
	require.Error(t, err)
	assert.Empty(t, path)
}

func TestGenerate_NoTempLeftovers(t *testing.T) {
	gen, dir := newTestGenerator(t)

	_, err := gen.Generate(context.Background(), models.Analysis{{Title: "Risk", Body: "r"}}, "report.pdf")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestGenerate_WithCoverageChart(t *testing.T) {
	gen, _ := newTestGenerator(t, WithCoverageChart(true))

	analysis := models.Analysis{
		{Title: "Risk", Body: strings.Repeat("r", 400)},
		{Title: "Dividends", Body: strings.Repeat("d", 150)},
	}

	path, err := gen.Generate(context.Background(), analysis, "report.pdf")
	require.NoError(t, err)

	text := extractPDFText(t, path)
	assert.Contains(t, text, "Risk")
	assert.Contains(t, text, "Dividends")
}

func TestGenerate_ManySections(t *testing.T) {
	gen, _ := newTestGenerator(t)

	titles := []string{
		"Teaser Summary", "Company Profile", "Market Growth and Trends",
		"Moat Identification", "Risk", "Synergies", "Investment Criteria",
		"Exit Perspective", "Graveyard",
	}
	var analysis models.Analysis
	for _, title := range titles {
		analysis.Set(title, "Analysis for "+title)
	}

	path, err := gen.Generate(context.Background(), analysis, "report.pdf")
	require.NoError(t, err)

	text := extractPDFText(t, path)
	last := -1
	for _, title := range titles {
		idx := strings.Index(text, "Analysis for "+title)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", title)
		assert.Greater(t, idx, last, "section %q out of order", title)
		last = idx
	}
}
