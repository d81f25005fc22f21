package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-ranker/internal/models"
)

func TestExportRanking(t *testing.T) {
	results := []models.ScoreResult{
		{Filename: "alice.pdf", Score: 8.5, Feedback: "Strong match, 8.5/10"},
		{Filename: "bob.rtf", Error: "unsupported file format: .rtf"},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportRanking(&buf, results))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Ranking"}, f.GetSheetList())

	rows, err := f.GetRows("Ranking")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rank", "Filename", "Score", "Feedback", "Error"}, rows[0])
	assert.Equal(t, []string{"1", "alice.pdf", "8.5", "Strong match, 8.5/10"}, rows[1])
	assert.Equal(t, []string{"2", "bob.rtf", "0", "", "unsupported file format: .rtf"}, rows[2])
}

func TestExportRankingEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportRanking(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Ranking")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
