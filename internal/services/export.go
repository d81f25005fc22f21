package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-ranker/internal/models"
)

const rankingSheet = "Ranking"

var rankingHeader = []any{"Rank", "Filename", "Score", "Feedback", "Error"}

// ExportRanking writes results as a single-sheet workbook, one row per
// resume in the given order.
func ExportRanking(w io.Writer, results []models.ScoreResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(rankingSheet, "A1", &rankingHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{i + 1, r.Filename, r.Score, r.Feedback, r.Error}
		if err := f.SetSheetRow(rankingSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
