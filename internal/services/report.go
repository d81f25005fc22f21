package services

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/mozillazg/go-unidecode"

	"alfredoptarigan/resume-ranker/internal/models"
)

const reportTitle = "Top Matching Resumes - AI Report"

// ReportGenerator writes a ranked result list to outputPath.
type ReportGenerator interface {
	Generate(results []models.ScoreResult, outputPath string) error
}

type pdfReportGenerator struct{}

func NewPDFReportGenerator() ReportGenerator {
	return &pdfReportGenerator{}
}

// Generate writes one page per resume, titled with filename and score. Core
// fonts only cover Latin-1, so all text is transliterated to ASCII first.
func (g *pdfReportGenerator) Generate(results []models.ScoreResult, outputPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
	})

	for _, res := range results {
		pdf.AddPage()

		title := fmt.Sprintf("%s - Score: %.1f/10", res.Filename, res.Score)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, unidecode.Unidecode(title), "", 1, "", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, unidecode.Unidecode(res.FullContent), "", "", false)
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
