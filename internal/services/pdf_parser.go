package services

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText joins the plain text of every page in page order, one newline
// between pages.
func (p *pdfParserService) ExtractText(filePath string) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("error reading PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		pages = append(pages, pageText)
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}
