package services

import (
	"errors"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-ranker/internal/models"
)

// TextExtractor turns an uploaded file into a ResumeDocument. Failures are
// returned as *models.ExtractError.
type TextExtractor interface {
	Extract(path string) (*models.ResumeDocument, error)
	Supports(ext string) bool
}

type parseFunc func(path string) (string, error)

type textExtractor struct {
	parsers map[string]parseFunc
}

func NewTextExtractor() TextExtractor {
	pdfParser := NewPDFParserService()
	docxParser := NewDOCXParserService()

	e := &textExtractor{parsers: make(map[string]parseFunc)}
	e.register(".pdf", pdfParser.ExtractText)
	e.register(".doc", docxParser.ExtractText)
	e.register(".docx", docxParser.ExtractText)
	e.register(".txt", readPlainText)
	return e
}

func (e *textExtractor) register(ext string, fn parseFunc) {
	e.parsers[strings.ToLower(ext)] = fn
}

func (e *textExtractor) Supports(ext string) bool {
	_, ok := e.parsers[strings.ToLower(ext)]
	return ok
}

// Extract implements TextExtractor.
func (e *textExtractor) Extract(path string) (*models.ResumeDocument, error) {
	ext := strings.ToLower(filepath.Ext(path))
	parse, ok := e.parsers[ext]
	if !ok {
		name := ext
		if name == "" {
			name = "(none)"
		}
		return nil, &models.ExtractError{Kind: models.ErrUnsupportedFormat, Path: path, Err: errors.New(name)}
	}

	text, err := parse(path)
	if err != nil {
		var extractErr *models.ExtractError
		if errors.As(err, &extractErr) {
			return nil, extractErr
		}
		return nil, &models.ExtractError{Kind: models.ErrExtractionFailure, Path: path, Err: err}
	}

	return &models.ResumeDocument{
		Filename:   filepath.Base(path),
		Text:       text,
		SourcePath: path,
	}, nil
}
