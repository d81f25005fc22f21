package services

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

type DOCXParserService interface {
	ExtractText(filePath string) (string, error)
}

type docxParserService struct{}

func NewDOCXParserService() DOCXParserService {
	return &docxParserService{}
}

// ExtractText returns the paragraphs of word/document.xml in document order,
// one newline between paragraphs.
func (d *docxParserService) ExtractText(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", fmt.Errorf("error reading DOCX: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if strings.EqualFold(f.Name, "word/document.xml") {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("error reading DOCX: word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("error reading DOCX: %w", err)
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return "", fmt.Errorf("error reading DOCX: %w", err)
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	depth := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				// text boxes nest paragraphs; their text joins the outer one
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return nil, err
				}
				current.WriteString(text)
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "p" && depth > 0 {
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
					current.Reset()
				}
			}
		}
	}

	return paragraphs, nil
}
