package services

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ranker/internal/models"
)

const docxFixtureXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Senior </w:t></w:r><w:r><w:t>Go Engineer</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go, Postgres</w:t></w:r></w:p>
</w:body>
</w:document>`

func TestExtractTXT(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Resume.TXT", []byte("\n  Jane Doe\nGo engineer, 9/10 fit  \n"))

	doc, err := NewTextExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Resume.TXT", doc.Filename)
	assert.Equal(t, path, doc.SourcePath)
	assert.Equal(t, "Jane Doe\nGo engineer, 9/10 fit", doc.Text)
	assert.Empty(t, doc.ExtractionError)
}

func TestExtractTXTStripsByteOrderMark(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bom.txt", []byte("\xef\xbb\xbfJane"))

	doc, err := NewTextExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane", doc.Text)
}

func TestExtractTXTFallsBackToLatin1(t *testing.T) {
	// "José Müller" in ISO-8859-1 is not valid UTF-8
	path := writeFile(t, t.TempDir(), "latin1.txt", []byte{'J', 'o', 's', 0xe9, ' ', 'M', 0xfc, 'l', 'l', 'e', 'r'})

	doc, err := NewTextExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "José Müller", doc.Text)
}

func TestExtractDOCX(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cv.docx", buildDOCX(t, docxFixtureXML))

	doc, err := NewTextExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Go Engineer\n\nSkills:\tGo, Postgres", doc.Text)
}

func TestExtractDOCXNestedParagraphs(t *testing.T) {
	xml := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Outer</w:t><w:txbxContent><w:p><w:r><w:t> inner</w:t></w:r></w:p></w:txbxContent></w:r></w:p>` +
		`<w:p><w:r><w:t>Next</w:t></w:r></w:p></w:body></w:document>`
	path := writeFile(t, t.TempDir(), "box.docx", buildDOCX(t, xml))

	doc, err := NewTextExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Outer inner\nNext", doc.Text)
}

func TestExtractPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	buildPDF(t, path, "Jane Doe", "Experience")

	doc, err := NewTextExtractor().Extract(path)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Jane Doe")
	assert.Contains(t, doc.Text, "Experience")
	assert.Less(t, strings.Index(doc.Text, "Jane Doe"), strings.Index(doc.Text, "Experience"))
}

func TestExtractPDFKeepsPageOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	buildPDF(t, path, "one", "two", "three")
	assert.Equal(t, 3, pdfPageCount(t, path))

	text, err := NewPDFParserService().ExtractText(path)
	require.NoError(t, err)
	assert.Less(t, strings.Index(text, "one"), strings.Index(text, "two"))
	assert.Less(t, strings.Index(text, "two"), strings.Index(text, "three"))
}

func TestExtractUnsupportedFormat(t *testing.T) {
	extractor := NewTextExtractor()
	for _, name := range []string{"cv.rtf", "cv.png", "Makefile"} {
		path := writeFile(t, t.TempDir(), name, []byte("data"))

		doc, err := extractor.Extract(path)
		assert.Nil(t, doc)
		require.ErrorIs(t, err, models.ErrUnsupportedFormat, name)

		var extractErr *models.ExtractError
		require.True(t, errors.As(err, &extractErr))
		assert.Equal(t, path, extractErr.Path)
	}

	_, err := extractor.Extract("cv.rtf")
	assert.EqualError(t, err, "unsupported file format: .rtf")
}

func TestExtractFailuresAreWrapped(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"broken.docx": writeFile(t, dir, "broken.docx", []byte("not a zip archive")),
		"legacy.doc":  writeFile(t, dir, "legacy.doc", []byte{0xd0, 0xcf, 0x11, 0xe0}),
		"broken.pdf":  writeFile(t, dir, "broken.pdf", []byte("%PDF-1.4\ngarbage")),
		"missing.txt": filepath.Join(dir, "missing.txt"),
	}

	extractor := NewTextExtractor()
	for name, path := range cases {
		doc, err := extractor.Extract(path)
		assert.Nil(t, doc, name)
		assert.ErrorIs(t, err, models.ErrExtractionFailure, name)
		assert.False(t, errors.Is(err, models.ErrUnsupportedFormat), name)
	}
}

func TestExtractorSupports(t *testing.T) {
	extractor := NewTextExtractor()
	assert.True(t, extractor.Supports(".PDF"))
	assert.True(t, extractor.Supports(".docx"))
	assert.True(t, extractor.Supports(".doc"))
	assert.True(t, extractor.Supports(".txt"))
	assert.False(t, extractor.Supports(".odt"))
}
