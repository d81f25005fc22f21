package services

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(prompt)
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// scoreByMarker answers with the first "n/10" token found in the resume
// section of the prompt.
func scoreByMarker(prompt string) (string, error) {
	resume := prompt[strings.Index(prompt, "Evaluate the following resume"):]
	for _, field := range strings.Fields(resume) {
		if strings.HasSuffix(strings.Trim(field, `".,`), "/10") {
			return "Score: " + strings.Trim(field, `".,`) + ". Solid match.", nil
		}
	}
	return "Not a match at all.", nil
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func buildPDF(t *testing.T, path string, pages ...string) {
	t.Helper()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		pdf.AddPage()
		pdf.CellFormat(0, 10, text, "", 1, "", false, 0, "")
	}
	require.NoError(t, pdf.OutputFileAndClose(path))
}

func pdfPageCount(t *testing.T, path string) int {
	t.Helper()
	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()
	return r.NumPage()
}
