package services

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"alfredoptarigan/resume-ranker/internal/models"
)

// readPlainText decodes the file as UTF-8 and falls back to ISO-8859-1 when
// the bytes are not valid UTF-8.
func readPlainText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("error reading TXT file: %w", err)
	}

	if utf8.Valid(data) {
		return strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff")), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", &models.ExtractError{
			Kind: models.ErrDecodeFailure,
			Path: filePath,
			Err:  err,
		}
	}

	return strings.TrimSpace(string(decoded)), nil
}
