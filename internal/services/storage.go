package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alfredoptarigan/resume-ranker/internal/models"
)

var ErrInvalidFilename = errors.New("invalid filename")

// StorageService owns the upload and report directories.
type StorageService interface {
	EnsureDirs() error
	SaveFile(batchID string, file *multipart.FileHeader) (models.UploadedFile, error)
	RemoveBatch(batchID string) error
	ReportPath(filename string) (string, error)
	SweepOlderThan(cutoff time.Time) (int, error)
}

type storageService struct {
	uploadPath string
	reportPath string
}

func NewStorageService(uploadPath, reportPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		reportPath: reportPath,
	}
}

func (s *storageService) EnsureDirs() error {
	for _, dir := range []string{s.uploadPath, s.reportPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaveFile stores an upload under <upload>/<batchID>/<name>, keeping the
// client's base name so extraction reports the original filename.
func (s *storageService) SaveFile(batchID string, file *multipart.FileHeader) (models.UploadedFile, error) {
	name := sanitizeFilename(file.Filename)
	if name == "" {
		return models.UploadedFile{}, fmt.Errorf("%w: %q", ErrInvalidFilename, file.Filename)
	}

	batchDir := filepath.Join(s.uploadPath, batchID)
	if err := os.MkdirAll(batchDir, 0755); err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to create batch directory: %w", err)
	}

	filePath := uniquePath(filepath.Join(batchDir, name))

	src, err := file.Open()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to save file: %w", err)
	}

	return models.UploadedFile{Name: filepath.Base(filePath), Path: filePath}, nil
}

func (s *storageService) RemoveBatch(batchID string) error {
	if sanitizeFilename(batchID) != batchID {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, batchID)
	}
	if err := os.RemoveAll(filepath.Join(s.uploadPath, batchID)); err != nil {
		return fmt.Errorf("failed to remove batch uploads: %w", err)
	}
	return nil
}

// ReportPath resolves a report filename inside the report directory,
// rejecting anything that is not a plain base name.
func (s *storageService) ReportPath(filename string) (string, error) {
	if filename == "" || sanitizeFilename(filename) != filename {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return filepath.Join(s.reportPath, filename), nil
}

// SweepOlderThan removes reports and upload batches last modified before cutoff.
func (s *storageService) SweepOlderThan(cutoff time.Time) (int, error) {
	var errs []error
	removed := 0

	for _, dir := range []string{s.reportPath, s.uploadPath} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			errs = append(errs, fmt.Errorf("failed to list %s: %w", dir, err))
			continue
		}

		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}
			if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
				errs = append(errs, err)
				continue
			}
			removed++
		}
	}

	return removed, errors.Join(errs...)
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

func uniquePath(path string) string {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
	}
}
