package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/models"
)

const sessionExt = ".json"

// fileSessionRepository keeps one JSON blob per session in a directory.
// Sessions are written once and never mutated, so no locking is needed.
type fileSessionRepository struct {
	dir       string
	retention time.Duration
}

func NewFileSessionRepository(dir string, retention time.Duration) (SessionRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &fileSessionRepository{dir: dir, retention: retention}, nil
}

func (r *fileSessionRepository) path(id uuid.UUID) string {
	return filepath.Join(r.dir, id.String()+sessionExt)
}

// Put implements SessionRepository.
func (r *fileSessionRepository) Put(_ context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path(session.ID)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Get implements SessionRepository.
func (r *fileSessionRepository) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrSessionLoadFailure, err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSessionLoadFailure, err)
	}

	if session.Expired(time.Now(), r.retention) {
		return nil, models.ErrSessionNotFound
	}

	return &session, nil
}

// SweepExpired implements SessionRepository. Age is taken from the blob's
// modification time.
func (r *fileSessionRepository) SweepExpired(_ context.Context, now time.Time) (int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	cutoff := now.Add(-r.retention)
	removed := 0
	var errs []error

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sessionExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}
