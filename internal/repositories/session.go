package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-ranker/internal/models"
)

// SessionRepository is the keyed store for batch results. Get returns
// models.ErrSessionNotFound for unknown or expired sessions.
type SessionRepository interface {
	Put(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type sessionRepository struct {
	db        *gorm.DB
	retention time.Duration
}

func NewSessionRepository(db *gorm.DB, retention time.Duration) SessionRepository {
	return &sessionRepository{db: db, retention: retention}
}

// Put implements SessionRepository.
func (r *sessionRepository) Put(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get implements SessionRepository.
func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrSessionLoadFailure, err)
	}

	if session.Expired(time.Now(), r.retention) {
		return nil, models.ErrSessionNotFound
	}

	return &session, nil
}

// SweepExpired implements SessionRepository.
func (r *sessionRepository) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-r.retention)
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.Session{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", result.Error)
	}

	return int(result.RowsAffected), nil
}
