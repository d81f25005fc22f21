package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the persisted outcome of one batch. Results are ordered by
// descending score.
type Session struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key" json:"session_id"`
	JobDescription string        `gorm:"type:text" json:"job_description"`
	Results        []ScoreResult `gorm:"type:jsonb;serializer:json" json:"results"`
	ReportLink     string        `gorm:"type:text" json:"pdf_link"`
	CreatedAt      time.Time     `gorm:"type:timestamp;index" json:"created_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past the retention window at now.
func (s *Session) Expired(now time.Time, retention time.Duration) bool {
	if retention <= 0 {
		return false
	}
	return s.CreatedAt.Before(now.Add(-retention))
}
