package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ranker/internal/models"
)

func newTestSession(createdAt time.Time) *models.Session {
	return &models.Session{
		ID:             uuid.New(),
		JobDescription: "Backend engineer, Go",
		Results: []models.ScoreResult{
			{Filename: "a.txt", Score: 9, Snippet: "a", FullContent: "a", Feedback: "9/10"},
			{Filename: "b.txt", Score: 0, Snippet: "No content extracted", Error: "No text content found"},
		},
		ReportLink: "/api/v1/download/ranked_resumes.pdf",
		CreatedAt:  createdAt,
	}
}

func TestFileSessionRepositoryPutGet(t *testing.T) {
	repo, err := NewFileSessionRepository(t.TempDir(), time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	session := newTestSession(time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.Put(ctx, session))

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.JobDescription, got.JobDescription)
	assert.Equal(t, session.Results, got.Results)
	assert.Equal(t, session.ReportLink, got.ReportLink)
	assert.True(t, session.CreatedAt.Equal(got.CreatedAt))
}

func TestFileSessionRepositoryGetUnknown(t *testing.T) {
	repo, err := NewFileSessionRepository(t.TempDir(), time.Hour)
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestFileSessionRepositoryGetExpired(t *testing.T) {
	repo, err := NewFileSessionRepository(t.TempDir(), time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	session := newTestSession(time.Now().Add(-2 * time.Hour))
	require.NoError(t, repo.Put(ctx, session))

	_, err = repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestFileSessionRepositoryGetCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileSessionRepository(dir, time.Hour)
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id.String()+".json"), []byte("{not json"), 0644))

	_, err = repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, models.ErrSessionLoadFailure)
}

func TestFileSessionRepositoryRemovedBlob(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileSessionRepository(dir, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	session := newTestSession(time.Now())
	require.NoError(t, repo.Put(ctx, session))
	require.NoError(t, os.Remove(filepath.Join(dir, session.ID.String()+".json")))

	_, err = repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestFileSessionRepositorySweepExpired(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileSessionRepository(dir, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	stale := newTestSession(time.Now())
	fresh := newTestSession(time.Now())
	require.NoError(t, repo.Put(ctx, stale))
	require.NoError(t, repo.Put(ctx, fresh))

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, stale.ID.String()+".json"), old, old))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0644))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "notes.txt"), old, old))

	removed, err := repo.SweepExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	_, err = repo.Get(ctx, fresh.ID)
	assert.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}
