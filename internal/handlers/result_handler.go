package handlers

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

const (
	msgResultsNotFound = "Results not found or expired. Please process your resumes again."
	msgResultsLoad     = "Error loading results"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ResultHandler struct {
	sessions repositories.SessionRepository
	log      *zap.Logger
}

func NewResultHandler(sessions repositories.SessionRepository, log *zap.Logger) *ResultHandler {
	return &ResultHandler{
		sessions: sessions,
		log:      log,
	}
}

// HandleGetResult handles GET /results/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	session, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// HandleExportResult handles GET /results/:id/export and returns the ranking
// as a spreadsheet.
func (h *ResultHandler) HandleExportResult(c *fiber.Ctx) error {
	session, err := h.load(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := services.ExportRanking(&buf, session.Results); err != nil {
		h.log.Error("failed to export session", zap.String("session_id", session.ID.String()), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, msgResultsLoad)
	}

	c.Attachment(fmt.Sprintf("ranked_resumes_%s.xlsx", session.ID))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

func (h *ResultHandler) load(c *fiber.Ctx) (*models.Session, error) {
	// a malformed id can never name a session
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, msgResultsNotFound)
	}

	session, err := h.sessions.Get(c.UserContext(), id)
	if errors.Is(err, models.ErrSessionNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, msgResultsNotFound)
	}
	if err != nil {
		h.log.Error("failed to load session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, fiber.NewError(fiber.StatusInternalServerError, msgResultsLoad)
	}

	return session, nil
}
