package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
)

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(app *fiber.App, rank *RankHandler, results *ResultHandler, downloads *DownloadHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/rank", rank.HandleRank)
	api.Post("/rank/stream", rank.HandleRankStream)
	api.Get("/results/:id", results.HandleGetResult)
	api.Get("/results/:id/export", results.HandleExportResult)
	api.Get("/download/:filename", downloads.HandleDownload)
}

// ErrorHandler renders every error as models.ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, models.ErrNoFilesSupplied):
		code = fiber.StatusBadRequest
		message = "No files uploaded"
	case errors.Is(err, models.ErrSessionNotFound):
		code = fiber.StatusNotFound
		message = msgResultsNotFound
	default:
		message = "An error occurred: " + message
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
