package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/services"
)

type DownloadHandler struct {
	storageService services.StorageService
}

func NewDownloadHandler(storageService services.StorageService) *DownloadHandler {
	return &DownloadHandler{storageService: storageService}
}

// HandleDownload handles GET /download/:filename
func (h *DownloadHandler) HandleDownload(c *fiber.Ctx) error {
	filename := c.Params("filename")
	path, err := h.storageService.ReportPath(filename)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "File not found")
	}

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return fiber.NewError(fiber.StatusNotFound, "File not found")
	}

	return c.Download(path, filename)
}
