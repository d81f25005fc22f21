package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/services"
)

const (
	formJobDescription = "job_description"
	formResumes        = "resumes"
)

// UploadReceiver turns a multipart submission into a pipeline batch, saving
// every resume under the batch's own upload directory.
type UploadReceiver struct {
	storageService services.StorageService
	extractor      services.TextExtractor
	maxFileSize    int64
	log            *zap.Logger
}

func NewUploadReceiver(
	storageService services.StorageService,
	extractor services.TextExtractor,
	maxFileSize int64,
	log *zap.Logger,
) *UploadReceiver {
	return &UploadReceiver{
		storageService: storageService,
		extractor:      extractor,
		maxFileSize:    maxFileSize,
		log:            log,
	}
}

// Receive parses the form and saves the uploads. A submission without files is
// not an error here; the pipeline rejects it so both routes report it the same
// way.
func (u *UploadReceiver) Receive(c *fiber.Ctx) (services.Batch, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return services.Batch{}, fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	batch := services.Batch{ID: uuid.New()}
	if values := form.Value[formJobDescription]; len(values) > 0 {
		batch.JobDescription = strings.TrimSpace(values[0])
	}

	var uploads []*multipart.FileHeader
	for _, fh := range form.File[formResumes] {
		// browsers send an empty part when no file was picked
		if fh.Filename == "" {
			continue
		}
		if u.maxFileSize > 0 && fh.Size > u.maxFileSize {
			return services.Batch{}, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("File %s too large. Max size: %d bytes", fh.Filename, u.maxFileSize))
		}
		// kept in the batch; the pipeline records it as a failed result
		if !u.extractor.Supports(filepath.Ext(fh.Filename)) {
			u.log.Warn("unsupported upload",
				zap.String("session_id", batch.ID.String()),
				zap.String("filename", fh.Filename),
			)
		}
		uploads = append(uploads, fh)
	}

	for _, fh := range uploads {
		saved, err := u.storageService.SaveFile(batch.ID.String(), fh)
		if err != nil {
			u.Cleanup(batch.ID)
			u.log.Error("failed to save upload", zap.String("filename", fh.Filename), zap.Error(err))
			return services.Batch{}, fiber.NewError(fiber.StatusInternalServerError,
				fmt.Sprintf("failed to save file %s", fh.Filename))
		}
		batch.Files = append(batch.Files, saved)
	}

	return batch, nil
}

// Cleanup removes the batch's uploads once the pipeline is done with them.
func (u *UploadReceiver) Cleanup(batchID uuid.UUID) {
	if err := u.storageService.RemoveBatch(batchID.String()); err != nil {
		u.log.Warn("failed to remove batch uploads", zap.String("session_id", batchID.String()), zap.Error(err))
	}
}
