package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/models"
	"alfredoptarigan/pdf2ai/internal/services"
)

type SummarizeHandler struct {
	storageService    services.StorageService
	summarizerService services.SummarizerService
	logger            *zap.Logger
}

func NewSummarizeHandler(
	storageService services.StorageService,
	summarizerService services.SummarizerService,
	log *zap.Logger,
) *SummarizeHandler {
	return &SummarizeHandler{
		storageService:    storageService,
		summarizerService: summarizerService,
		logger:            logger.OrNop(log),
	}
}

// HandleSummarize accepts a PDF in the "file" field and returns its summary.
// The upload is removed once the request finishes.
func (h *SummarizeHandler) HandleSummarize(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "a PDF file is required in the \"file\" field")
	}

	filename, filePath, err := h.storageService.SaveFile(file, "file")
	if err != nil {
		return respondError(c, StatusFor(err), fmt.Sprintf("failed to save file: %v", err))
	}
	defer h.cleanup(filename)

	h.logger.Info("summarizing upload",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size),
	)

	summary, err := h.summarizerService.Summarize(c.UserContext(), filePath)
	if err != nil {
		h.logger.Error("summarization failed", zap.String("filename", file.Filename), zap.Error(err))
		return respondError(c, StatusFor(err), fmt.Sprintf("error processing PDF: %v", err))
	}

	return c.JSON(models.SummarizeResponse{
		Summary:  summary.Text,
		Status:   "success",
		Progress: 100,
		Filename: file.Filename,
		Model:    summary.Model,
	})
}

func (h *SummarizeHandler) cleanup(filename string) {
	if err := h.storageService.DeleteFile(filename); err != nil {
		h.logger.Warn("failed to remove upload", zap.String("filename", filename), zap.Error(err))
	}
}
