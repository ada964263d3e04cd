package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/models"
	"alfredoptarigan/pdf2ai/internal/services"
)

type CompareHandler struct {
	storageService    services.StorageService
	comparatorService services.ComparatorService
	logger            *zap.Logger
}

func NewCompareHandler(
	storageService services.StorageService,
	comparatorService services.ComparatorService,
	log *zap.Logger,
) *CompareHandler {
	return &CompareHandler{
		storageService:    storageService,
		comparatorService: comparatorService,
		logger:            logger.OrNop(log),
	}
}

// HandleCompare compares the CV uploaded in "cv" with the advert in "job_text".
func (h *CompareHandler) HandleCompare(c *fiber.Ctx) error {
	cvFile, err := c.FormFile("cv")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "a CV PDF is required in the \"cv\" field")
	}

	jobText := strings.TrimSpace(c.FormValue("job_text"))
	if jobText == "" {
		return respondError(c, fiber.StatusBadRequest, "job_text is required")
	}

	filename, filePath, err := h.storageService.SaveFile(cvFile, "cv")
	if err != nil {
		return respondError(c, StatusFor(err), fmt.Sprintf("failed to save CV file: %v", err))
	}
	defer func() {
		if err := h.storageService.DeleteFile(filename); err != nil {
			h.logger.Warn("failed to remove upload", zap.String("filename", filename), zap.Error(err))
		}
	}()

	comparison, err := h.comparatorService.Compare(c.UserContext(), filePath, jobText)
	if err != nil {
		h.logger.Error("comparison failed", zap.String("filename", cvFile.Filename), zap.Error(err))
		return respondError(c, StatusFor(err), fmt.Sprintf("error comparing CV: %v", err))
	}

	return c.JSON(models.CompareResponse{
		ID:       comparison.ID.String(),
		Stats:    comparison.Stats,
		Analysis: comparison.Analysis,
		Report:   comparison.Report,
		Text:     comparison.Report.Text(),
	})
}
