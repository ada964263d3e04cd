package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/pdf2ai/internal/config"
	"alfredoptarigan/pdf2ai/internal/models"
)

const projectName = "PDF2AI"

// Endpoints lists the routes advertised by the root and test endpoints.
var Endpoints = []string{
	"GET /api/health",
	"GET /api/test",
	"POST /api/summarize",
	"POST /api/compare",
}

type HealthHandler struct {
	server config.ServerConfig
}

func NewHealthHandler(server config.ServerConfig) *HealthHandler {
	return &HealthHandler{server: server}
}

func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   "PDF2AI API is running",
		"status":    "ok",
		"version":   h.server.Version,
		"project":   projectName,
		"endpoints": Endpoints,
	})
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "ok",
		Message:   "PDF2AI API is healthy",
		Timestamp: time.Now(),
		Version:   h.server.Version,
	})
}

func (h *HealthHandler) HandleTest(c *fiber.Ctx) error {
	return c.JSON(models.TestConnectionResponse{
		Message:            "Backend connection successful!",
		Backend:            "Go Fiber",
		Timestamp:          time.Now(),
		Version:            h.server.Version,
		AvailableEndpoints: Endpoints,
		CORSOrigins:        h.server.CORSOrigins,
	})
}
