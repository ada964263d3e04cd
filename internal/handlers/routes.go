package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Health    *HealthHandler
	Summarize *SummarizeHandler
	Compare   *CompareHandler
}

func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.Health.HandleRoot)

	api := app.Group("/api")
	api.Get("/health", h.Health.HandleHealth)
	api.Get("/test", h.Health.HandleTest)
	api.Post("/summarize", h.Summarize.HandleSummarize)
	api.Post("/compare", h.Compare.HandleCompare)
}
