package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/pdf2ai/internal/config"
	"alfredoptarigan/pdf2ai/internal/handlers"
	"alfredoptarigan/pdf2ai/internal/logger"
	"alfredoptarigan/pdf2ai/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("config loaded",
		zap.Bool("env_file", cfg.EnvFileLoaded),
		zap.String("env", cfg.Server.Env),
	)

	// Initialize services
	storageService := services.NewStorageService(
		cfg.Storage.UploadPath,
		cfg.Storage.MaxFileSize,
		cfg.Storage.AllowedExtensions,
	)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	invoker, err := services.NewModelInvoker(context.Background(), cfg.Model, log)
	if err != nil {
		log.Fatal("failed to initialize model invoker", zap.Error(err))
	}
	log.Info("model invoker initialized",
		zap.String(logger.FieldProvider, cfg.Model.Provider),
		zap.String(logger.FieldModel, invoker.Model()),
	)

	pdfParser := services.NewPDFParserService(log)
	summarizerService := services.NewSummarizerService(pdfParser, invoker, log)
	comparatorService := services.NewComparatorService(pdfParser, invoker, log)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "PDF2AI API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Model.Timeout + 30*time.Second,
		BodyLimit:    cfg.Storage.BodyLimit(),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stderr,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.CORSOrigins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.SetupRoutes(app, handlers.Handlers{
		Health:    handlers.NewHealthHandler(cfg.Server),
		Summarize: handlers.NewSummarizeHandler(storageService, summarizerService, log),
		Compare:   handlers.NewCompareHandler(storageService, comparatorService, log),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := cfg.Addr()
	log.Info("server starting",
		zap.String("addr", addr),
		zap.Strings("cors_origins", cfg.Server.CORSOrigins),
	)

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
