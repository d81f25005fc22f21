package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/handlers"
	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/services"
)

const (
	apiPrefix = "/api/v1"

	// uploads arrive as one multipart body holding every resume
	maxRequestBody = 64 << 20
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	sessions, err := config.InitSessionStore(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize session store", zap.Error(err))
	}

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.ReportPath)
	if err := storageService.EnsureDirs(); err != nil {
		zl.Fatal("failed to create storage directories", zap.Error(err))
	}

	generator, err := config.InitTextGenerator(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize text generator", zap.Error(err))
	}

	sweeper := services.NewSweeper(sessions, storageService, cfg.Store.Retention, cfg.Store.SweepInterval, zl)
	sweeper.Start(ctx)

	extractor := services.NewTextExtractor()
	pipeline := services.NewPipelineOrchestrator(
		extractor,
		services.NewResumeScorer(generator, cfg.Scoring.Timeout, zl),
		services.NewPDFReportGenerator(),
		sessions,
		sweeper,
		services.PipelineConfig{
			Pace:             cfg.Scoring.Pace,
			ReportDir:        cfg.Storage.ReportPath,
			ReportURLPrefix:  apiPrefix + "/download/",
			ResultsURLPrefix: apiPrefix + "/results/",
		},
		zl,
	)

	rankHandler := handlers.NewRankHandler(
		pipeline,
		handlers.NewUploadReceiver(storageService, extractor, cfg.Storage.MaxFileSize, zl),
		zl,
	)
	resultHandler := handlers.NewResultHandler(sessions, zl)
	downloadHandler := handlers.NewDownloadHandler(storageService)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Ranker API",
		ReadTimeout:  30 * time.Second,
		BodyLimit:    maxRequestBody,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, rankHandler, resultHandler, downloadHandler)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Ranker API",
			"endpoints": []string{
				"POST " + apiPrefix + "/rank",
				"POST " + apiPrefix + "/rank/stream",
				"GET " + apiPrefix + "/results/:id",
				"GET " + apiPrefix + "/results/:id/export",
				"GET " + apiPrefix + "/download/:filename",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		sweeper.Stop()
		stop()
		if err := app.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Server.Env),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("store", cfg.Store.Backend),
	)

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}
