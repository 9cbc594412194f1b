package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-forge/internal/app"
	"alfredoptarigan/resume-forge/internal/config"
	"alfredoptarigan/resume-forge/internal/handlers"
	"alfredoptarigan/resume-forge/internal/logger"
	"alfredoptarigan/resume-forge/internal/repositories"
	"alfredoptarigan/resume-forge/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	if err := logger.Init(logger.Options{
		Path:       cfg.Log.Path,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	logger.Infof("✅ Config loaded successfully (env=%s, blob backend=%s)", cfg.Server.Env, cfg.Storage.Backend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Submission history
	submissions := repositories.NewNoopSubmissionRepository()
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		submissions = repositories.NewSubmissionRepository(db)
		logger.Infof("✅ Submission history enabled")
	}

	// Transient upload directory
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pipeline, err := app.BuildPipeline(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	logger.Infof("✅ Pipeline initialized (blob backend=%s, model=%s)", cfg.Storage.Backend, cfg.Gemini.Model)

	sweeper := services.NewSweeper(cfg.Storage.UploadPath, cfg.Sweeper.Interval, cfg.Sweeper.MaxAge)
	sweeper.Start(ctx)

	generate := handlers.NewGenerateHandler(
		ctx,
		storageService,
		pipeline,
		services.NewPDFInspector(),
		submissions,
	)
	h := handlers.Handlers{Generate: generate}
	if cfg.Database.Enabled {
		h.Submission = handlers.NewSubmissionHandler(submissions)
	}
	logger.Infof("✅ Handlers initialized")

	server := fiber.New(fiber.Config{
		AppName:      "Resume Forge API",
		ReadTimeout:  30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	server.Use(recover.New())
	server.Use(handlers.RequestID())
	server.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} rid=${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     logger.Default().Writer(),
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(server, h)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	logger.Infof("🚀 Server running on http://localhost%s", addr)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	err = app.Serve(server, ln, quit, cfg.Server.ShutdownTimeout, func() {
		// Requests still running after the drain window lose their
		// outbound calls but still remove their transient files.
		cancel()
		generate.Wait()
		sweeper.Stop()
	})
	if err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
