package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	config "github.com/maheshrc27/contentplanner/configs"
	"github.com/maheshrc27/contentplanner/internal/api/handlers"
	"github.com/maheshrc27/contentplanner/internal/api/middleware"
	job "github.com/maheshrc27/contentplanner/internal/jobs"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/queue"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
)

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel))

	publishAt, err := models.ParseClock(cfg.DefaultPublishAt)
	if err != nil {
		return fmt.Errorf("DEFAULT_PUBLISH_TIME: %w", err)
	}

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closeDB(db)

	if err := repository.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error(err.Error(), "path", c.Path())
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "database unreachable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	postMediaRepo := repository.NewPostMediaRepository(db)

	publisher := queue.NewPublisher(client, publishAt, time.Local)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	postService := service.NewPostService(postRepo, campaignRepo)
	campaignService := service.NewCampaignService(campaignRepo)
	calendarService := service.NewCalendarService(postRepo, campaignRepo)
	approvalService := service.NewApprovalService(db, postRepo, approvalRepo, publisher)
	mediaService := service.NewMediaService(db, postRepo, mediaAssetRepo, postMediaRepo, service.NewR2Service(*cfg))

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	handlers.Register(app, authMiddleware.AuthMiddleware(), handlers.Handlers{
		Auth:     handlers.NewAuthHandler(*cfg, authService),
		User:     handlers.NewUserHandler(userService),
		Settings: handlers.NewSettingsHandler(settingsService),
		Calendar: handlers.NewCalendarHandler(calendarService, settingsService),
		Post:     handlers.NewPostHandler(postService),
		Campaign: handlers.NewCampaignHandler(campaignService),
		Approval: handlers.NewApprovalHandler(approvalService),
		Media:    handlers.NewMediaHandler(mediaService),
	})

	// cron jobs
	sweep := job.NewPublishSweepJob(postRepo, publisher, time.Local)
	c := cron.New()
	if err := c.AddJob(cfg.PublishSweepSpec, sweep); err != nil {
		return fmt.Errorf("PUBLISH_SWEEP_SPEC: %w", err)
	}
	c.Start()
	defer c.Stop()

	// queue
	worker := queue.NewQueue(postRepo)
	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Logger:      slogAdapter{},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskTypePublishPost, worker.HandlePublishPostTask)

	if err := server.Start(mux); err != nil {
		return fmt.Errorf("could not start asynq server: %w", err)
	}
	defer server.Shutdown()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("failed to start server", "error", err)
		}
	}()
	slog.Info("server is running", "port", cfg.Port)

	gracefulShutdown(app)
	return nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
		return
	}
	slog.Info("database connection closed")
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	slog.Info("shutting down server")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}
}

// slogAdapter routes asynq's logs through slog.
type slogAdapter struct{}

func (slogAdapter) Debug(args ...interface{}) { slog.Debug(fmt.Sprint(args...)) }
func (slogAdapter) Info(args ...interface{})  { slog.Info(fmt.Sprint(args...)) }
func (slogAdapter) Warn(args ...interface{})  { slog.Warn(fmt.Sprint(args...)) }
func (slogAdapter) Error(args ...interface{}) { slog.Error(fmt.Sprint(args...)) }
func (slogAdapter) Fatal(args ...interface{}) {
	slog.Error(fmt.Sprint(args...))
	os.Exit(1)
}
