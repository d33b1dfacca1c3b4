package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/oakfield-edu/gradecast/internal/config"
	"github.com/oakfield-edu/gradecast/internal/database"
	"github.com/oakfield-edu/gradecast/internal/handler"
	"github.com/oakfield-edu/gradecast/internal/middleware"
	"github.com/oakfield-edu/gradecast/internal/router"
	"github.com/oakfield-edu/gradecast/internal/service"
	"github.com/oakfield-edu/gradecast/internal/snapshot"
	"github.com/oakfield-edu/gradecast/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	snapshots := snapshot.NewFileStore(cfg.SnapshotPath)
	studentStore := store.NewStudentStore(snapshots, logger)

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	}

	events, closeEvents, err := buildEventPublisher(cfg, logger)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer closeEvents()

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentService := service.NewStudentService(studentStore, validate, cache, cfg.ListCacheTTL, events, logger)
	studentHandler := handler.NewStudentHandler(studentService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler: studentHandler,
		StudentCount:   studentStore.Count,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

func buildEventPublisher(cfg config.Config, logger zerolog.Logger) (service.EventPublisher, func(), error) {
	if cfg.NATSURL == "" {
		return service.NewLogEventPublisher(logger), func() {}, nil
	}

	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, nil, err
	}

	return service.NewNATSEventPublisher(conn, cfg.EventSubject), conn.Close, nil
}
