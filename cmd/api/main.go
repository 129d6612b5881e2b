package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/slatecms/backend/internal/config"
	"github.com/slatecms/backend/internal/db"
	"github.com/slatecms/backend/internal/events"
	apphttp "github.com/slatecms/backend/internal/http"
	"github.com/slatecms/backend/internal/http/handlers"
	"github.com/slatecms/backend/internal/repositories"
	"github.com/slatecms/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	contentRepo := repositories.NewContentRepo(pool)
	revisionRepo := repositories.NewRevisionRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	mediaRepo := repositories.NewMediaRepo(pool)
	snippetRepo := repositories.NewSnippetRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	userService := services.NewUserService(pool, userRepo, auditRepo, log)
	contentService := services.NewContentService(pool, contentRepo, revisionRepo, auditRepo, publisher, cfg.EventChannel, log)
	categoryService := services.NewCategoryService(pool, categoryRepo, auditRepo, log)
	mediaService := services.NewMediaService(pool, mediaRepo, auditRepo, log)
	snippetService := services.NewSnippetService(pool, snippetRepo, auditRepo, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg, log)
	userHandler := handlers.NewUserHandler(userService, log)
	contentHandler := handlers.NewContentHandler(contentService, log)
	categoryHandler := handlers.NewCategoryHandler(categoryService, log)
	mediaHandler := handlers.NewMediaHandler(mediaService, log)
	snippetHandler := handlers.NewSnippetHandler(snippetService, log)
	auditHandler := handlers.NewAuditHandler(auditRepo, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, userHandler, contentHandler, categoryHandler, mediaHandler, snippetHandler, auditHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
