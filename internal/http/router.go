package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/slatecms/backend/internal/config"
	"github.com/slatecms/backend/internal/http/handlers"
	"github.com/slatecms/backend/internal/middleware"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	contentHandler *handlers.ContentHandler,
	categoryHandler *handlers.CategoryHandler,
	mediaHandler *handlers.MediaHandler,
	snippetHandler *handlers.SnippetHandler,
	auditHandler *handlers.AuditHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Profile
	protected.Get("/me", userHandler.GetMe)
	protected.Put("/me", userHandler.UpdateMe)

	// Versioned content. :type is page or post; the service rejects others.
	protected.Get("/contents/:type", contentHandler.List)
	protected.Post("/contents/:type", contentHandler.Create)
	protected.Get("/contents/:type/:slug", contentHandler.Get)
	protected.Put("/contents/:type/:slug", contentHandler.Update)
	protected.Delete("/contents/:type/:slug", contentHandler.Delete)
	protected.Get("/contents/:type/:slug/history", contentHandler.History)
	protected.Post("/contents/:type/:slug/restore", contentHandler.Restore)

	// History survives deletion; deleted records are addressed by id.
	protected.Get("/history/:type/:id", contentHandler.HistoryByID)

	// Taxonomy
	protected.Get("/categories", categoryHandler.List)
	protected.Post("/categories", categoryHandler.Create)
	protected.Get("/categories/:kind/:slug", categoryHandler.Get)
	protected.Put("/categories/:kind/:slug", categoryHandler.Update)
	protected.Delete("/categories/:kind/:slug", categoryHandler.Delete)

	// Media library
	protected.Get("/media", mediaHandler.List)
	protected.Post("/media", mediaHandler.Create)
	protected.Get("/media/:id", mediaHandler.Get)
	protected.Put("/media/:id", mediaHandler.Update)
	protected.Delete("/media/:id", mediaHandler.Delete)

	// Code snippets
	protected.Get("/snippets", snippetHandler.List)
	protected.Post("/snippets", snippetHandler.Create)
	protected.Put("/snippets/:id", snippetHandler.Update)
	protected.Delete("/snippets/:id", snippetHandler.Delete)

	// Audit trail (admin only)
	protected.Get("/audit", middleware.AdminMiddleware(), auditHandler.List)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
