package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/revuhub/admin-backend/internal/config"
	"github.com/revuhub/admin-backend/internal/http/handlers"
	"github.com/revuhub/admin-backend/internal/middleware"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	campaignHandler *handlers.CampaignHandler,
	notificationHandler *handlers.NotificationHandler,
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
	api.Post("/auth/login", authHandler.Login)

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/campaign-types", metaHandler.GetCampaignTypes)
	api.Get("/meta/categories", metaHandler.GetCategories)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	protected.Get("/me", authHandler.GetMe)

	// Notifications (any signed-in user)
	protected.Get("/me/notifications", notificationHandler.List)
	protected.Post("/me/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Post("/me/notifications/:id/read", notificationHandler.MarkRead)

	// Admin console (back-office roles only; fine-grained permission checks
	// live in the services)
	admin := protected.Group("/admin", middleware.BackOfficeMiddleware())

	admin.Get("/campaigns/stats", campaignHandler.GetStats)
	admin.Get("/campaigns/pending", campaignHandler.ListPending)
	admin.Get("/campaigns/search", campaignHandler.SearchCampaigns)
	admin.Get("/campaigns", campaignHandler.ListCampaigns)
	admin.Get("/campaigns/:id", campaignHandler.GetCampaign)
	admin.Get("/campaigns/:id/events", campaignHandler.GetEvents)
	admin.Post("/campaigns/:id/decision", campaignHandler.Decide)
	admin.Delete("/campaigns/:id", campaignHandler.DeleteCampaign)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
