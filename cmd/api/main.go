package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/revuhub/admin-backend/internal/config"
	"github.com/revuhub/admin-backend/internal/db"
	"github.com/revuhub/admin-backend/internal/events"
	apphttp "github.com/revuhub/admin-backend/internal/http"
	"github.com/revuhub/admin-backend/internal/http/handlers"
	"github.com/revuhub/admin-backend/internal/repositories"
	"github.com/revuhub/admin-backend/internal/services"
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
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
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
	campaignRepo := repositories.NewCampaignRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)
	postRepo := repositories.NewPostRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	mailClient := services.NewMailClient(cfg.MailerInternalURL, cfg.NotifyTimeout, cfg.MailMaxRetries, log)
	notifier := services.NewNotifier(notificationRepo, userRepo, mailClient, publisher, cfg.NotifyTimeout, log)
	approvalService := services.NewApprovalService(campaignRepo, userRepo, postRepo, auditRepo, notifier, publisher, log)
	queryService := services.NewQueryService(campaignRepo, cfg.ExpiredScanLimit, log)
	statsService := services.NewStatsService(campaignRepo, rdb, cfg.StatsCacheTTL, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	campaignHandler := handlers.NewCampaignHandler(approvalService, queryService, statsService, auditRepo, log)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, log)
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

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, campaignHandler, notificationHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
		// Let in-flight notification fan-outs finish before the pool closes.
		notifier.Wait()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting admin API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
