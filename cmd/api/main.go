package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"jobscaffold-backend/internal/config"
	"jobscaffold-backend/internal/events"
	"jobscaffold-backend/internal/handler"
	"jobscaffold-backend/internal/middleware"
	"jobscaffold-backend/internal/repository"
	"jobscaffold-backend/internal/service"
	"jobscaffold-backend/internal/service/push"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slogger)

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	messagingClient, err := config.NewMessagingClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize push messaging: %v", err)
	}

	repos := repository.NewRepositories(db)
	bus := events.NewPublisher(redisClient)
	services := service.NewServices(repos, bus, push.NewFCMSender(messagingClient), cfg, slogger)
	handlers := handler.NewHandlers(services)

	listener := events.NewListener(redisClient, cfg.EventHandlerTimeout, slogger)
	listener.Handle(events.TopicNotificationCreated, services.Fanout.HandleNotificationCreated)
	listener.Handle(events.TopicProjectUpdateCreated, services.Notifier.HandleProjectUpdateCreated)
	listener.Handle(events.TopicFileCreated, services.Notifier.HandleFileCreated)
	listener.Handle(events.TopicInvoiceCreated, services.Notifier.HandleInvoiceCreated)
	listener.Handle(events.TopicMessageCreated, services.Notifier.HandleMessageCreated)
	listener.Handle(events.TopicContractUpdated, services.Notifier.HandleContractUpdated)
	listener.Handle(events.TopicLeadCreated, services.Lead.HandleLeadCreated)

	go func() {
		if err := listener.Run(context.Background()); err != nil && err != context.Canceled {
			log.Fatalf("Event listener stopped: %v", err)
		}
	}()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 9 * * 1", func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.EventHandlerTimeout)
		defer cancel()
		if err := services.Report.WeeklyLeadSummary(ctx); err != nil {
			slogger.Error("weekly lead summary failed", "error", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule weekly lead summary: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
		AllowMethods: "GET, POST, PATCH, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	v1.Post("/leads", h.Lead.Create)

	payments := v1.Group("/payments")
	payments.Post("/checkout-session", h.Payment.CreateCheckoutSession)
	payments.Post("/stripe/webhook", h.Payment.StripeWebhook)

	notifications := v1.Group("/notifications")
	notifications.Post("/test", middleware.RequireSecret(cfg.TestNotifySecret, "dev", "x-test-secret"), h.Notification.CreateTest)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	admin := v1.Group("/admin", middleware.RequireSecret(cfg.AdminSetupSecret, "admin123", "x-admin-secret"))
	admin.Post("/setup", h.Admin.Setup)
}
