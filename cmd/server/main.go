package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avirtanen/noshcart-backend/config"
	"github.com/avirtanen/noshcart-backend/internal/app/controller"
	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/internal/app/service"
	"github.com/avirtanen/noshcart-backend/internal/app/session"
	"github.com/avirtanen/noshcart-backend/internal/db"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/avirtanen/noshcart-backend/internal/router"
	"github.com/avirtanen/noshcart-backend/internal/scheduler"
	"github.com/avirtanen/noshcart-backend/internal/storage"
	"github.com/avirtanen/noshcart-backend/internal/websocket"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"github.com/avirtanen/noshcart-backend/pkg/recommender"
	"github.com/avirtanen/noshcart-backend/pkg/redis"
	"github.com/avirtanen/noshcart-backend/pkg/vision"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting NoshCart Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(db.GetDB()); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (notification feed storage)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// External service clients
	recommenderClient, err := recommender.NewClient(recommender.Config{
		BaseURL: cfg.Recommender.BaseURL,
		Timeout: cfg.Recommender.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create recommender client", err)
	}

	visionClient, err := vision.NewClient(vision.Config{
		BaseURL: cfg.Vision.BaseURL,
		Timeout: cfg.Vision.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create vision client", err)
	}

	// Complaint photo archive. The complaint flow works without it, so
	// a missing S3 setup only degrades to no archiving.
	var archive service.PhotoArchiver
	if s3Storage, err := storage.NewS3Storage(context.Background(), &cfg.S3); err != nil {
		logger.Warn("S3 storage unavailable, complaint photos will not be archived", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		archive = s3Storage
	}

	// Cart sessions live in memory; idle ones are purged hourly
	sessionStore := session.NewStore()
	cleanup := scheduler.NewSessionCleanupScheduler(sessionStore, cfg.Session.IdleTTL)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("Failed to start session cleanup scheduler", err)
	}
	defer cleanup.Stop()

	// WebSocket hub for notification pushes
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	restaurantRepo := repository.NewRestaurantRepository(db.GetDB())
	menuRepo := repository.NewMenuRepository(db.GetDB())
	groceryRepo := repository.NewGroceryRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(redis.GetClient())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT, redis.TokenBlacklist{})
	catalogService := service.NewCatalogService(restaurantRepo, menuRepo, groceryRepo)
	cartService := service.NewCartService(groceryRepo, menuRepo, recommenderClient)
	notificationService := service.NewNotificationService(notificationRepo, hub)
	checkoutService := service.NewCheckoutService(orderRepo, notificationService)
	complaintService := service.NewComplaintService(visionClient, archive, notificationService)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	orderController := controller.NewOrderController(orderRepo)
	complaintController := controller.NewComplaintController(complaintService)
	notificationController := controller.NewNotificationController(notificationService)
	wsController := controller.NewWebSocketController(hub, router.CheckWebSocketOrigin(cfg.CORS.AllowedOrigins))

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, redis.TokenBlacklist{})

	// Setup router
	r := router.NewRouter(
		authController,
		catalogController,
		cartController,
		checkoutController,
		orderController,
		complaintController,
		notificationController,
		wsController,
		authMiddleware,
		sessionStore,
		cfg,
	)
	engine := r.Setup()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": server.Addr,
			"pid":     os.Getpid(),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
