package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ritu-r8j/DINEEZY-sub001/config"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/cart"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/controller"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/service"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/db"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/router"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/scheduler"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/storage"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/websocket"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/kv"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
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

	logger.Info("Starting DINEEZY Backend Server", map[string]interface{}{
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
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize cart storage. Carts live in Redis with a TTL so abandoned
	// carts age out on their own.
	cartStore, err := kv.NewRedisStore(&kv.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.CartTTL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize cart storage", err)
	}
	defer func() {
		if err := cartStore.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	carts := cart.NewManager(cartStore)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	restaurantRepo := repository.NewRestaurantRepository(db.GetDB())
	menuRepo := repository.NewMenuRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	reservationRepo := repository.NewReservationRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())

	// Initialize websocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Every cart mutation is pushed to the owner's open sessions so all of a
	// user's devices show the same badge count.
	carts.OnChange(func(e cart.Event) {
		var userID uint
		if _, err := fmt.Sscanf(e.Owner, "user:%d", &userID); err != nil {
			return
		}
		hub.Push(userID, "cart_count", map[string]interface{}{
			"count":         e.Count,
			"restaurant_id": e.RestaurantID,
		})
	})

	pricing := service.PricingOptions{
		TaxRate:       cfg.Pricing.TaxRate,
		PromoCode:     cfg.Pricing.PromoCode,
		PromoDiscount: cfg.Pricing.PromoDiscount,
	}

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	restaurantService := service.NewRestaurantService(restaurantRepo)
	menuService := service.NewMenuService(menuRepo, restaurantRepo)
	cartService := service.NewCartService(carts, menuRepo, restaurantRepo, pricing)
	notificationService := service.NewNotificationService(notificationRepo, hub)
	orderService := service.NewOrderService(orderRepo, restaurantRepo, carts, pricing, notificationService)
	reservationService := service.NewReservationService(reservationRepo, restaurantRepo, notificationService)
	reviewService := service.NewReviewService(reviewRepo, restaurantRepo)

	// Initialize S3 storage for direct image uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	restaurantController := controller.NewRestaurantController(restaurantService)
	menuController := controller.NewMenuController(menuService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	reservationController := controller.NewReservationController(reservationService)
	reviewController := controller.NewReviewController(reviewService)
	notificationController := controller.NewNotificationController(notificationService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the background sweeps (reservation expiry, cart cache prune)
	backgroundScheduler := scheduler.New(reservationService, carts)
	if err := backgroundScheduler.Start(); err != nil {
		logger.Fatal("Failed to start background scheduler", err)
	}
	defer backgroundScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		restaurantController,
		menuController,
		cartController,
		orderController,
		reservationController,
		reviewController,
		notificationController,
		uploadController,
		authMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
