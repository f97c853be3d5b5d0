package router

import (
	"github.com/Ritu-r8j/DINEEZY-sub001/config"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/controller"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/websocket"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController         *controller.AuthController
	restaurantController   *controller.RestaurantController
	menuController         *controller.MenuController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	reservationController  *controller.ReservationController
	reviewController       *controller.ReviewController
	notificationController *controller.NotificationController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	hub                    *websocket.Hub
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	restaurantController *controller.RestaurantController,
	menuController *controller.MenuController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	reservationController *controller.ReservationController,
	reviewController *controller.ReviewController,
	notificationController *controller.NotificationController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	hub *websocket.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		restaurantController:   restaurantController,
		menuController:         menuController,
		cartController:         cartController,
		orderController:        orderController,
		reservationController:  reservationController,
		reviewController:       reviewController,
		notificationController: notificationController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		hub:                    hub,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "DINEEZY API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		restaurants := v1.Group("/restaurants")
		{
			restaurants.GET("", r.restaurantController.ListRestaurants)
			restaurants.GET("/mine",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.restaurantController.GetMyRestaurants,
			)
			restaurants.GET("/:idOrSlug", r.restaurantController.GetRestaurant)
			restaurants.GET("/:idOrSlug/menu",
				r.authMiddleware.OptionalAuthenticate(),
				r.menuController.GetMenu,
			)
			restaurants.GET("/:idOrSlug/reviews", r.reviewController.GetRestaurantReviews)

			restaurants.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.restaurantController.CreateRestaurant,
			)
			restaurants.PUT("/:idOrSlug",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.restaurantController.UpdateRestaurant,
			)
			restaurants.DELETE("/:idOrSlug",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.restaurantController.DeleteRestaurant,
			)

			restaurants.GET("/:idOrSlug/orders",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.orderController.GetRestaurantOrders,
			)
			restaurants.GET("/:idOrSlug/reservations",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.reservationController.GetRestaurantReservations,
			)
		}

		menu := v1.Group("/menu")
		{
			menu.GET("/:id", r.menuController.GetMenuItem)

			menu.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.menuController.CreateMenuItem,
			)
			menu.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.menuController.UpdateMenuItem,
			)
			menu.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("owner", "admin"),
				r.menuController.DeleteMenuItem,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.GET("/conflict/:restaurantId", r.cartController.CheckConflict)
			cart.PUT("/:id", r.cartController.UpdateCartLine)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.Checkout)
			orders.GET("", r.orderController.GetMyOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)

			orders.PUT("/:id/status",
				r.authMiddleware.RequireRole("owner", "admin"),
				r.orderController.UpdateOrderStatus,
			)
		}

		reservations := v1.Group("/reservations")
		reservations.Use(r.authMiddleware.Authenticate())
		{
			reservations.POST("", r.reservationController.CreateReservation)
			reservations.GET("", r.reservationController.GetMyReservations)
			reservations.DELETE("/:id", r.reservationController.CancelReservation)

			reservations.POST("/:id/confirm",
				r.authMiddleware.RequireRole("owner", "admin"),
				r.reservationController.ConfirmReservation,
			)
		}

		reviews := v1.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.POST("", r.reviewController.SubmitReview)
			reviews.DELETE("/:id", r.reviewController.DeleteReview)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(r.authMiddleware.Authenticate())
		{
			notifications.GET("", r.notificationController.GetNotifications)
			notifications.PUT("/:id/read", r.notificationController.MarkRead)
			notifications.PUT("/read-all", r.notificationController.MarkAllRead)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presign", r.uploadController.Presign)
		}

		// Browsers cannot set the Authorization header on WebSocket upgrades,
		// so Authenticate also accepts ?token=
		v1.GET("/ws", r.authMiddleware.Authenticate(), websocket.ServeWS(r.hub))
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
