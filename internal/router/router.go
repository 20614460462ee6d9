package router

import (
	"net/http"
	"strings"

	"github.com/avirtanen/noshcart-backend/config"
	"github.com/avirtanen/noshcart-backend/internal/app/controller"
	"github.com/avirtanen/noshcart-backend/internal/app/session"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController         *controller.AuthController
	catalogController      *controller.CatalogController
	cartController         *controller.CartController
	checkoutController     *controller.CheckoutController
	orderController        *controller.OrderController
	complaintController    *controller.ComplaintController
	notificationController *controller.NotificationController
	wsController           *controller.WebSocketController
	authMiddleware         *middleware.AuthMiddleware
	sessionStore           *session.Store
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	orderController *controller.OrderController,
	complaintController *controller.ComplaintController,
	notificationController *controller.NotificationController,
	wsController *controller.WebSocketController,
	authMiddleware *middleware.AuthMiddleware,
	sessionStore *session.Store,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		catalogController:      catalogController,
		cartController:         cartController,
		checkoutController:     checkoutController,
		orderController:        orderController,
		complaintController:    complaintController,
		notificationController: notificationController,
		wsController:           wsController,
		authMiddleware:         authMiddleware,
		sessionStore:           sessionStore,
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
			"message": "NoshCart API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me/address", r.authMiddleware.Authenticate(), r.authController.UpdateDeliveryAddress)
		}

		restaurants := api.Group("/restaurants")
		{
			restaurants.GET("", r.catalogController.ListRestaurants)
			restaurants.GET("/:id", r.catalogController.GetRestaurant)
			restaurants.GET("/:id/menu", r.catalogController.GetMenu)
		}

		groceries := api.Group("/groceries")
		{
			groceries.GET("", r.catalogController.ListGroceries)
			groceries.GET("/categories", r.catalogController.ListGroceryCategories)
			groceries.GET("/:id", r.catalogController.GetGrocery)
		}

		// everything below works on the caller's cart session
		sessioned := api.Group("")
		sessioned.Use(middleware.SessionMiddleware(r.sessionStore))
		{
			cart := sessioned.Group("/cart")
			{
				cart.GET("", r.cartController.GetCart)
				cart.DELETE("", r.cartController.ClearCart)
				cart.POST("/items", r.cartController.AddItem)
				cart.DELETE("/items/:id", r.cartController.RemoveItem)
				cart.POST("/items/:id/replace", r.cartController.ReplaceItem)
				cart.POST("/items/:id/navigate", r.cartController.Navigate)
				cart.POST("/optimize", r.cartController.Optimize)
			}

			checkout := sessioned.Group("/checkout")
			checkout.Use(r.authMiddleware.OptionalAuthenticate())
			{
				checkout.GET("/quote", r.checkoutController.GetQuote)
				checkout.POST("", r.checkoutController.PlaceOrder)
			}

			orders := sessioned.Group("/orders")
			orders.Use(r.authMiddleware.OptionalAuthenticate())
			{
				orders.GET("", r.orderController.List)
				orders.GET("/:id", r.orderController.Get)
			}

			complaints := sessioned.Group("/complaints")
			{
				complaints.POST("/damage", r.complaintController.SubmitDamage)
			}

			notifications := sessioned.Group("/notifications")
			{
				notifications.GET("", r.notificationController.List)
				notifications.PUT("/read-all", r.notificationController.MarkAllRead)
				notifications.PUT("/:id/read", r.notificationController.MarkRead)
				notifications.DELETE("", r.notificationController.ClearAll)
			}

			sessioned.GET("/ws", r.wsController.Connect)
		}
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Session-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Session-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// CheckWebSocketOrigin builds the origin check the websocket upgrader
// uses, from the same allow-list CORS uses.
func CheckWebSocketOrigin(allowedOrigins []string) func(r *http.Request) bool {
	return func(req *http.Request) bool {
		origin := req.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == "*" || strings.EqualFold(origin, allowed) {
				return true
			}
		}
		return false
	}
}
