// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProductHandler   *handler.ProductHandler
	OrderHandler     *handler.OrderHandler
	UserHandler      *handler.UserHandler
	AnalyticsHandler *handler.AnalyticsHandler
	CartHandler      *handler.CartHandler
	AuthMiddleware   *middleware.AuthMiddleware
	Config           *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	productHandler   *handler.ProductHandler
	orderHandler     *handler.OrderHandler
	userHandler      *handler.UserHandler
	analyticsHandler *handler.AnalyticsHandler
	cartHandler      *handler.CartHandler
	authMiddleware   *middleware.AuthMiddleware
	config           *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		productHandler:   params.ProductHandler,
		orderHandler:     params.OrderHandler,
		userHandler:      params.UserHandler,
		analyticsHandler: params.AnalyticsHandler,
		cartHandler:      params.CartHandler,
		authMiddleware:   params.AuthMiddleware,
		config:           params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)

		// Authenticated profile aliases kept for older storefront clients
		authProfile := authGroup.Group("")
		authProfile.Use(r.authMiddleware.Authenticate)
		{
			authProfile.GET("/profile", r.userHandler.GetProfile)
			authProfile.PUT("/profile", r.userHandler.UpdateProfile)
			authProfile.POST("/wishlist", r.userHandler.ToggleWishlist)
		}
	}

	// Catalog routes; browsing is public, writes require the admin role
	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/:id", r.productHandler.GetProduct)

		reviewGroup := productsGroup.Group("")
		reviewGroup.Use(r.authMiddleware.Authenticate)
		{
			reviewGroup.POST("/:id/reviews", r.productHandler.AddReview)
		}

		adminProducts := productsGroup.Group("")
		adminProducts.Use(r.authMiddleware.Authenticate)
		adminProducts.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
		{
			adminProducts.POST("", r.productHandler.CreateProduct)
			adminProducts.PUT("/:id", r.productHandler.UpdateProduct)
			adminProducts.DELETE("/:id", r.productHandler.DeleteProduct)
		}
	}

	// Order routes, all authenticated
	ordersGroup := api.Group("/orders")
	ordersGroup.Use(r.authMiddleware.Authenticate)
	{
		ordersGroup.POST("", r.orderHandler.PlaceOrder)
		ordersGroup.GET("", r.orderHandler.ListMyOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/qr", r.orderHandler.OrderQRCode)

		adminOrders := ordersGroup.Group("")
		adminOrders.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
		{
			adminOrders.GET("/all/orders", r.orderHandler.ListAllOrders)
			adminOrders.PUT("/:id", r.orderHandler.UpdateOrderStatus)
		}
	}

	// User routes: self-service profile plus admin account management
	usersGroup := api.Group("/users")
	usersGroup.Use(r.authMiddleware.Authenticate)
	{
		usersGroup.GET("/profile", r.userHandler.GetProfile)
		usersGroup.PUT("/profile", r.userHandler.UpdateProfile)
		usersGroup.POST("/address", r.userHandler.AddAddress)
		usersGroup.DELETE("/address/:id", r.userHandler.DeleteAddress)
		usersGroup.POST("/wishlist", r.userHandler.ToggleWishlist)

		adminUsers := usersGroup.Group("")
		adminUsers.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
		{
			adminUsers.GET("", r.userHandler.ListUsers)
			adminUsers.GET("/:id", r.userHandler.GetUser)
			adminUsers.PUT("/:id", r.userHandler.UpdateUser)
			adminUsers.DELETE("/:id", r.userHandler.DeleteUser)
		}
	}

	// Analytics routes (admin only)
	analyticsGroup := api.Group("/analytics")
	analyticsGroup.Use(r.authMiddleware.Authenticate)
	analyticsGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		analyticsGroup.GET("/dashboard", r.analyticsHandler.Dashboard)
	}

	// Cart routes answer with a fixed message; the cart lives on the client.
	// They still require a session, matching the rest of the account surface.
	cartGroup := api.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.Info)
		cartGroup.POST("", r.cartHandler.Info)
		cartGroup.PUT("/:id", r.cartHandler.Info)
		cartGroup.DELETE("/:id", r.cartHandler.Info)
		cartGroup.DELETE("", r.cartHandler.Info)
	}
}
