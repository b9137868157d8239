// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"novacommerce/internal/delivery/http/middleware"
	"novacommerce/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CatalogHandler *handler.CatalogHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	PaymentHandler *handler.PaymentHandler

	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", p.AuthHandler.Register)
		authGroup.POST("/login", p.AuthHandler.Login, p.RateLimitMiddleware.LimitLogin)
	}

	// Public catalog routes. The product listing takes optional auth so
	// staff callers can request inactive products.
	e.GET("/categories", p.CatalogHandler.ListCategories)
	e.GET("/products", p.CatalogHandler.ListProducts, p.AuthMiddleware.AuthenticateOptional)
	e.GET("/products/:slug", p.CatalogHandler.GetProduct)

	// Cart routes require authentication
	cartGroup := e.Group("/cart")
	cartGroup.Use(p.AuthMiddleware.Authenticate)
	{
		cartGroup.GET("", p.CartHandler.GetCart)
		cartGroup.POST("/items", p.CartHandler.AddItem)
		cartGroup.PATCH("/items/:productId", p.CartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", p.CartHandler.RemoveItem)
	}

	// Order routes require authentication
	orderGroup := e.Group("/orders")
	orderGroup.Use(p.AuthMiddleware.Authenticate)
	{
		orderGroup.POST("", p.OrderHandler.Checkout)
		orderGroup.GET("", p.OrderHandler.ListOrders)
		orderGroup.GET("/:id", p.OrderHandler.GetOrder)
		orderGroup.POST("/:id/payment", p.PaymentHandler.CreatePayment)
		orderGroup.GET("/:id/payment", p.PaymentHandler.GetPayment)
	}

	// Provider confirmation callback; the opaque reference authenticates it
	e.POST("/payments/confirm", p.PaymentHandler.ConfirmPayment)

	// Admin routes require authentication and a staff role
	adminGroup := e.Group("/admin")
	adminGroup.Use(p.AuthMiddleware.Authenticate)
	adminGroup.Use(p.AuthMiddleware.RequireStaff)
	{
		adminGroup.POST("/categories", p.CatalogHandler.CreateCategory)
		adminGroup.POST("/products", p.CatalogHandler.CreateProduct)
		adminGroup.PUT("/products/:slug/stock", p.CatalogHandler.SetStock)
	}
}
