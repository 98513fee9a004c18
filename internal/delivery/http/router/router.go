// Package router contains routing for the local HTTP API.
package router

import (
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CartHandler     *handler.CartHandler
	SessionHandler  *handler.SessionHandler
	CheckoutHandler *handler.CheckoutHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	cartHandler     *handler.CartHandler
	sessionHandler  *handler.SessionHandler
	checkoutHandler *handler.CheckoutHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cartHandler:     params.CartHandler,
		sessionHandler:  params.SessionHandler,
		checkoutHandler: params.CheckoutHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	e.GET("/products", r.cartHandler.ListProducts)
	e.GET("/products/:id", r.cartHandler.GetProduct)

	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.DELETE("", r.cartHandler.Clear)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", r.cartHandler.SetQuantity)
		cartGroup.DELETE("/items/:productId", r.cartHandler.RemoveItem)
	}

	sessionGroup := e.Group("/session")
	{
		sessionGroup.GET("", r.sessionHandler.GetSession)
		sessionGroup.DELETE("", r.sessionHandler.Logout)
		sessionGroup.POST("/login", r.sessionHandler.Login)
		sessionGroup.POST("/register", r.sessionHandler.Register)
	}

	// Authentication is enforced by the checkout usecase against the session store.
	checkoutGroup := e.Group("/checkout")
	{
		checkoutGroup.GET("/defaults", r.checkoutHandler.GetDefaults)
		checkoutGroup.POST("", r.checkoutHandler.PlaceOrder)
	}

	e.GET("/orders", r.checkoutHandler.ListOrders)
}
