// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	ResourceHandler *handler.ResourceHandler
	PrefsHandler    *handler.PrefsHandler
	Session         *middleware.SessionMiddleware
	RequestID       *middleware.RequestIDMiddleware
	Logger          *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	resourceHandler *handler.ResourceHandler
	prefsHandler    *handler.PrefsHandler
	session         *middleware.SessionMiddleware
	requestID       *middleware.RequestIDMiddleware
	logger          *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		resourceHandler: params.ResourceHandler,
		prefsHandler:    params.PrefsHandler,
		session:         params.Session,
		requestID:       params.RequestID,
		logger:          params.Logger,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestID.Process)
	e.Use(r.logger.Handle)
	e.Use(r.session.Attach)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public-only routes: an authenticated visitor is sent home.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signin", r.authHandler.SignIn, r.session.Public)
		authGroup.POST("/signout", r.authHandler.SignOut)
	}

	// Everything under /api requires a valid, unexpired session.
	apiGroup := e.Group("/api")
	apiGroup.Use(r.session.Private)
	{
		apiGroup.GET("/preferences", r.prefsHandler.Get)
		apiGroup.PUT("/preferences", r.prefsHandler.Put)

		apiGroup.GET("/:resource", r.resourceHandler.List)
		apiGroup.POST("/:resource", r.resourceHandler.Create)
		apiGroup.PUT("/:resource", r.resourceHandler.Mutate)
		apiGroup.PATCH("/:resource", r.resourceHandler.Mutate)
		apiGroup.GET("/:resource/:id", r.resourceHandler.Retrieve)
		apiGroup.PUT("/:resource/:id", r.resourceHandler.Mutate)
		apiGroup.PATCH("/:resource/:id", r.resourceHandler.Mutate)
		apiGroup.DELETE("/:resource/:id", r.resourceHandler.Delete)
	}
}
