package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopify-cost-editor/internal/auth"
	"shopify-cost-editor/internal/handlers"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Products *handlers.ProductsHandler
	Changes  *handlers.ChangesHandler
	Audit    *handlers.AuditHandler
	Webhooks *handlers.WebhooksHandler
}

// New builds the echo instance with all routes registered. The /api
// group requires an authenticated session.
func New(sessions *auth.SessionManager, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: false,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(200)
	})

	e.GET("/auth/install", h.Auth.Install)
	e.GET("/auth/callback", h.Auth.Callback)
	e.POST("/webhooks/app/uninstalled", h.Webhooks.AppUninstalled)

	api := e.Group("/api", sessions.Middleware())
	api.GET("/products", h.Products.List)
	api.GET("/products/:id", h.Products.Get)
	api.GET("/locations", h.Products.Locations)
	api.POST("/changes", h.Changes.Update)
	api.GET("/audit-logs", h.Audit.List)

	return e
}
