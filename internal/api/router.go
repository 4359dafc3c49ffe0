package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tokobarang/inventory-dashboard/internal/api/handler"
	"github.com/tokobarang/inventory-dashboard/internal/api/middleware"
	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
	"github.com/tokobarang/inventory-dashboard/internal/core/service"
	"github.com/tokobarang/inventory-dashboard/internal/infrastructure/http/handlers"
)

// Deps are the collaborators of the dashboard server.
type Deps struct {
	Sessions     *service.SessionRegistry
	Products     ports.ProductResource
	Checks       map[string]handlers.Checker
	Log          zerolog.Logger
	CookieName   string
	SecureCookie bool
	LoginRate    rate.Limit
	LoginBurst   int

	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Renderer = handler.NewRenderer()

	metricsConfig := echoprometheus.MiddlewareConfig{Namespace: "inventory", Subsystem: "dashboard"}
	metricsHandlerConfig := echoprometheus.HandlerConfig{}
	if d.Registry != nil {
		metricsConfig.Registerer = d.Registry
		metricsHandlerConfig.Gatherer = d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig))

	// --- Health probes and metrics (no session required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(metricsHandlerConfig))

	// --- Pages ---
	sessionHandler := handler.NewSessionHandler()
	dashboardHandler := handler.NewDashboardHandler(d.Products, d.Log)
	loginLimiter := middleware.RateLimit(middleware.NewRateLimitStore(d.LoginRate, d.LoginBurst, 0))

	pages := e.Group("", middleware.Session(d.Sessions, d.CookieName, d.SecureCookie))
	pages.GET("/", sessionHandler.Index)
	pages.GET("/signin", sessionHandler.SignInPage)
	pages.POST("/signin", sessionHandler.SignIn, loginLimiter)
	pages.POST("/logout", dashboardHandler.Logout, middleware.ReleaseSession(d.Sessions))
	pages.GET("/dashboard", dashboardHandler.Show)

	products := pages.Group("/dashboard/products", middleware.RBAC(domain.RoleAdmin))
	products.GET("/new", dashboardHandler.New)
	products.POST("", dashboardHandler.Create)
	products.GET("/:id/edit", dashboardHandler.Edit)
	products.POST("/:id", dashboardHandler.Update)
	products.GET("/:id/delete", dashboardHandler.ConfirmDelete)
	products.POST("/:id/delete", dashboardHandler.Delete)

	return e
}
