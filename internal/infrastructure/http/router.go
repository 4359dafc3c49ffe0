package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/tokobarang/inventory-dashboard/internal/api"
	apimiddleware "github.com/tokobarang/inventory-dashboard/internal/api/middleware"
	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
	"github.com/tokobarang/inventory-dashboard/internal/infrastructure/http/handlers"
)

// NewRouter builds the development resource server: /users and /products
// over the given repositories.
func NewRouter(products ports.ProductRepository, users ports.UserRepository, checks map[string]handlers.Checker, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(apimiddleware.RequestLogger(log))
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	}).Handler))

	// --- Health probes ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Resources ---
	productHandler := handlers.NewProductHandler(products)
	userHandler := handlers.NewUserHandler(users)

	e.GET("/products", productHandler.List)
	e.POST("/products", productHandler.Create)
	e.GET("/products/:id", productHandler.Get)
	e.PUT("/products/:id", productHandler.Update)
	e.DELETE("/products/:id", productHandler.Delete)

	e.GET("/users", userHandler.List)
	e.GET("/users/:id", userHandler.Get)

	return e
}
