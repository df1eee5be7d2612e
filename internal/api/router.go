package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/oakmart/storefront-api/docs"
	"github.com/oakmart/storefront-api/internal/api/handler"
	"github.com/oakmart/storefront-api/internal/api/middleware"
	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
	httphandlers "github.com/oakmart/storefront-api/internal/infrastructure/http/handlers"
)

// Services bundles the domain services the router dispatches to.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Orders   ports.OrderService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, log zerolog.Logger, readiness *httphandlers.ReadinessHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	userHandler := handler.NewUserHandler(svcs.Users)
	productHandler := handler.NewProductHandler(svcs.Products)
	orderHandler := handler.NewOrderHandler(svcs.Orders)

	requireAuth := middleware.Auth(svcs.Auth)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/api/login", authHandler.Login)
	e.GET("/api/products", productHandler.List)
	e.GET("/api/products/:id", productHandler.Get)

	// --- Authenticated routes ---
	orders := e.Group("/api/orders", requireAuth)
	orders.GET("", orderHandler.List)
	orders.POST("", orderHandler.Create)

	// --- Admin routes: authenticated, then role-gated ---
	admin := e.Group("/api/admin", requireAuth, requireAdmin)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users", userHandler.List)
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := httphandlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
