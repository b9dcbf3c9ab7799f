package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/siteledger/timesheets/docs"
	"github.com/siteledger/timesheets/internal/api/handler"
	"github.com/siteledger/timesheets/internal/api/middleware"
	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

// Dependencies holds everything the HTTP layer needs. The caller owns the
// underlying connections.
type Dependencies struct {
	Log         zerolog.Logger
	JWTSecret   string
	Auth        ports.AuthService
	Timesheets  ports.TimesheetService
	Exports     ports.ExportService
	Format      ports.ReportWriter
	Revocations middleware.RevocationChecker
	// Health maps a dependency name to its readiness check.
	Health map[string]handler.Pinger
	// Metrics defaults to the global Prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(middleware.RequestLogger(deps.Log))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "timesheets",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	timesheetHandler := handler.NewTimesheetHandler(deps.Timesheets, deps.Exports, deps.Format)
	healthHandler := handler.NewHealthHandler(deps.Health)

	requireAuth := middleware.Auth(deps.JWTSecret, deps.Revocations)
	managerOnly := middleware.RBAC(domain.RoleManager)
	contractorOnly := middleware.RBAC(domain.RoleContractor)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/password-reset", authHandler.ResetPassword)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	v1 := e.Group("/v1", requireAuth)

	accounts := v1.Group("/accounts", managerOnly)
	accounts.GET("", authHandler.ListAccounts)
	accounts.POST("", authHandler.CreateAccount)
	accounts.DELETE("/:id", authHandler.DeleteAccount)

	timesheets := v1.Group("/timesheets")
	timesheets.POST("", timesheetHandler.Submit, contractorOnly)
	timesheets.GET("/mine", timesheetHandler.ListMine)
	timesheets.GET("/pending", timesheetHandler.ListPending, managerOnly)
	timesheets.GET("/approved", timesheetHandler.ListApproved, managerOnly)
	timesheets.GET("/summary", timesheetHandler.Summary, managerOnly)
	timesheets.GET("/export", timesheetHandler.Export, managerOnly)
	timesheets.GET("/:id", timesheetHandler.Get)
	timesheets.POST("/:id/approve", timesheetHandler.Approve, managerOnly)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
