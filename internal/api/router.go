package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shiftline/staff-scheduler/docs"
	"github.com/shiftline/staff-scheduler/internal/api/handler"
	"github.com/shiftline/staff-scheduler/internal/api/middleware"
	"github.com/shiftline/staff-scheduler/internal/core/ports"
	"github.com/shiftline/staff-scheduler/internal/core/service"
	"github.com/shiftline/staff-scheduler/internal/core/token"
	mongodb "github.com/shiftline/staff-scheduler/internal/infrastructure/db/mongo"
	redisdb "github.com/shiftline/staff-scheduler/internal/infrastructure/db/redis"
)

// Deps bundles the external resources the router wires together.
type Deps struct {
	Mongo  *mongo.Database
	Redis  *redis.Client
	Issuer *token.Issuer
	Audit  ports.AuditSink
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("scheduler"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(d.Mongo)
	shiftRepo := mongodb.NewShiftRepository(d.Mongo)
	idemStore := redisdb.NewIdempotencyStore(d.Redis)

	authService := service.NewAuthService(userRepo, d.Issuer, d.Audit)
	shiftService := service.NewShiftService(shiftRepo, userRepo, idemStore, d.Audit)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	gate := middleware.Auth(d.Issuer, userRepo)

	// --- Public routes ---
	e.POST("/api/users/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Protected routes ---
	e.GET("/api/auth", authHandler.WhoAmI, gate)
	e.GET("/api/users", userHandler.List, gate)

	shifts := e.Group("/api/shifts", gate)
	shifts.POST("", shiftHandler.Create)
	shifts.GET("", shiftHandler.List)
	shifts.PUT("/:id", shiftHandler.Update)
	shifts.DELETE("/:id", shiftHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
