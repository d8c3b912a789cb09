package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/privatebanking/banking-system/internal/api/handler"
	"github.com/privatebanking/banking-system/internal/api/middleware"
	"github.com/privatebanking/banking-system/internal/core/domain"
	"github.com/privatebanking/banking-system/internal/core/ports"
	"github.com/privatebanking/banking-system/internal/core/service"
	"github.com/privatebanking/banking-system/internal/infrastructure/config"
	"github.com/privatebanking/banking-system/internal/infrastructure/db/postgres"
	redisdb "github.com/privatebanking/banking-system/internal/infrastructure/db/redis"
)

// kinds fixes the registration order of the resource routes.
var kinds = []domain.Kind{
	domain.KindEmployees,
	domain.KindClients,
	domain.KindProducts,
	domain.KindTransactions,
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, audit ports.AuditRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("banking"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	resourceRepo := postgres.NewResourceRepository(pool)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	tokens := service.NewTokenService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, tokens, limiter, log)
	resourceService := service.NewResourceService(resourceRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	adminOnly := []echo.MiddlewareFunc{
		middleware.Auth(tokens),
		middleware.RequireRole(domain.RoleAdmin),
	}

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Resource routes ---
	// Reads are public; every mutation requires an admin bearer token.
	for _, kind := range kinds {
		h := handler.NewResourceHandler(resourceService, domain.Schemas[kind])
		base := "/" + string(kind)
		e.GET(base, h.List)
		e.POST(base, h.Create, adminOnly...)
		e.PUT(base+"/:id", h.Update, adminOnly...)
		e.DELETE(base+"/:id", h.Delete, adminOnly...)
	}

	// --- Operational routes ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "WELCOME TO PRIVATE BANKING DATABASE")
	})

	return e
}
