package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/database"
	"expense-tracker-api/internal/handlers"
	"expense-tracker-api/internal/middleware"
	"expense-tracker-api/internal/repositories"
	"expense-tracker-api/internal/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	systemCategoryRepo := repositories.NewSystemCategoryRepository(db.DB)
	userCategoryRepo := repositories.NewUserCategoryRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics, logger)
	categoryService := services.NewCategoryService(systemCategoryRepo, userCategoryRepo, metrics, logger)
	expenseService := services.NewExpenseService(expenseRepo, systemCategoryRepo, userCategoryRepo, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORS())

	// Public routes
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	auth := e.Group("", middleware.RequireAuth(tokenService))
	auth.POST("/auth/logout", authHandler.Logout)
	auth.GET("/auth/me", authHandler.Me)
	auth.DELETE("/auth/me", authHandler.DeleteMe)

	auth.GET("/categories", categoryHandler.List)
	auth.POST("/categories", categoryHandler.Create)
	auth.DELETE("/categories/:id", categoryHandler.Delete)

	auth.GET("/expenses", expenseHandler.List)
	auth.POST("/expenses", expenseHandler.Create)
	auth.GET("/expenses/:id", expenseHandler.Get)
	auth.PUT("/expenses/:id", expenseHandler.Update)
	auth.DELETE("/expenses/:id", expenseHandler.Delete)

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Info("Starting expense tracker server", "addr", addr, "environment", cfg.Server.Environment)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
