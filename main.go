package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/auth"
	"github.com/driveeasy/booking-service/internal/config"
	"github.com/driveeasy/booking-service/internal/events"
	"github.com/driveeasy/booking-service/internal/handlers"
	"github.com/driveeasy/booking-service/internal/repositories/postgres"
	"github.com/driveeasy/booking-service/internal/services"
	"github.com/driveeasy/booking-service/internal/utils"
	"github.com/driveeasy/booking-service/internal/validator"
	"github.com/driveeasy/booking-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(slogger)
	logger := utils.NewSlogLogger(slogger)

	logger.Info("starting booking service",
		"environment", cfg.Environment,
		"port", cfg.Port)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Initialize Redis. The service degrades gracefully without it: sessions
	// fall back to an in-memory store and stats are computed on every request.
	var sessionStore auth.Store
	repoConfig := postgres.RepositoryConfig{DB: db}
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory session store", "error", err)
			sessionStore = auth.NewMemoryStore()
		} else {
			defer redisClient.Close()
			repoConfig.RedisClient = redisClient
			sessionStore = auth.NewRedisStore(redisClient)
		}
	} else {
		logger.Warn("REDIS_URL not set, using in-memory session store")
		sessionStore = auth.NewMemoryStore()
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(repoConfig)
	if err := repoManager.Initialize(); err != nil {
		logger.Error("failed to initialize repositories", "error", err)
		os.Exit(1)
	}
	repo := repoManager.GetRepository()

	// Initialize services
	v := validator.New()
	publisher := events.NewWatermillPublisher(slogger)
	sessions := auth.NewManager(sessionStore, cfg.SessionTTL)

	serviceManager := services.NewDefaultServiceManager(repo, publisher, slogger, v, cfg.BcryptCost)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handlers.SetupMiddleware(router, logger, cfg.FrontendURL)

	handlerManager := handlers.NewHandlerManager(serviceManager, sessions, logger, cfg.IsProduction())
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("service shutdown failed", "error", err)
	}
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("repository shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}
