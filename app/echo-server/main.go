package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aiAutomate/app/echo-server/router"
	"aiAutomate/business/content"
	"aiAutomate/business/intent"
	"aiAutomate/business/roi"
	"aiAutomate/internal/middleware"
	"aiAutomate/internal/repository/memory"
	psqlRepo "aiAutomate/internal/repository/postgres"
	redisRepo "aiAutomate/internal/repository/redis"
	"aiAutomate/internal/rest"
	"aiAutomate/pkg/config"
	"aiAutomate/pkg/database"
	redisClient "aiAutomate/pkg/database/redis"
	"aiAutomate/pkg/logger"
	"aiAutomate/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// conversion tokens stay valid for a day after the content was served
const conversionTokenTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Session signal store: Redis when configured, process memory otherwise
	var signalStore intent.SignalStore
	if cfg.Redis.Enabled {
		rdb, err := redisClient.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() {
			if err := redisClient.CloseRedisClient(rdb); err != nil {
				logger.Error("Failed to close Redis", "error", err)
			}
		}()
		signalStore = redisRepo.NewSignalStore(rdb, cfg.Session.TTL)
		logger.Info("Redis connected successfully")
	} else {
		signalStore = memory.NewSignalStore(cfg.Session.TTL, 0)
		logger.Warn("Redis disabled, keeping sessions in memory")
	}

	// Init repo
	roiRepo := psqlRepo.NewROIRepository(db)
	contentRepo := psqlRepo.NewContentRepository(db)

	// Content optimizer
	catalog, err := content.LoadCatalogFile(cfg.Content.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load content catalog", "error", err)
	}
	optimizer := content.NewOptimizer(content.Config{
		Epsilon:        cfg.Content.Epsilon,
		MinImpressions: cfg.Content.MinImpressions,
	}, nil)
	for _, v := range catalog {
		if err := optimizer.Register(v); err != nil {
			logger.Fatal("Invalid content variant", "variant_id", v.ID, "error", err)
		}
	}
	tokens, err := content.NewTokenCodec(cfg.Content.TokenKey, conversionTokenTTL)
	if err != nil {
		logger.Fatal("Invalid content token key", "error", err)
	}

	// Init service
	roiService := roi.NewService(roiRepo)
	intentService := intent.NewService(signalStore)
	contentService := content.NewService(optimizer, contentRepo, contentRepo, tokens)

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	restored, err := contentService.Warm(warmCtx)
	warmCancel()
	if err != nil {
		logger.Warn("Failed to restore content stats, starting cold", "error", err)
	} else {
		logger.Info("Content stats restored", "variants", restored, "catalog_size", len(catalog))
	}

	// Init handler
	roiHandler := rest.NewROIHandler(roiService)
	sessionHandler := rest.NewSessionHandler(intentService, contentService)
	contentHandler := rest.NewContentHandler(contentService)
	contentAdminHandler := rest.NewContentAdminHandler(contentService)
	authHandler := rest.NewAuthHandler(cfg.Admin.Username, cfg.Admin.PasswordHash)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(middleware.RequestMetrics())
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupROIRoutes(api, roiHandler, authRequired, adminOnly)
	router.SetupSessionRoutes(api, sessionHandler)
	router.SetupContentRoutes(api, contentHandler)
	router.SetupAdminRoutes(api, authHandler, contentAdminHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
