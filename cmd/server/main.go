package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/minilytics/backend/internal/application/analytics"
	registryapp "github.com/minilytics/backend/internal/application/registry"
	trackingapp "github.com/minilytics/backend/internal/application/tracking"
	"github.com/minilytics/backend/internal/infrastructure/auth"
	"github.com/minilytics/backend/internal/infrastructure/config"
	"github.com/minilytics/backend/internal/infrastructure/logger"
	"github.com/minilytics/backend/internal/infrastructure/persistence"
	"github.com/minilytics/backend/internal/infrastructure/telemetry"
	"github.com/minilytics/backend/internal/interfaces/http/handler"
	"github.com/minilytics/backend/internal/interfaces/http/middleware"
	"github.com/minilytics/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Minilytics backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize OpenTelemetry tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database tracing
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Token blacklist backed by Redis; revoked tokens stay revoked
	// across instances.
	tokenBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, token revocation disabled", zap.Error(err))
		tokenBlacklist = nil
	} else {
		defer func() {
			if err := tokenBlacklist.Close(); err != nil {
				log.Error("Error closing token blacklist", zap.Error(err))
			}
		}()
	}

	// Initialize repositories
	siteRepo := persistence.NewGormSiteRepository(db.DB)
	pageViewRepo := persistence.NewGormPageViewRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	siteService := registryapp.NewSiteService(siteRepo)
	ingestService := trackingapp.NewIngestService(pageViewRepo, log)
	analyticsService := analyticsapp.NewService(pageViewRepo)

	// Initialize HTTP handlers
	siteHandler := handler.NewSiteHandler(siteService)
	trackHandler := handler.NewTrackHandler(ingestService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	trackerAssetsHandler := handler.NewTrackerAssetsHandler()
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, tracing, security headers, CORS, body limit, rate limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())
	// The dashboard CORS policy must not swallow preflights for the
	// public surface; the track handler answers those itself with
	// wildcard headers.
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		SkipPaths:        []string{"/api/track", "/tracker.js", "/tracker.esm.js"},
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Public endpoints, outside API versioning and authentication.
	engine.GET("/health", systemHandler.Health)
	engine.GET("/tracker.js", trackerAssetsHandler.ServeScript)
	engine.GET("/tracker.esm.js", trackerAssetsHandler.ServeModule)
	engine.POST("/api/track", trackHandler.Track)
	engine.OPTIONS("/api/track", trackHandler.Preflight)

	// Authenticated dashboard API.
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklistOrNil(tokenBlacklist),
		Logger:         log,
	}))

	siteRoutes := router.NewDomainGroup("sites", "/sites")
	siteRoutes.GET("", siteHandler.List)
	siteRoutes.POST("", siteHandler.Create)
	siteRoutes.DELETE("/:id", siteHandler.Delete)

	analyticsRoutes := router.NewDomainGroup("analytics", "/analytics")
	analyticsRoutes.GET("/summary", analyticsHandler.Summary)
	analyticsRoutes.GET("/events", analyticsHandler.Events)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(siteRoutes).
		Register(analyticsRoutes).
		Register(systemRoutes)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Flush buffered tracking writes before the process exits.
	ingestService.Close()

	log.Info("Server exited gracefully")
}

// blacklistOrNil avoids handing the middleware a typed nil interface.
func blacklistOrNil(b *auth.RedisTokenBlacklist) auth.TokenBlacklist {
	if b == nil {
		return nil
	}
	return b
}
