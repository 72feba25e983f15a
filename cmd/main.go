package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"estate-service/internal/handler"
	mid "estate-service/internal/middleware"
	"estate-service/internal/service"
	"estate-service/internal/storage"
	"estate-service/pkg/config"
	"estate-service/pkg/database"
	"estate-service/pkg/firebaseauth"
	"estate-service/pkg/logger"
	"estate-service/pkg/validate"
	"estate-service/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting estate-service",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", cfg.Metrics.Prefix))

	// Initialize database (includes migrations)
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed")

	// Identity provider client, constructed once and injected. No ambient
	// global auth state.
	verifier, err := firebaseauth.NewVerifier(context.Background(), cfg.Firebase)
	if err != nil {
		log.Fatal("Failed to initialize identity verifier", zap.Error(err))
	}
	log.Info("Firebase identity verifier initialized",
		zap.String("project_id", cfg.Firebase.ProjectID))

	// Wire the store, services, and handlers
	store := storage.NewStore(database.GetDB())
	userService := service.NewUserService(store, log)
	propertyService := service.NewPropertyService(store, userService, log)

	authHandler := handler.NewAuthHandler(userService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	adminHandler := handler.NewAdminHandler(propertyService, userService)

	// Initialize Echo instance
	e := echo.New()
	e.Validator = validate.New()

	// Middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware)

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authRequired := mid.Auth(verifier)

	// Auth routes
	authAPI := e.Group("/api/auth", authRequired)
	authAPI.GET("/user", authHandler.GetCurrentUser)
	authAPI.POST("/update-role", authHandler.UpdateRole)

	// Public property routes
	e.GET("/api/properties", propertyHandler.List)
	e.GET("/api/properties/search", propertyHandler.Search)
	e.GET("/api/properties/:id", propertyHandler.GetByID)

	// Owner property routes
	e.POST("/api/properties", propertyHandler.Create, authRequired)
	e.GET("/api/properties/owner/:ownerId", propertyHandler.OwnerProperties, authRequired)
	e.PATCH("/api/properties/:id/status", propertyHandler.UpdateListingStatus, authRequired)
	e.POST("/api/properties/:id/review", propertyHandler.MarkForReview, authRequired)

	// Admin routes
	adminAPI := e.Group("/api/admin", authRequired)
	adminAPI.GET("/properties", adminHandler.AllProperties)
	adminAPI.GET("/properties/pending", adminHandler.PendingProperties)
	adminAPI.GET("/properties/review", adminHandler.PropertiesNeedingReview)
	adminAPI.PATCH("/properties/:id/status", adminHandler.UpdatePropertyStatus)
	adminAPI.GET("/brokers/pending", adminHandler.PendingBrokers)
	adminAPI.PATCH("/brokers/:id/verify", adminHandler.VerifyBroker)
	adminAPI.GET("/duplicates", adminHandler.DuplicateListings)
	adminAPI.PATCH("/duplicates/:id/review", adminHandler.ReviewDuplicate)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
