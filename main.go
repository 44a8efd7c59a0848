package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pulse-api/config"
	"pulse-api/database"
	"pulse-api/jobs"
	"pulse-api/middleware"
	"pulse-api/routes"
	"pulse-api/services"
	"pulse-api/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db, logger); err != nil {
		logger.Warn("Failed to seed database", zap.Error(err))
	}

	// Redis is optional: without it the trending endpoint reads straight
	// from the database.
	var rdb *redis.Client
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, trending cache disabled", zap.Error(err))
	} else {
		rdb = client
	}
	cancel()

	mailer := services.NewMailer(cfg)
	trendingCache := services.NewTrendingCache(rdb)

	recountJob := jobs.NewHashtagRecountJob(db, logger, 5*time.Minute)
	recountJob.Start()
	defer recountJob.Stop()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.RegisterValidations()

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger(logger))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, logger, mailer, trendingCache)

	// Start server
	logger.Info("Starting Pulse API server", zap.String("port", cfg.Port))

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
