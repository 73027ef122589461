package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cup-Trail/cup-trail-sub000/config"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/controller"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/service"
	"github.com/Cup-Trail/cup-trail-sub000/internal/db"
	"github.com/Cup-Trail/cup-trail-sub000/internal/middleware"
	"github.com/Cup-Trail/cup-trail-sub000/internal/router"
	"github.com/Cup-Trail/cup-trail-sub000/internal/scheduler"
	"github.com/Cup-Trail/cup-trail-sub000/internal/storage"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/logger"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/places"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Cup Trail API server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Place details cache: Redis when configured, in-process otherwise.
	var placeCache places.Cache = places.NewMemoryCache(cfg.Places.CacheTTL)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory place cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
			placeCache = redis.NewPlaceCache(redis.GetClient(), cfg.Places.CacheTTL)
		}
	}

	var placesClient *places.Client
	if cfg.Places.APIKey != "" {
		placesClient, err = places.NewClient(places.Config{
			APIKey:  cfg.Places.APIKey,
			BaseURL: cfg.Places.BaseURL,
		}, placeCache)
		if err != nil {
			logger.Fatal("Failed to initialize places client", err)
		}
	} else {
		logger.Warn("Places API key not configured, place lookups disabled")
	}

	mediaStorage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Repositories
	shopRepo := repository.NewShopRepository(db.GetDB())
	drinkRepo := repository.NewDrinkRepository(db.GetDB())
	shopDrinkRepo := repository.NewShopDrinkRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())

	// Services
	shopService := service.NewShopService(shopRepo)
	reviewService := service.NewReviewService(reviewRepo, drinkRepo, shopDrinkRepo, shopRepo, mediaStorage)
	categoryService := service.NewCategoryService(categoryRepo, shopDrinkRepo)
	reportService := service.NewReportService(shopRepo, shopDrinkRepo, reviewRepo)

	// Controllers
	shopController := controller.NewShopController(shopService)
	reviewController := controller.NewReviewController(reviewService)
	categoryController := controller.NewCategoryController(categoryService)
	placeController := controller.NewPlaceController(placesClient)
	uploadController := controller.NewUploadController(mediaStorage)
	reportController := controller.NewReportController(reportService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		shopController,
		reviewController,
		categoryController,
		placeController,
		uploadController,
		reportController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Nightly rating sweep repairs aggregates left stale by failed
	// review pipelines.
	if cfg.Sweep.Schedule != "" {
		ratingScheduler := scheduler.NewRatingScheduler(cfg.Sweep.Schedule, reviewService, shopDrinkRepo)
		if err := ratingScheduler.Start(); err != nil {
			logger.Fatal("Failed to start rating scheduler", err)
		}
		defer ratingScheduler.Stop()
	}

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
