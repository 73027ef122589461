package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Cup-Trail/cup-trail-sub000/config"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/controller"
	"github.com/Cup-Trail/cup-trail-sub000/internal/middleware"
)

type Router struct {
	shopController     *controller.ShopController
	reviewController   *controller.ReviewController
	categoryController *controller.CategoryController
	placeController    *controller.PlaceController
	uploadController   *controller.UploadController
	reportController   *controller.ReportController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	shopController *controller.ShopController,
	reviewController *controller.ReviewController,
	categoryController *controller.CategoryController,
	placeController *controller.PlaceController,
	uploadController *controller.UploadController,
	reportController *controller.ReportController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		shopController:     shopController,
		reviewController:   reviewController,
		categoryController: categoryController,
		placeController:    placeController,
		uploadController:   uploadController,
		reportController:   reportController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Cup Trail API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		shops := v1.Group("/shops")
		{
			shops.GET("", r.shopController.ListShops)
			shops.GET("/:id", r.shopController.GetShopByID)
			shops.GET("/:id/drinks", r.reviewController.GetShopDrinks)
			shops.POST("/resolve", r.shopController.ResolveShop)
			shops.POST("/:id/reviews",
				r.authMiddleware.OptionalAuthenticate(),
				r.reviewController.SubmitReview,
			)
			shops.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.shopController.ArchiveShop,
			)
		}

		shopDrinks := v1.Group("/shop-drinks")
		{
			shopDrinks.GET("/:id/reviews", r.reviewController.GetReviews)
			shopDrinks.POST("/:id/recompute", r.reviewController.RecomputeRating)
			shopDrinks.PUT("/:id/categories", r.categoryController.AssignCategories)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/suggest", r.categoryController.SuggestCategories)
		}

		places := v1.Group("/places")
		{
			places.GET("/:place_id", r.placeController.GetPlaceDetails)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.OptionalAuthenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		reports := v1.Group("/reports")
		reports.Use(r.authMiddleware.Authenticate())
		{
			reports.GET("/ratings", r.reportController.DownloadRatingsReport)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
