// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/genun/genun-backend/internal/config"
	"github.com/genun/genun-backend/internal/handlers"
	"github.com/genun/genun-backend/internal/middleware"
	"github.com/genun/genun-backend/internal/services"
	"github.com/genun/genun-backend/internal/store"
	"github.com/genun/genun-backend/internal/utils"
)

func Initialize(stores *store.Stores, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	authService := services.NewAuthService(stores, notificationService, cfg)
	productService := services.NewProductService(stores)
	categoryService := services.NewCategoryService(stores)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	utils.SetDevMode(cfg.IsDevelopment())

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	// Public lookups are bursty; the global budget stays generous and the
	// sensitive groups below carry their own tighter buckets.
	r.Use(middleware.RateLimit(rate.Every(time.Second), 20))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Public product lookup: the consumer-facing endpoint.
		v1.GET("/products/:productId", productHandler.Authenticate)

		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rate.Every(time.Minute), 5))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/send-verification", authHandler.SendVerification)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/contract-address", middleware.AuthRequired(), authHandler.UpdateContractAddress)
			auth.DELETE("/delete", middleware.AuthRequired(), authHandler.DeleteAccount)
		}

		// Manufacturer-facing routes
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("/products", middleware.RateLimit(rate.Every(time.Minute), 10), productHandler.Create)
			protected.GET("/products", productHandler.List)
			protected.POST("/categories", categoryHandler.Create)
			protected.GET("/categories", categoryHandler.List)
			protected.GET("/categories/products", categoryHandler.ListWithProducts)
			protected.GET("/authentications", productHandler.ListAuthentications)
			protected.GET("/stats", productHandler.GetStats)
		}
	}

	return r
}
