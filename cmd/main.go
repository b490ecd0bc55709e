package main

import (
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mikekiroz/maikitto-saas/internal/handler"
	"github.com/mikekiroz/maikitto-saas/internal/message"
	mid "github.com/mikekiroz/maikitto-saas/internal/middleware"
	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/pkg/config"
	"github.com/mikekiroz/maikitto-saas/pkg/database"
	"github.com/mikekiroz/maikitto-saas/pkg/jwtutil"
	"github.com/mikekiroz/maikitto-saas/pkg/logger"
	"github.com/mikekiroz/maikitto-saas/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file. Absence is fine: production environments set the
	// variables directly and the config falls back to defaults.
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	appConfig, err := config.Load("backoffice")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting backoffice",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port),
		zap.String("timezone", appConfig.Server.Timezone))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if _, err := database.InitDB(&appConfig.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Run migrations
	err = database.MigrateModels(
		&model.User{},
		&model.Tenant{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.Coupon{},
		&model.CouponProductLink{},
		&model.Rating{},
		&model.MessageTemplate{},
		&model.MessageOverride{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database models", zap.Error(err))
	}

	// Seed global bot message templates on first boot
	if err := message.SeedTemplates(database.GetDB()); err != nil {
		log.Fatal("Failed to seed message templates", zap.Error(err))
	}

	// Sales time bucketing follows the configured server timezone
	handler.Initialize(appConfig.Location())

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public auth routes
	authAPI := e.Group("/api/auth")
	authAPI.POST("/register", handler.Register)
	authAPI.POST("/login", handler.Login)
	authAPI.PUT("/password", handler.ChangePassword, mid.AuthMiddleware)

	// Restaurant routes - onboarding works before a tenant exists, so
	// GET/POST only need a valid session
	restaurantAPI := e.Group("/api/restaurant", mid.AuthMiddleware)
	restaurantAPI.GET("", handler.GetRestaurant)
	restaurantAPI.POST("", handler.CreateRestaurant)
	restaurantAPI.PUT("", handler.UpdateRestaurant, mid.RequireTenant)

	// Category API routes - Apply auth middleware to validate JWT and extract tenant ID
	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware, mid.RequireTenant)
	categoryAPI.GET("", handler.ListCategories)
	categoryAPI.POST("", handler.CreateCategory)
	categoryAPI.PUT("/:id", handler.UpdateCategory)
	categoryAPI.DELETE("/:id", handler.DeleteCategory)

	// Product API routes - Apply auth middleware to validate JWT and extract tenant ID
	productAPI := e.Group("/api/products", mid.AuthMiddleware, mid.RequireTenant)
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)

	// Order API routes
	orderAPI := e.Group("/api/orders", mid.AuthMiddleware, mid.RequireTenant)
	orderAPI.GET("", handler.ListOrders)
	orderAPI.GET("/:id", handler.GetOrder)
	orderAPI.POST("", handler.IngestOrder)
	orderAPI.PUT("/:id/status", handler.UpdateOrderStatus)

	// Coupon API routes
	couponAPI := e.Group("/api/coupons", mid.AuthMiddleware, mid.RequireTenant)
	couponAPI.GET("", handler.ListCoupons)
	couponAPI.GET("/:id", handler.GetCoupon)
	couponAPI.POST("", handler.CreateCoupon)
	couponAPI.PUT("/:id", handler.UpdateCoupon)
	couponAPI.DELETE("/:id", handler.DeleteCoupon)
	couponAPI.POST("/evaluate", handler.EvaluateCoupon)

	// Rating API routes
	ratingAPI := e.Group("/api/ratings", mid.AuthMiddleware, mid.RequireTenant)
	ratingAPI.GET("", handler.ListRatings)
	ratingAPI.POST("", handler.IngestRating)

	// Bot message API routes
	messageAPI := e.Group("/api/messages", mid.AuthMiddleware, mid.RequireTenant)
	messageAPI.GET("", handler.ListMessages)
	messageAPI.GET("/:type", handler.GetMessage)
	messageAPI.PUT("/:type", handler.SaveMessage)

	// Reporting routes
	reportAPI := e.Group("/api", mid.AuthMiddleware, mid.RequireTenant)
	reportAPI.GET("/sales", handler.GetSales)
	reportAPI.GET("/dashboard", handler.GetDashboard)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
