package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/acctmarket/backend/internal/application/catalog"
	orderapp "github.com/acctmarket/backend/internal/application/order"
	paymentapp "github.com/acctmarket/backend/internal/application/payment"
	"github.com/acctmarket/backend/internal/infrastructure/cache"
	"github.com/acctmarket/backend/internal/infrastructure/config"
	"github.com/acctmarket/backend/internal/infrastructure/gateway/paystack"
	"github.com/acctmarket/backend/internal/infrastructure/logger"
	"github.com/acctmarket/backend/internal/infrastructure/persistence"
	"github.com/acctmarket/backend/internal/interfaces/http/handler"
	"github.com/acctmarket/backend/internal/interfaces/http/middleware"
	"github.com/acctmarket/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
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
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormCartOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reviewRepo := persistence.NewGormProductReviewRepository(db.DB)
	wishlistRepo := persistence.NewGormWishListRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Optional redis-backed product cache; the storefront works
	// without it, reads just go straight to the database
	var productCache catalogapp.ProductCache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisProductCache(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.ProductTTL)
		if err != nil {
			log.Warn("Product cache unavailable, continuing without it", zap.Error(err))
		} else {
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Error("Error closing product cache", zap.Error(err))
				}
			}()
			productCache = redisCache
			log.Info("Product cache enabled",
				zap.String("addr", cfg.Redis.Addr()),
				zap.Duration("ttl", cfg.Cache.ProductTTL),
			)
		}
	}

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo, productCache, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	wishlistService := catalogapp.NewWishlistService(wishlistRepo, productRepo)
	orderService := orderapp.NewOrderService(orderRepo, productRepo)
	paymentService := paymentapp.NewPaymentService(paymentRepo, orderRepo, uow, log)

	// Register payment gateways. Paystack is the only gateway today;
	// the registry keeps the verifier gateway-agnostic.
	if cfg.Paystack.SecretKey != "" {
		paystackAdapter, err := paystack.NewAdapter(cfg.Paystack, log)
		if err != nil {
			log.Fatal("Failed to initialize Paystack gateway", zap.Error(err))
		}
		paymentService.RegisterGateway(paystackAdapter)
		log.Info("Paystack gateway registered")
	} else {
		log.Warn("Paystack secret key not configured, payment verification is disabled")
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, reviewService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	orderHandler := handler.NewOrderHandler(orderService)
	paymentHandler := handler.NewPaymentHandler(paymentService, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Storefront catalog (slug-addressed, public reads)
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.GET("", productHandler.Browse)
	productRoutes.GET("/search", productHandler.Search)
	productRoutes.GET("/:slug", productHandler.GetBySlug)
	productRoutes.GET("/:slug/related", productHandler.Related)
	productRoutes.GET("/:slug/reviews", productHandler.ListReviews)

	categoryRoutes := router.NewDomainGroup("categories", "/categories")
	categoryRoutes.GET("", categoryHandler.List)
	categoryRoutes.GET("/:slug", categoryHandler.GetBySlug)

	// Reviews and wishlist (authenticated shopper actions)
	reviewRoutes := router.NewDomainGroup("reviews", "/reviews")
	reviewRoutes.POST("", reviewHandler.Create)

	wishlistRoutes := router.NewDomainGroup("wishlist", "/wishlist")
	wishlistRoutes.GET("", wishlistHandler.List)
	wishlistRoutes.POST("", wishlistHandler.Add)
	wishlistRoutes.DELETE("/:product_id", wishlistHandler.Remove)

	// Orders
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Checkout)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.GET("/:id/payment", paymentHandler.GetByOrder)
	orderRoutes.POST("/:id/ship", orderHandler.Ship)
	orderRoutes.POST("/:id/deliver", orderHandler.Deliver)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)

	// Payments. The webhook endpoint is called by Paystack directly
	// and gets its own tighter rate limit.
	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.POST("", paymentHandler.Create)
	paymentRoutes.GET("/:reference", paymentHandler.GetByReference)
	paymentRoutes.GET("/:reference/verify", paymentHandler.Verify)
	webhookLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	paymentRoutes.POST("/webhook/paystack", middleware.WebhookRateLimit(webhookLimiter), paymentHandler.PaystackWebhook)

	// Catalog management endpoints are ID-addressed and live under
	// their own prefix so they do not collide with slug routes.
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.POST("/products", productHandler.Create)
	adminRoutes.PUT("/products/:id/prices", productHandler.UpdatePrices)
	adminRoutes.POST("/products/:id/approve", productHandler.Approve)
	adminRoutes.POST("/products/:id/disable", productHandler.Disable)
	adminRoutes.POST("/categories", categoryHandler.Create)
	adminRoutes.DELETE("/categories/:slug", categoryHandler.Delete)

	r.Register(productRoutes).
		Register(categoryRoutes).
		Register(reviewRoutes).
		Register(wishlistRoutes).
		Register(orderRoutes).
		Register(paymentRoutes).
		Register(adminRoutes)

	// Setup routes
	r.Setup()

	// Simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
