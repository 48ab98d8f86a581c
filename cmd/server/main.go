package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/dashboard/backend/internal/application/billing"
	identityapp "github.com/dashboard/backend/internal/application/identity"
	"github.com/dashboard/backend/internal/infrastructure/auth"
	"github.com/dashboard/backend/internal/infrastructure/cache"
	"github.com/dashboard/backend/internal/infrastructure/config"
	"github.com/dashboard/backend/internal/infrastructure/logger"
	"github.com/dashboard/backend/internal/infrastructure/persistence"
	"github.com/dashboard/backend/internal/interfaces/http/handler"
	"github.com/dashboard/backend/internal/interfaces/http/middleware"
	"github.com/dashboard/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting dashboard backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormZapLogger(log, logger.GormLevel(cfg.Log.Level))

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

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	revenueRepo := persistence.NewGormRevenueRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)

	// Listing cache and its Redis invalidation channel. When disabled,
	// reads recompute from the store and writes publish nothing.
	var (
		invalidator  cache.ListingInvalidator = cache.NoopListingInvalidator{}
		summaryCache *cache.CustomerSummaryCache
	)
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		pingErr := redisClient.Ping(pingCtx).Err()
		pingCancel()
		if pingErr != nil {
			log.Warn("Redis unavailable, listing cache disabled", zap.Error(pingErr))
			_ = redisClient.Close()
		} else {
			redisInvalidator := cache.NewRedisListingInvalidatorWithClient(redisClient,
				cache.WithInvalidatorChannel(cfg.Cache.InvalidationChannel),
				cache.WithInvalidatorLogger(log),
			)
			invalidator = redisInvalidator

			summaryCache = cache.NewCustomerSummaryCache(
				cache.WithSummaryTTL(cfg.Cache.TTL),
				cache.WithSummaryLogger(log),
			)
			defer summaryCache.Close()

			subCtx, subCancel := context.WithCancel(context.Background())
			defer subCancel()
			go func() {
				if err := redisInvalidator.Subscribe(subCtx, func(msg cache.ListingUpdateMessage) {
					summaryCache.InvalidateOwner(msg.OwnerID)
				}); err != nil {
					log.Warn("Listing invalidation subscription ended", zap.Error(err))
				}
			}()
			defer func() {
				if err := redisInvalidator.Close(); err != nil {
					log.Error("Error closing invalidator", zap.Error(err))
				}
			}()
			log.Info("Listing cache enabled",
				zap.String("channel", cfg.Cache.InvalidationChannel),
				zap.Duration("ttl", cfg.Cache.TTL),
			)
		}
	}

	// DashboardService accepts a nil cache; a typed-nil pointer behind
	// the interface would not read as nil, so assign conditionally.
	var dashboardCache billingapp.SummaryCache
	if summaryCache != nil {
		dashboardCache = summaryCache
	}

	// Initialize application services
	profileService := identityapp.NewProfileService(profileRepo, log)
	queryService := billingapp.NewQueryService(customerRepo, invoiceRepo, revenueRepo, log)
	dashboardService := billingapp.NewDashboardService(customerRepo, invoiceRepo, dashboardCache, log)
	customerService := billingapp.NewCustomerService(customerRepo, invalidator, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo, invalidator, log)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize handlers
	customerHandler := handler.NewCustomerHandler(queryService, dashboardService, customerService)
	invoiceHandler := handler.NewInvoiceHandler(queryService, invoiceService)
	dashboardHandler := handler.NewDashboardHandler(queryService, dashboardService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// CORS, then JWT authentication with lazy profile provisioning.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Provisioner = profileService
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Setup API routes
	r := router.NewRouter(engine)
	r.Register(customerHandler).
		Register(invoiceHandler).
		Register(dashboardHandler)
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

	log.Info("Server exited gracefully")
}
