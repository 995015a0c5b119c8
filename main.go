package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos-service/cache"
	"pos-service/controllers"
	"pos-service/database"
	"pos-service/logger"
	"pos-service/middleware"
	aws_pkg "pos-service/pkg/aws"
	"pos-service/repository"
	"pos-service/routes"
	"pos-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	log, err := logger.New(os.Getenv("ENV"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal("Config load failed", zap.Error(err))
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Database ---
	db, err := database.ConnectPostgres(database.Config{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPassword,
		Name:            cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSLMode,
		TimeZone:        cfg.PostgresTimeZone,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}, log)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	if cfg.SeedData {
		if err := database.Seed(context.Background(), db, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
	}

	// --- AWS (SNS events, CloudWatch metrics); both optional ---
	var snsClient aws_pkg.SNSPublisher
	var metricsClient *aws_pkg.MetricsClient
	if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err != nil {
		log.Warn("AWS config unavailable, events and metrics disabled", zap.Error(err))
	} else {
		if cfg.BillingSNSTopicARN != "" {
			snsClient = aws_pkg.NewSNSClient(awsCfg)
		}
		metricsClient = aws_pkg.NewMetricsClient(awsCfg)
	}

	// --- Redis menu cache (non-fatal) ---
	var menuCache services.MenuCache
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, menu cache disabled", zap.Error(err))
		} else {
			menuCache = cache.NewRedisMenuCache(redisClient, cfg.MenuCacheTTL, log)
			log.Info("Connected to Redis")
		}
	}

	// --- Dependency injection ---
	store := repository.NewGormStore(db)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	tableService := services.NewTableService(store, log)
	menuService := services.NewMenuService(store, menuCache, metricsClient, log)
	orderService := services.NewOrderService(store, services.OrderConfig{StrictStatus: cfg.OrderStatusStrict},
		snsClient, cfg.BillingSNSTopicARN, metricsClient, log)
	billingService := services.NewBillingService(store, services.BillingConfig{
		TaxPercentage: cfg.TaxPercentage,
		OverdueAfter:  cfg.BillOverdueAfter,
	}, snsClient, cfg.BillingSNSTopicARN, metricsClient, log)
	userService := services.NewUserService(store, tokens, log)

	if err := userService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Bootstrap admin failed", zap.Error(err))
	}

	// --- HTTP router ---
	if err := controllers.RegisterValidators(); err != nil {
		log.Fatal("Validator registration failed", zap.Error(err))
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.MetricsMiddleware(metricsClient, "pos-service"))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, 50))
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, middleware.AuthMiddleware(services.NewActorResolver(tokens, store)), routes.Controllers{
		Tables: controllers.NewTableController(tableService, orderService),
		Menu:   controllers.NewMenuController(menuService),
		Orders: controllers.NewOrderController(orderService),
		Bills:  controllers.NewBillController(billingService),
		Users:  controllers.NewUserController(userService),
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("POS Service started",
			zap.String("port", cfg.Port),
			zap.Bool("strict_order_status", cfg.OrderStatusStrict),
			zap.String("tax_percentage", cfg.TaxPercentage.StringFixed(2)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		log.Error("Database close error", zap.Error(err))
	}
	log.Info("POS Service stopped gracefully")
}
