package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	billingapp "github.com/rental/backend/internal/application/billing"
	identityapp "github.com/rental/backend/internal/application/identity"
	notificationapp "github.com/rental/backend/internal/application/notification"
	propertyapp "github.com/rental/backend/internal/application/property"
	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/infrastructure/auth"
	"github.com/rental/backend/internal/infrastructure/cache"
	"github.com/rental/backend/internal/infrastructure/config"
	"github.com/rental/backend/internal/infrastructure/logger"
	"github.com/rental/backend/internal/infrastructure/payment"
	"github.com/rental/backend/internal/infrastructure/persistence"
	"github.com/rental/backend/internal/infrastructure/scheduler"
	"github.com/rental/backend/internal/interfaces/http/handler"
	"github.com/rental/backend/internal/interfaces/http/middleware"
	"github.com/rental/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting rental backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with GORM logging backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	residentRepo := persistence.NewGormRoomResidentRepository(db.DB)
	priceRepo := persistence.NewGormRentalPriceRepository(db.DB)
	readingRepo := persistence.NewGormMeterReadingRepository(db.DB)
	totalRepo := persistence.NewGormUtilityTotalRepository(db.DB)
	draftRepo := persistence.NewGormDraftBillRepository(db.DB)
	itemRepo := persistence.NewGormServiceItemRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Webhook idempotency store: Redis when available, in-process otherwise
	var idempotency cache.IdempotencyStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		idempotency = cache.NewRedisIdempotencyStore(redisClient)
		log.Info("Redis connected")
	} else {
		idempotency = cache.NewMemoryIdempotencyStore()
		log.Warn("Redis disabled, using in-process webhook idempotency store")
	}

	// Payment gateway is optional: without credentials, cash confirmation
	// still works and payment links return an error.
	var gateway billing.PaymentGateway
	if adapter, err := payment.NewPayOSAdapter(cfg.PayOS); err != nil {
		log.Warn("Payment gateway not configured", zap.Error(err))
	} else {
		gateway = adapter
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	roomService := propertyapp.NewRoomService(roomRepo, residentRepo, priceRepo, log)
	occupancyService := propertyapp.NewOccupancyService(roomRepo, residentRepo, notificationRepo, log)
	priceService := propertyapp.NewRentalPriceService(roomRepo, priceRepo, log)
	readingService := billingapp.NewMeterReadingService(roomRepo, readingRepo, totalRepo, draftRepo, settingRepo, log)
	totalService := billingapp.NewUtilityTotalService(totalRepo, log)
	draftService := billingapp.NewDraftService(roomRepo, residentRepo, draftRepo, itemRepo, notificationRepo, log)
	billService := billingapp.NewBillService(roomRepo, residentRepo, priceRepo, draftRepo, billRepo, settingRepo, notificationRepo, log)
	paymentService := billingapp.NewPaymentService(billRepo, paymentRepo, gateway, idempotency, log)
	itemService := billingapp.NewServiceItemService(itemRepo, log)
	settingService := billingapp.NewSettingService(settingRepo, log)
	notificationService := notificationapp.NewService(notificationRepo, residentRepo, log)

	// Background billing jobs
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	if cfg.Scheduler.Enabled {
		billingScheduler := scheduler.NewBillingScheduler(cfg.Scheduler, billService, billRepo, log)
		if err := billingScheduler.Start(schedulerCtx); err != nil {
			log.Fatal("Failed to start billing scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := billingScheduler.Stop(stopCtx); err != nil {
				log.Warn("Billing scheduler stopped uncleanly", zap.Error(err))
			}
		}()
		log.Info("Billing scheduler started",
			zap.Int("generation_day", cfg.Scheduler.BillGenerationAt))
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
	)

	engine.GET("/health", healthHandler(db))

	router.Setup(engine, jwtService, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Room:         handler.NewRoomHandler(roomService),
		RentalPrice:  handler.NewRentalPriceHandler(priceService),
		Occupancy:    handler.NewOccupancyHandler(occupancyService),
		MeterReading: handler.NewMeterReadingHandler(readingService),
		UtilityTotal: handler.NewUtilityTotalHandler(totalService),
		Draft:        handler.NewDraftHandler(draftService),
		Bill:         handler.NewBillHandler(billService),
		Payment:      handler.NewPaymentHandler(paymentService),
		ServiceItem:  handler.NewServiceItemHandler(itemService),
		Setting:      handler.NewSettingHandler(settingService),
		Notification: handler.NewNotificationHandler(notificationService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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
