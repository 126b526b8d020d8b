package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinetix/service-booking/internal/adapter"
	"github.com/cinetix/service-booking/internal/application"
	"github.com/cinetix/service-booking/internal/config"
	"github.com/cinetix/service-booking/internal/database"
	"github.com/cinetix/service-booking/internal/events"
	"github.com/cinetix/service-booking/internal/handler"
	"github.com/cinetix/service-booking/internal/logger"
	"github.com/cinetix/service-booking/internal/middleware"
	"github.com/cinetix/service-booking/internal/repository"
	"github.com/cinetix/service-booking/internal/saga"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting service-booking",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		err := db.AutoMigrate(
			&repository.SeatModel{},
			&repository.TransactionModel{},
			&repository.BookingModel{},
			&repository.ShowtimeModel{},
			&repository.MovieModel{},
			&repository.TheaterModel{},
		)
		if err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", zapLogger); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	defer producer.Close()

	// Initialize payment gateway (mock unless credentials are configured)
	var gateway adapter.PaymentGateway
	if cfg.GatewayConfig.KeyID != "" && cfg.GatewayConfig.KeySecret != "" {
		gateway = adapter.NewRazorpayGateway(
			cfg.GatewayConfig.BaseURL,
			cfg.GatewayConfig.KeyID,
			cfg.GatewayConfig.KeySecret,
			zapLogger,
		)
	} else {
		gateway = adapter.NewMockGateway(zapLogger)
	}

	// Initialize repositories
	seatRepo := repository.NewSeatRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Initialize saga service
	sagaService := saga.NewReservationSagaService(
		seatRepo,
		txnRepo,
		bookingRepo,
		catalogRepo,
		gateway,
		producer,
		cfg.GatewayConfig.Currency,
		cfg.GatewayConfig.Timeout,
		zapLogger,
	)

	// Initialize application services
	seatmapService := application.NewSeatmapService(seatRepo, zapLogger)
	bookingService := application.NewBookingService(sagaService, bookingRepo, zapLogger)

	// Initialize HTTP handlers
	seatmapHandler := handler.NewSeatmapHandler(seatmapService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, "service-booking")
	healthHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	seatmapHandler.RegisterRoutes(apiV1)
	bookingHandler.RegisterRoutes(apiV1)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down service-booking...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("service-booking stopped")
}
