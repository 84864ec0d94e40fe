// File: slotify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"slotify/calendar"
	"slotify/config"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/models"
	"slotify/routes"
	"slotify/services/booking"
	"slotify/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	// Scheduling configuration. Everything is explicit; nothing is hard-coded.
	hours, err := models.ParseOpeningHours(cfg.OpeningHours)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid OPENING_HOURS: %v", err)
	}
	if cfg.SlotDurationMinutes <= 0 {
		logger.Sugar().Fatalf("main: SLOT_DURATION_MINUTES must be positive, got %d", cfg.SlotDurationMinutes)
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		logger.Sugar().Fatalf("main: unknown DEFAULT_TIMEZONE %q: %v", cfg.DefaultTimezone, err)
	}
	spec := models.SlotSpec{Duration: time.Duration(cfg.SlotDurationMinutes) * time.Minute}

	utils.InitRedis()

	// Calendar gateway: one client, created at startup and reused.
	gateway, err := calendar.NewGoogleGateway(context.Background(), calendar.GoogleConfig{
		CalendarID:      cfg.CalendarID,
		CredentialsFile: cfg.GoogleCredentialsFile,
		CredentialsJSON: []byte(cfg.GoogleServiceAccount),
		Timeout:         time.Duration(cfg.GatewayTimeoutSecs) * time.Second,
	}, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar gateway: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	bookingService := &booking.DefaultBookingService{
		Gateway:       gateway,
		Hours:         hours,
		Spec:          spec,
		DefaultTZ:     cfg.DefaultTimezone,
		LookaheadDays: cfg.LookaheadDays,
		DefaultCount:  cfg.NextFreeCount,
		Idempotency:   booking.NewRedisIdempotencyStore(utils.GetIdempotencyClient(), 24*time.Hour),
		Now:           time.Now,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	routes.RegisterRoutes(router, bookingHandler)

	utils.StartHealthMonitor(utils.GetIdempotencyClient(), gateway.Ping)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
