package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"slotwise/config"
	"slotwise/database"
	bookingRepo "slotwise/database/repository/booking"
	eventRepo "slotwise/database/repository/event"
	scheduleRepo "slotwise/database/repository/schedule"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/availability"
	"slotwise/services/booking"
	"slotwise/services/calendar"
	"slotwise/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	events := eventRepo.NewMongoEventTypeRepo()
	schedules := scheduleRepo.NewMongoScheduleRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	for _, ensure := range []func() error{events.EnsureIndexes, schedules.EnsureIndexes, bookings.EnsureIndexes} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	sourceAdapter := &calendar.SourceAdapter{
		Providers: calendar.ProvidersFromConfig(config.AppConfig.CalendarSources),
		Timeout:   time.Duration(config.AppConfig.CalendarTimeoutSec) * time.Second,
	}

	engine := &availability.Engine{
		Events:             events,
		Schedules:          schedules,
		Bookings:           bookings,
		Calendar:           sourceAdapter,
		GranularityMinutes: config.AppConfig.SlotGranularityMin,
		MaxRangeDays:       config.AppConfig.MaxRangeDays,
	}

	bookingService := &booking.DefaultBookingService{
		Engine:      engine,
		Events:      events,
		Schedules:   schedules,
		Bookings:    bookings,
		Locker:      booking.NewRedisHostLocker(utils.GetLockClient()),
		CacheClient: utils.GetCacheClient(),
		CacheTTL:    time.Duration(config.AppConfig.AvailabilityCacheTTLSec) * time.Second,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Events:   handlers.NewEventTypeHandler(events, logger),
		Schedule: handlers.NewScheduleHandler(schedules, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
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
