// File: /main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhub-api/config"
	"eventhub-api/controllers"
	"eventhub-api/database"
	"eventhub-api/jobs"
	"eventhub-api/middleware"
	"eventhub-api/routes"
	"eventhub-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone:", err)
	}

	// Set Gin mode based on environment
	gin.SetMode(cfg.GinMode)
	logLevel := logger.Warn
	if gin.Mode() == gin.DebugMode {
		logLevel = logger.Info
	}

	// Initialize database
	db, err := database.Initialize(cfg.DBDriver, cfg.DatabaseURL, logLevel)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed a staff account on a fresh database
	if err := database.SeedData(db, cfg.SeedStaffUsername, cfg.SeedStaffEmail, cfg.SeedStaffPassword); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Notification delivery
	var dispatchers []services.Dispatcher
	if cfg.EmailEnabled() {
		dispatchers = append(dispatchers, services.NewEmailDispatcher(cfg))
	}
	if cfg.BrokerEnabled() {
		broker, err := services.NewBrokerDispatcher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, notifications will not be published: %v", err)
		} else {
			defer broker.Close()
			dispatchers = append(dispatchers, broker)
		}
	}

	outboxService := services.NewOutboxService(db, dispatchers...)
	if outboxService.HasDispatchers() {
		outboxJob := jobs.NewOutboxJob(outboxService, cfg.OutboxInterval)
		outboxJob.Start()
		defer outboxJob.Stop()
	}

	// Create router
	router := gin.New()

	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.ValidateJSON())

	// Setup routes
	routes.SetupRoutes(router, db, routes.Options{
		Config: cfg,
		Clock:  controllers.SystemClock(loc),
		Policy: services.ReminderPolicy{
			WindowDays:       cfg.ReminderWindowDays,
			SameDayThreshold: cfg.ReminderSameDayThreshold,
		},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting EventHub API server on port %s (timezone %s)", cfg.Port, loc)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
