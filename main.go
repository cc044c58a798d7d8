package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"club-ticketing/internal/config"
	"club-ticketing/internal/handlers"
	"club-ticketing/internal/kafka"
	"club-ticketing/internal/logger"
	"club-ticketing/internal/middleware"
	"club-ticketing/internal/services"
	"club-ticketing/internal/storage"
)

// Global logger instance
var log *logger.Logger

func main() {
	log = logger.NewLogger()
	defer log.Close()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Club ticketing service starting up...")

	// Load configuration
	cfg := config.Load()
	log.Info("CONFIG", "Configuration loaded successfully")

	log.LogProcess("DATABASE", "Initializing MySQL database...")
	store, err := storage.NewMySQLStore(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize MySQL: "+err.Error())
	}
	defer store.Close()
	log.LogDatabase("INIT", "mysql", "MySQL storage initialized successfully")

	// Initialize Kafka producer for ticket lifecycle events
	log.LogProcess("KAFKA", "Initializing Kafka producer...")
	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.MockMode, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
	}
	defer kafkaProducer.Close()
	log.LogKafka("INIT", "producer", "Kafka producer initialized successfully")

	// Initialize services
	eventService := services.NewEventService(store, log)
	ticketService := services.NewTicketService(store, kafkaProducer, log)
	log.LogProcess("SERVICE", "Event and ticket services initialized")

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	log.LogProcess("HANDLER", "All handlers initialized")

	// Setup router
	router := setupRouter(eventHandler, ticketHandler, store)
	log.LogProcess("ROUTER", "HTTP router configured")

	// Create server
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on "+cfg.Server.Port)
		log.Info("STARTUP", "Club ticketing service is ready to accept requests")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "Club ticketing service shutdown completed successfully")
}

func setupRouter(eventHandler *handlers.EventHandler, ticketHandler *handlers.TicketHandler, store storage.Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.EnhancedLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(log))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Sports Club backend API")
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := store.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   "club-ticketing",
			"version":   "1.0.0",
		})
	})

	// Event routes
	events := router.Group("/events")
	{
		events.POST("", eventHandler.CreateEvent)
		events.GET("", eventHandler.ListEvents)
		events.GET("/:id", eventHandler.GetEvent)
	}

	// Ticket routes
	tickets := router.Group("/ticket")
	{
		tickets.POST("/create", ticketHandler.CreateTicket)
		tickets.POST("/validate", ticketHandler.ValidateTicket)
		tickets.POST("/update_scaned", ticketHandler.UpdateScaned)
	}

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
