package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nbmtravel/booking-backend/internal/config"
	"github.com/nbmtravel/booking-backend/internal/database"
	"github.com/nbmtravel/booking-backend/internal/handlers"
	"github.com/nbmtravel/booking-backend/internal/services"
	"github.com/nbmtravel/booking-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting NBM Travel Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Apply schema migrations
	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	// Initialize repositories
	destinationRepo := database.NewDestinationRepository(db)
	packageRepo := database.NewPackageRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	contactRepo := database.NewContactRepository(db)
	paymentEventRepo := database.NewPaymentEventRepository(db, logger)

	// Initialize services
	logger.Info("Initializing services...")
	formValidator := validator.NewFormValidator()
	stripeService := services.NewStripeService(&cfg.Stripe, logger)
	if stripeService.IsConfigured() {
		logger.Info("Payment gateway configured")
	} else {
		// Checkout and webhook endpoints respond with an explicit
		// unavailable error until the secret key is provided.
		logger.Warn("STRIPE_SECRET_KEY is not set. Payment features will not work.")
	}

	notificationService := services.NewNotificationService(
		&cfg.Mail,
		services.NewLogSender(logger),
		logger,
	)

	checkoutService := services.NewCheckoutService(
		packageRepo,
		bookingRepo,
		paymentEventRepo,
		stripeService,
		cfg.Server.BaseURL,
		cfg.Stripe.Currency,
		logger,
	)

	webhookService := services.NewWebhookService(
		bookingRepo,
		paymentEventRepo,
		stripeService,
		notificationService,
		logger,
	)

	logger.Info("Services initialized")

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(destinationRepo, packageRepo, logger)
	bookingHandler := handlers.NewBookingHandler(bookingRepo, formValidator, notificationService, logger)
	contactHandler := handlers.NewContactHandler(contactRepo, formValidator, notificationService, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger)
	webhookHandler := handlers.NewWebhookHandler(webhookService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Catalog (public, read-only)
		v1.GET("/destinations", catalogHandler.ListDestinations)
		v1.GET("/destinations/:slug", catalogHandler.GetDestination)
		v1.GET("/packages", catalogHandler.ListPackages)
		v1.GET("/packages/:slug", catalogHandler.GetPackage)

		// Booking lifecycle
		v1.POST("/bookings", bookingHandler.Create)
		v1.GET("/bookings/:id", bookingHandler.GetByID)

		// Contact form
		v1.POST("/contact", contactHandler.Create)

		// Payment
		v1.POST("/checkout", checkoutHandler.Create)
		v1.POST("/webhooks/payment", webhookHandler.Handle)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
