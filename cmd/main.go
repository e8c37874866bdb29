package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linklytics/internal/config"
	"linklytics/internal/handlers"
	"linklytics/internal/logging"
	"linklytics/internal/session"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logging.Log.Info("No .env file found, using environment variables")
	}

	cfg, err := config.New()
	if err != nil {
		logging.Log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	logging.SetLogLevel(cfg.App.LogLevel)

	if cfg.App.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.App.SentryDSN,
			Environment: cfg.App.Env,
		})
		if err != nil {
			logging.Log.Fatalf("❌ Failed to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	store := session.NewStore(cfg.SessionTTL())

	// Setup graceful shutdown
	setupGracefulShutdown()

	// Setup HTTP server
	setupServer(cfg, store)
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logging.Log.Info("🔄 Received shutdown signal, gracefully shutting down...")

		// Sessions are memory-only; nothing to persist beyond pending events.
		sentry.Flush(2 * time.Second)

		logging.Log.Info("✅ Shutdown complete")
		os.Exit(0)
	}()
}

func setupServer(cfg *config.Config, store *session.Store) {
	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.Use(recoverWithSentry())

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(store, cfg.MaxUploadBytes())
	chartsHandler := handlers.NewChartsHandler(store)
	apiHandler := handlers.NewAPIHandler(store)
	adminHandler := handlers.NewAdminHandler(store, cfg)
	docsHandler := handlers.NewDocsHandler()

	// Health check
	r.GET("/health", apiHandler.HealthCheck)

	// Upload and dashboard web interface
	r.GET("/", dashboardHandler.ServeIndex)
	r.POST("/upload", dashboardHandler.HandleUpload)
	r.GET("/dashboard", dashboardHandler.ServeDashboard)
	r.POST("/filters", dashboardHandler.HandleFilters)
	r.POST("/boosts/toggle", dashboardHandler.HandleBoostToggle)
	r.GET("/export/boosted_config.csv", dashboardHandler.HandleExportBoosts)

	// Chart pages the dashboard embeds
	charts := r.Group("/charts")
	{
		charts.GET("/trends", chartsHandler.ServeTrends)
		charts.GET("/performance", chartsHandler.ServePerformance)
		charts.GET("/weekday", chartsHandler.ServeWeekday)
	}

	// Serve Markdown documentation as HTML
	r.GET("/doc/:doc", docsHandler.ServeMarkdownAsHTML)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/summary", apiHandler.GetSummary)
		api.GET("/trends", apiHandler.GetTrends)
		api.GET("/session", apiHandler.GetSession)
	}

	// Admin routes (password protected)
	admin := r.Group("/admin", adminHandler.AdminAuth())
	{
		admin.GET("/", adminHandler.ServeAdminDashboard)
	}

	logging.Log.Infof("🚀 Server starting on port %d", cfg.App.Port)
	if err := r.Run(cfg.Addr()); err != nil {
		logging.Log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// recoverWithSentry reports handler panics to Sentry when a DSN is
// configured and turns them into a 500 instead of killing the process.
func recoverWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(c.Request)
				hub.RecoverWithContext(c.Request.Context(), err)
				logging.Log.Errorf("❌ Panic serving %s: %v", c.Request.URL.Path, err)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
