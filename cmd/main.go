package main

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"raffle/internal/config"
	"raffle/internal/handlers"
	"raffle/internal/i18n"
	"raffle/internal/metrics"
	"raffle/internal/services"
)

func main() {
	// 1. Load configuration (.env, optional TOML file, environment)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize logging
	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			logger.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	defer logger.Init("raffle", cfg.Verbose, false, logOut).Close()

	// 3. Initialize the message catalogue and the Raffle Service
	translator := i18n.NewTranslator(cfg.Locale)
	raffleService := services.NewRaffleService(
		services.WithTranslator(translator),
		services.WithSessionTTL(cfg.SessionTTL),
	)

	// 4. Initialize the HTTP Handler
	httpHandler := handlers.NewHTTPHandler(raffleService, translator)

	// 5. Set up the Gin router
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())

	// 6. Register public routes (before middleware)
	httpHandler.RegisterPublicRoutes(r)

	// 7. Group routes that require tenant identification and apply middleware
	tenantRoutes := r.Group("/")
	tenantRoutes.Use(httpHandler.TenantMiddleware())
	httpHandler.RegisterTenantRoutes(tenantRoutes)

	// 8. Start the background janitor to clean up inactive sessions
	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			removed := raffleService.CleanUpInactiveSessions()
			logger.Infof("Performed cleanup of inactive sessions (%d removed).", removed)
		}
	}()

	// 9. Run the server
	logger.Infof("Server starting on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
