package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loopkit/loopchat/internal/api"
	"github.com/loopkit/loopchat/internal/config"
	"github.com/loopkit/loopchat/internal/repository"
	"github.com/loopkit/loopchat/internal/service"
	"github.com/loopkit/loopchat/internal/upstream"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Upstream.APIKey == "" {
		logger.Warn("Upstream API key not configured, chat requests will fail")
	}

	// Initialize database
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	agentRepo := repository.NewAgentRepository(db)
	personaRepo := repository.NewPersonaRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	widgetRepo := repository.NewWidgetRepository(db)

	// Initialize upstream client
	upstreamClient := upstream.NewClient(cfg.Upstream)

	// Initialize services
	leadCapture := service.NewLeadCapture(leadRepo, sessionRepo, logger)

	ingestService := service.NewIngestService(knowledgeRepo, cfg)

	adminService := service.NewAdminService(
		agentRepo,
		personaRepo,
		widgetRepo,
		leadRepo,
		sessionRepo,
		ingestService,
	)

	chatService := service.NewChatService(
		cfg,
		agentRepo,
		personaRepo,
		knowledgeRepo,
		widgetRepo,
		sessionRepo,
		leadCapture,
		upstreamClient,
		logger,
	)

	// Setup router
	router := api.SetupRouter(chatService, adminService, logger, api.RouterConfig{
		APIKey:          cfg.Admin.APIKey,
		RateLimit:       cfg.RateLimit.Enabled,
		RequestsPerHour: cfg.RateLimit.RequestsPerHour,
	})

	// Create HTTP server. No write timeout: chat responses are long-lived
	// streams bounded by the caller, not the server.
	srv := &http.Server{
		Addr:        cfg.Address(),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting Loopchat server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Drain pending lead-capture jobs
	leadCapture.Close()

	logger.Info("Server exited")
}
