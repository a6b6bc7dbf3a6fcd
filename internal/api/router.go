package api

import (
	"github.com/gin-gonic/gin"
	"github.com/loopkit/loopchat/internal/api/admin"
	"github.com/loopkit/loopchat/internal/api/middleware"
	"github.com/loopkit/loopchat/internal/api/widget"
	"github.com/loopkit/loopchat/internal/service"
	"go.uber.org/zap"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey          string
	RateLimit       bool
	RequestsPerHour int
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	adminService *service.AdminService,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Widget API (public, guarded per-agent by the origin allow-list)
	widgetHandler := widget.NewHandler(chatService, adminService, logger)
	widgetGroup := r.Group("/api/widget")
	widgetGroup.Use(middleware.RateLimit(cfg.RateLimit, cfg.RequestsPerHour))
	widgetHandler.RegisterRoutes(widgetGroup)

	// Admin API (requires API key)
	adminHandler := admin.NewHandler(adminService)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
