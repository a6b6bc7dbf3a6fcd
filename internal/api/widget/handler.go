package widget

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loopkit/loopchat/internal/domain"
	"github.com/loopkit/loopchat/internal/service"
	"go.uber.org/zap"
)

// Handler handles the public widget API
type Handler struct {
	chatService  *service.ChatService
	adminService *service.AdminService
	logger       *zap.Logger
}

// NewHandler creates a new widget handler
func NewHandler(chatService *service.ChatService, adminService *service.AdminService, logger *zap.Logger) *Handler {
	return &Handler{
		chatService:  chatService,
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers widget routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/config/:agent_id", h.GetConfig)
	r.POST("/chat", h.Chat)
}

// GetConfig returns the public widget configuration for an agent
func (h *Handler) GetConfig(c *gin.Context) {
	agentID := c.Param("agent_id")

	config, err := h.adminService.GetWidgetConfig(agentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load widget config"})
		return
	}

	c.JSON(http.StatusOK, config)
}

// Chat generates a streamed reply. The upstream SSE body is relayed to the
// caller verbatim, one read at a time, with no whole-reply buffering.
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	originHost := service.OriginHostname(c.GetHeader("Origin"), c.GetHeader("Referer"))

	reply, err := h.chatService.Respond(c.Request.Context(), &req, originHost)
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer reply.Stream.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	if reply.SessionID != "" {
		c.Header("X-Session-Id", reply.SessionID)
	}
	c.Status(http.StatusOK)

	h.relay(c, reply.Stream)
}

// relay forwards the upstream stream chunk by chunk, flushing after each
// write. A caller disconnect cancels the request context, which aborts the
// upstream read; a mid-stream transport error terminates the stream with no
// recovery attempted.
func (h *Handler) relay(c *gin.Context, stream io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if _, werr := c.Writer.Write(buf[:n]); werr != nil {
				h.logger.Debug("client write failed, terminating relay", zap.Error(werr))
				return
			}
			c.Writer.Flush()
		}
		if err != nil {
			if err != io.EOF {
				h.logger.Warn("upstream stream terminated", zap.Error(err))
			}
			return
		}
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "origin not allowed"})
	case errors.Is(err, domain.ErrUpstreamRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "the assistant is receiving too many requests, please retry shortly"})
	case errors.Is(err, domain.ErrQuotaExhausted):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "the assistant's usage credits are exhausted"})
	case errors.Is(err, domain.ErrConfigMissing):
		h.logger.Error("server misconfiguration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "the assistant is not configured"})
	default:
		h.logger.Error("chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate a reply"})
	}
}
