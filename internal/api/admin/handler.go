package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loopkit/loopchat/internal/domain"
	"github.com/loopkit/loopchat/internal/service"
)

// Handler handles admin API requests
type Handler struct {
	adminService *service.AdminService
}

// NewHandler creates a new admin handler
func NewHandler(adminService *service.AdminService) *Handler {
	return &Handler{adminService: adminService}
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	agents := r.Group("/agents")
	{
		agents.POST("", h.CreateAgent)
		agents.GET("", h.ListAgents)
		agents.GET("/:id", h.GetAgent)
		agents.PUT("/:id", h.UpdateAgent)
		agents.DELETE("/:id", h.DeleteAgent)
		agents.GET("/:id/widget", h.GetWidgetConfig)
		agents.PUT("/:id/widget", h.UpdateWidgetConfig)
		agents.GET("/:id/leads", h.ListLeads)
	}

	personas := r.Group("/personas")
	{
		personas.POST("", h.CreatePersona)
		personas.GET("", h.ListPersonas)
		personas.GET("/:id", h.GetPersona)
		personas.DELETE("/:id", h.DeletePersona)
	}

	sources := r.Group("/knowledge-sources")
	{
		sources.POST("", h.CreateKnowledgeSource)
		sources.GET("", h.ListKnowledgeSources)
		sources.GET("/:id", h.GetKnowledgeSource)
		sources.PUT("/:id", h.UpdateKnowledgeSource)
		sources.DELETE("/:id", h.DeleteKnowledgeSource)
	}

	r.GET("/stats", h.GetStats)
}

// Agent handlers

func (h *Handler) CreateAgent(c *gin.Context) {
	var req domain.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.adminService.CreateAgent(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, agent)
}

func (h *Handler) ListAgents(c *gin.Context) {
	agents, err := h.adminService.ListAgents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

func (h *Handler) GetAgent(c *gin.Context) {
	agent, err := h.adminService.GetAgent(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if agent == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}

	c.JSON(http.StatusOK, agent)
}

func (h *Handler) UpdateAgent(c *gin.Context) {
	var req domain.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.adminService.UpdateAgent(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, agent)
}

func (h *Handler) DeleteAgent(c *gin.Context) {
	if err := h.adminService.DeleteAgent(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "agent deleted"})
}

// Widget config handlers

func (h *Handler) GetWidgetConfig(c *gin.Context) {
	config, err := h.adminService.GetWidgetConfig(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, config)
}

func (h *Handler) UpdateWidgetConfig(c *gin.Context) {
	var req domain.UpdateWidgetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := h.adminService.UpdateWidgetConfig(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, config)
}

// Lead handlers

func (h *Handler) ListLeads(c *gin.Context) {
	leads, err := h.adminService.ListLeads(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// Persona handlers

func (h *Handler) CreatePersona(c *gin.Context) {
	var req domain.CreatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	persona, err := h.adminService.CreatePersona(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, persona)
}

func (h *Handler) ListPersonas(c *gin.Context) {
	personas, err := h.adminService.ListPersonas()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"personas": personas})
}

func (h *Handler) GetPersona(c *gin.Context) {
	persona, err := h.adminService.GetPersona(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if persona == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "persona not found"})
		return
	}

	c.JSON(http.StatusOK, persona)
}

func (h *Handler) DeletePersona(c *gin.Context) {
	if err := h.adminService.DeletePersona(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "persona deleted"})
}

// Knowledge source handlers

func (h *Handler) CreateKnowledgeSource(c *gin.Context) {
	var req domain.CreateKnowledgeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source, err := h.adminService.CreateKnowledgeSource(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, source)
}

func (h *Handler) ListKnowledgeSources(c *gin.Context) {
	sources, err := h.adminService.ListKnowledgeSources()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (h *Handler) GetKnowledgeSource(c *gin.Context) {
	source, err := h.adminService.GetKnowledgeSource(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if source == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "knowledge source not found"})
		return
	}

	c.JSON(http.StatusOK, source)
}

func (h *Handler) UpdateKnowledgeSource(c *gin.Context) {
	var req domain.UpdateKnowledgeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source, err := h.adminService.UpdateKnowledgeSource(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "knowledge source not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, source)
}

func (h *Handler) DeleteKnowledgeSource(c *gin.Context) {
	if err := h.adminService.DeleteKnowledgeSource(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "knowledge source deleted"})
}

// Stats handler

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
