package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthline/voice-agent/internal/repository"
)

type Handler struct {
	directory repository.DirectoryRepository
}

func NewHandler(directory repository.DirectoryRepository) *Handler {
	return &Handler{directory: directory}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// ReadinessCheck verifies the doctor directory is reachable, since every
// call flow starts with a lookup against it.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if _, err := h.directory.Load(context.Background()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"reason": "doctor directory unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
