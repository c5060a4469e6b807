package agent

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthline/voice-agent/internal/agent"
	"github.com/healthline/voice-agent/internal/tool"
)

// Handler serves the agent definition the managed voice platform fetches
// when a call starts: name, instructions, greeting and the tool schema.
type Handler struct {
	name     string
	registry *tool.Registry
}

func NewHandler(name string, registry *tool.Registry) *Handler {
	if name == "" {
		name = agent.DefaultName
	}
	return &Handler{name: name, registry: registry}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/agent", h.GetDefinition)
}

func (h *Handler) GetDefinition(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"agent_name":   h.name,
		"instructions": agent.GeneralInstructions,
		"greeting":     agent.SessionGreeting,
		"tools":        h.registry.Definitions(),
	})
}
