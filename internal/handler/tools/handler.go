package tools

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthline/voice-agent/internal/telephony"
	"github.com/healthline/voice-agent/internal/tool"
)

type Handler struct {
	registry *tool.Registry
}

func NewHandler(registry *tool.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tools", h.ListTools)
	r.POST("/tools/:name", h.InvokeTool)
}

// invokeRequest is what the conversation driver posts per tool call. Session
// is only present for calls made inside an active room.
type invokeRequest struct {
	Arguments map[string]string  `json:"arguments"`
	Session   *telephony.Session `json:"session"`
}

func (h *Handler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "tools": h.registry.Definitions()})
}

// InvokeTool always answers 200 for a known tool: failures travel inside the
// result string, because the driver can only act on text.
func (h *Handler) InvokeTool(c *gin.Context) {
	var req invokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	result, err := h.registry.Invoke(c.Request.Context(), c.Param("name"), req.Session, tool.Args(req.Arguments))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "result": result})
}
