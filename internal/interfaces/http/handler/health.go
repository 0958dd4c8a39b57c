package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles the liveness endpoint
type HealthHandler struct {
	appName   string
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{
		appName:   appName,
		startTime: time.Now(),
	}
}

// Health reports process liveness
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"name":   h.appName,
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}
