package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles liveness and readiness probes
type HealthController struct {
	apiBase string
	started time.Time
}

// NewHealthController creates a new health controller
func NewHealthController(apiBase string) *HealthController {
	return &HealthController{
		apiBase: apiBase,
		started: time.Now(),
	}
}

// RegisterRoutes registers the health routes with Gin
func (h *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health/live", h.HealthLive)
	router.GET("/health/ready", h.HealthReady)
}

func (h *HealthController) HealthLive(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HealthReady reports readiness. The auth API is external and is not probed.
func (h *HealthController) HealthReady(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"api_base":  h.apiBase,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
