package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "docreview"})
}

// Readiness handles GET /readyz. Only the job index database gates
// readiness; the extraction backend being down degrades fetches but the
// service can still serve sessions and exports.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "unavailable",
			"components": gin.H{"job_index": "down"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"components": gin.H{"job_index": "ok"},
	})
}
