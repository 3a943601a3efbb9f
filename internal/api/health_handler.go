package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/credipyme/risk-api/internal/database"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetHealth returns the service health including database connectivity
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := "healthy"
	dbStatus := "up"

	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		dbStatus = "down"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	stats := h.db.GetStats()
	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"pool": gin.H{
			"open":   stats.OpenConnections,
			"in_use": stats.InUse,
			"idle":   stats.Idle,
		},
		"timestamp": time.Now(),
	})
}
