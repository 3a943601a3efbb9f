package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/credipyme/risk-api/internal/scenario"
	"github.com/credipyme/risk-api/internal/scoring"
	"github.com/credipyme/risk-api/internal/services"
)

// ScenarioHandler handles what-if simulation operations
type ScenarioHandler struct {
	scenarioService services.ScenarioService
}

// NewScenarioHandler creates a new scenario handler with service injection
func NewScenarioHandler(scenarioService services.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// SimulateChanges re-scores a company under direct feature deltas
func (h *ScenarioHandler) SimulateChanges(c *gin.Context) {
	var changes scoring.ScenarioChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario format: " + err.Error()})
		return
	}

	result, err := h.scenarioService.SimulateChanges(c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scenario_assessment": result,
		"changes_applied":     changes,
		"timestamp":           time.Now(),
	})
}

// SimulateFamily runs one named scenario family
func (h *ScenarioHandler) SimulateFamily(c *gin.Context) {
	result, err := h.scenarioService.SimulateFamily(c.Param("id"), c.Param("family"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"family":    c.Param("family"),
		"result":    result,
		"timestamp": time.Now(),
	})
}

// SimulateAll runs every scenario family and returns the full report
func (h *ScenarioHandler) SimulateAll(c *gin.Context) {
	report, err := h.scenarioService.SimulateAll(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ListFamilies returns the available scenario family names
func (h *ScenarioHandler) ListFamilies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"families": scenario.Families})
}

// ListSimulations returns the persisted simulation runs for a company
func (h *ScenarioHandler) ListSimulations(c *gin.Context) {
	records, err := h.scenarioService.ListStoredSimulations(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"simulations": records,
		"count":       len(records),
	})
}
