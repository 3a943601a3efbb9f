package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/credipyme/risk-api/internal/services"
)

// AssessmentHandler handles risk scoring operations
type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler with service injection
func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// AssessCompany runs a fresh risk assessment (Analyst only)
func (h *AssessmentHandler) AssessCompany(c *gin.Context) {
	if !analystRequired(c) {
		return
	}

	assessment, err := h.assessmentService.AssessCompany(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Company assessed successfully",
		"assessment": assessment,
		"timestamp":  time.Now(),
	})
}

// GetLatestAssessment returns the most recent stored assessment
func (h *AssessmentHandler) GetLatestAssessment(c *gin.Context) {
	assessment, err := h.assessmentService.GetLatestAssessment(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

// GetAssessmentHistory returns all stored assessments, newest first
func (h *AssessmentHandler) GetAssessmentHistory(c *gin.Context) {
	assessments, err := h.assessmentService.GetAssessmentHistory(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"assessments": assessments,
		"count":       len(assessments),
	})
}

// GetIntegratedAssessment blends every available signal source
func (h *AssessmentHandler) GetIntegratedAssessment(c *gin.Context) {
	result, err := h.assessmentService.IntegratedAssessment(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"integrated_assessment": result,
		"timestamp":             time.Now(),
	})
}

// analystRequired aborts with 403 unless the caller holds the analyst
// or admin role.
func analystRequired(c *gin.Context) bool {
	role, exists := c.Get("user_role")
	if !exists || (role != "analyst" && role != "admin") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Analyst access required"})
		return false
	}
	return true
}
