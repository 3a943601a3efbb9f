package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/credipyme/risk-api/internal/auth"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/services"
)

// ApplicationHandler handles credit application operations
type ApplicationHandler struct {
	applicationService services.ApplicationService
}

// NewApplicationHandler creates a new application handler with service injection
func NewApplicationHandler(applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// SubmitApplication registers a new credit application for a company
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	userID, exists := c.Get(auth.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	var form repository.ApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application format: " + err.Error()})
		return
	}

	application, err := h.applicationService.Submit(c.Param("id"), userUUID.String(), &form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// DecideApplication scores the applicant and records the outcome (Analyst only)
func (h *ApplicationHandler) DecideApplication(c *gin.Context) {
	if !analystRequired(c) {
		return
	}

	application, err := h.applicationService.Decide(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application decided",
		"application": application,
	})
}

// GetApplication returns an application by ID
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	application, err := h.applicationService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": application})
}

// ListCompanyApplications returns a company's applications
func (h *ApplicationHandler) ListCompanyApplications(c *gin.Context) {
	applications, err := h.applicationService.ListByCompany(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"count":        len(applications),
	})
}

// ListPendingApplications returns the review queue (Analyst only)
func (h *ApplicationHandler) ListPendingApplications(c *gin.Context) {
	if !analystRequired(c) {
		return
	}

	limit := 50
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 && parsed <= 200 {
		limit = parsed
	}

	applications, err := h.applicationService.ListPending(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"count":        len(applications),
	})
}
