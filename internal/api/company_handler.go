package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/services"
)

// CompanyHandler handles company registry operations
type CompanyHandler struct {
	companyService services.CompanyService
}

// NewCompanyHandler creates a new company handler with service injection
func NewCompanyHandler(companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ListCompanies returns companies matching the query filters
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	filters := repository.CompanyFilters{
		Limit:  50,
		Offset: 0,
	}

	if sectors := c.Query("sector"); sectors != "" {
		filters.Sectors = strings.Split(sectors, ",")
	}
	if verified := c.Query("verified"); verified != "" {
		v := verified == "true"
		filters.IsVerified = &v
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 200 {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset >= 0 {
		filters.Offset = offset
	}

	companies, err := h.companyService.GetAll(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"count":     len(companies),
		"timestamp": time.Now(),
	})
}

// GetCompany returns a company by ID
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// GetCompanyByRUC returns a company by its tax registry number
func (h *CompanyHandler) GetCompanyByRUC(c *gin.Context) {
	company, err := h.companyService.GetByRUC(c.Param("ruc"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// CreateCompany registers a new company
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var form repository.CompanyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company format: " + err.Error()})
		return
	}

	company, err := h.companyService.Create(&form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company registered successfully",
		"company": company,
	})
}

// UpdateCompany modifies an existing company
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var form repository.CompanyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company format: " + err.Error()})
		return
	}

	company, err := h.companyService.Update(c.Param("id"), &form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company updated successfully",
		"company": company,
	})
}

// DeleteCompany removes a company (Admin only)
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	role, exists := c.Get("user_role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	if err := h.companyService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}

// SubmitStatement files a financial statement for a fiscal year
func (h *CompanyHandler) SubmitStatement(c *gin.Context) {
	var form repository.StatementForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid statement format: " + err.Error()})
		return
	}

	statement, err := h.companyService.SubmitStatement(c.Param("id"), &form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Statement filed successfully",
		"statement": statement,
	})
}

// RefreshSocial captures a fresh social-media snapshot for a company
func (h *CompanyHandler) RefreshSocial(c *gin.Context) {
	analysis, err := h.companyService.RefreshSocialSnapshot(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Social snapshot refreshed",
		"analysis": analysis,
	})
}
