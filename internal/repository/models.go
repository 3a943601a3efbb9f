package repository

import (
	"time"

	"github.com/credipyme/risk-api/internal/models"
)

// CompanyForm represents the form data for creating or updating a company
type CompanyForm struct {
	RUC            string             `json:"ruc" binding:"required"`
	Name           string             `json:"name" binding:"required"`
	Sector         string             `json:"sector"`
	FoundationDate *time.Time         `json:"foundation_date"`
	EmployeeCount  int                `json:"employee_count"`
	Website        string             `json:"website"`
	Description    string             `json:"description"`
	SocialLinks    models.SocialLinks `json:"social_links"`
	Address        models.Address     `json:"address"`
}

// StatementForm represents a filed statement submission
type StatementForm struct {
	FiscalYear            int     `json:"fiscal_year" binding:"required"`
	CurrentAssets         float64 `json:"current_assets"`
	NonCurrentAssets      float64 `json:"non_current_assets"`
	CurrentLiabilities    float64 `json:"current_liabilities"`
	NonCurrentLiabilities float64 `json:"non_current_liabilities"`
	Equity                float64 `json:"equity"`
	TotalRevenue          float64 `json:"total_revenue"`
	NetIncome             float64 `json:"net_income"`
	OperatingCashFlow     float64 `json:"operating_cash_flow"`
}

// ApplicationForm represents a new credit application
type ApplicationForm struct {
	RequestedAmount float64 `json:"requested_amount" binding:"required,gt=0"`
	TermMonths      int     `json:"term_months" binding:"required,gt=0"`
	Purpose         string  `json:"purpose"`
}

// LoginResponse represents the response from login
type LoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// RegisterRequest represents the request to register a new user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}
