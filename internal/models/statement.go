package models

import (
	"time"

	"github.com/google/uuid"
)

// FinancialStatement represents one fiscal-year statement filed for a
// company. Totals are stored denormalized so derived ratios never need
// a second query.
type FinancialStatement struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	CompanyID             uuid.UUID `json:"company_id" db:"company_id"`
	FiscalYear            int       `json:"fiscal_year" db:"fiscal_year"`
	CurrentAssets         float64   `json:"current_assets" db:"current_assets"`
	NonCurrentAssets      float64   `json:"non_current_assets" db:"non_current_assets"`
	CurrentLiabilities    float64   `json:"current_liabilities" db:"current_liabilities"`
	NonCurrentLiabilities float64   `json:"non_current_liabilities" db:"non_current_liabilities"`
	Equity                float64   `json:"equity" db:"equity"`
	TotalRevenue          float64   `json:"total_revenue" db:"total_revenue"`
	NetIncome             float64   `json:"net_income" db:"net_income"`
	OperatingCashFlow     float64   `json:"operating_cash_flow" db:"operating_cash_flow"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

// TotalAssets sums the current and non-current asset positions.
func (s *FinancialStatement) TotalAssets() float64 {
	return s.CurrentAssets + s.NonCurrentAssets
}

// TotalLiabilities sums the current and non-current liabilities.
func (s *FinancialStatement) TotalLiabilities() float64 {
	return s.CurrentLiabilities + s.NonCurrentLiabilities
}
