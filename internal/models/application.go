package models

import (
	"time"

	"github.com/google/uuid"
)

// CreditApplication represents a credit request under evaluation.
type CreditApplication struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	CompanyID       uuid.UUID  `json:"company_id" db:"company_id"`
	RequestedAmount float64    `json:"requested_amount" db:"requested_amount"`
	TermMonths      int        `json:"term_months" db:"term_months"`
	Purpose         string     `json:"purpose" db:"purpose"`
	Status          string     `json:"status" db:"status"`
	AssessmentID    *uuid.UUID `json:"assessment_id" db:"assessment_id"`
	SubmittedBy     uuid.UUID  `json:"submitted_by" db:"submitted_by"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// ApplicationStatus represents credit application status values
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationScored   ApplicationStatus = "scored"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)
