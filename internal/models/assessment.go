package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RiskAssessment represents a persisted scoring result for a company.
type RiskAssessment struct {
	ID                    uuid.UUID       `json:"id" db:"id"`
	CompanyID             uuid.UUID       `json:"company_id" db:"company_id"`
	FinancialScore        float64         `json:"financial_score" db:"financial_score"`
	SocialScore           float64         `json:"social_media_score" db:"social_media_score"`
	ReputationScore       float64         `json:"business_reputation_score" db:"business_reputation_score"`
	OverallScore          float64         `json:"overall_score" db:"overall_score"`
	RiskLevel             string          `json:"risk_level" db:"risk_level"`
	RecommendedLimit      float64         `json:"recommended_credit_limit" db:"recommended_credit_limit"`
	RecommendedRate       float64         `json:"recommended_interest_rate" db:"recommended_interest_rate"`
	RecommendedTermMonths int             `json:"recommended_term_months" db:"recommended_term_months"`
	DecisionFactors       DecisionFactors `json:"decision_factors" db:"decision_factors"`
	ConfidenceLevel       float64         `json:"confidence_level" db:"confidence_level"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
}

// DecisionFactors stores the named factors behind an assessment as JSON
type DecisionFactors map[string]string

// Value implements driver.Valuer for DecisionFactors
func (d DecisionFactors) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for DecisionFactors
func (d *DecisionFactors) Scan(value interface{}) error {
	if value == nil {
		*d = DecisionFactors{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into DecisionFactors", value)
	}

	return json.Unmarshal(bytes, d)
}

// SimulationRecord represents a persisted scenario simulation run.
type SimulationRecord struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CompanyID uuid.UUID       `json:"company_id" db:"company_id"`
	Family    string          `json:"scenario_family" db:"scenario_family"`
	Payload   json.RawMessage `json:"payload" db:"payload"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
