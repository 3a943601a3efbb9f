package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/credipyme/risk-api/internal/models"
	"github.com/google/uuid"
)

const assessmentColumns = `id, company_id, financial_score, social_media_score,
	   business_reputation_score, overall_score, risk_level,
	   recommended_credit_limit, recommended_interest_rate,
	   recommended_term_months, decision_factors, confidence_level, created_at`

// assessmentRepository implements AssessmentRepository
type assessmentRepository struct {
	db dbExecutor
}

// NewAssessmentRepository creates a new risk assessment repository
func NewAssessmentRepository(db dbExecutor) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func scanAssessment(row interface{ Scan(...interface{}) error }, a *models.RiskAssessment) error {
	return row.Scan(
		&a.ID, &a.CompanyID, &a.FinancialScore, &a.SocialScore,
		&a.ReputationScore, &a.OverallScore, &a.RiskLevel,
		&a.RecommendedLimit, &a.RecommendedRate, &a.RecommendedTermMonths,
		&a.DecisionFactors, &a.ConfidenceLevel, &a.CreatedAt,
	)
}

// GetByID retrieves an assessment by ID
func (r *assessmentRepository) GetByID(id uuid.UUID) (*models.RiskAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM risk_assessments WHERE id = $1`

	assessment := &models.RiskAssessment{}
	err := scanAssessment(r.db.QueryRow(query, id), assessment)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("risk assessment not found")
		}
		return nil, fmt.Errorf("failed to get risk assessment: %w", err)
	}

	return assessment, nil
}

// GetLatestByCompany retrieves the most recent assessment for a company
func (r *assessmentRepository) GetLatestByCompany(companyID uuid.UUID) (*models.RiskAssessment, error) {
	query := `SELECT ` + assessmentColumns + `
		FROM risk_assessments
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	assessment := &models.RiskAssessment{}
	err := scanAssessment(r.db.QueryRow(query, companyID), assessment)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no risk assessment for company")
		}
		return nil, fmt.Errorf("failed to get latest assessment: %w", err)
	}

	return assessment, nil
}

// ListByCompany retrieves the assessment history for a company, newest
// first
func (r *assessmentRepository) ListByCompany(companyID uuid.UUID) ([]models.RiskAssessment, error) {
	query := `SELECT ` + assessmentColumns + `
		FROM risk_assessments
		WHERE company_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var assessments []models.RiskAssessment
	for rows.Next() {
		var assessment models.RiskAssessment
		if err := scanAssessment(rows, &assessment); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, assessment)
	}

	return assessments, nil
}

// Create stores a new assessment
func (r *assessmentRepository) Create(assessment *models.RiskAssessment) error {
	if assessment.ID == uuid.Nil {
		assessment.ID = uuid.New()
	}
	assessment.CreatedAt = time.Now()

	query := `
		INSERT INTO risk_assessments (
			id, company_id, financial_score, social_media_score,
			business_reputation_score, overall_score, risk_level,
			recommended_credit_limit, recommended_interest_rate,
			recommended_term_months, decision_factors, confidence_level, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.Exec(query,
		assessment.ID, assessment.CompanyID, assessment.FinancialScore,
		assessment.SocialScore, assessment.ReputationScore, assessment.OverallScore,
		assessment.RiskLevel, assessment.RecommendedLimit, assessment.RecommendedRate,
		assessment.RecommendedTermMonths, assessment.DecisionFactors,
		assessment.ConfidenceLevel, assessment.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create risk assessment: %w", err)
	}

	return nil
}

// DeleteByCompany removes all assessments for a company
func (r *assessmentRepository) DeleteByCompany(companyID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM risk_assessments WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete assessments: %w", err)
	}
	return nil
}

// StoreSimulation stores a scenario simulation result
func (r *assessmentRepository) StoreSimulation(record *models.SimulationRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()

	query := `
		INSERT INTO simulation_results (
			id, company_id, scenario_family, payload, created_at
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query,
		record.ID, record.CompanyID, record.Family, []byte(record.Payload), record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to store simulation: %w", err)
	}

	return nil
}

// ListSimulationsByCompany retrieves stored simulation runs, newest first
func (r *assessmentRepository) ListSimulationsByCompany(companyID uuid.UUID) ([]models.SimulationRecord, error) {
	query := `
		SELECT id, company_id, scenario_family, payload, created_at
		FROM simulation_results
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulations: %w", err)
	}
	defer rows.Close()

	var records []models.SimulationRecord
	for rows.Next() {
		var record models.SimulationRecord
		var payload []byte
		if err := rows.Scan(&record.ID, &record.CompanyID, &record.Family, &payload, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan simulation: %w", err)
		}
		record.Payload = payload
		records = append(records, record)
	}

	return records, nil
}
