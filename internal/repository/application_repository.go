package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/credipyme/risk-api/internal/models"
	"github.com/google/uuid"
)

const applicationColumns = `id, company_id, requested_amount, term_months, purpose,
	   status, assessment_id, submitted_by, created_at, updated_at`

// applicationRepository implements ApplicationRepository
type applicationRepository struct {
	db dbExecutor
}

// NewApplicationRepository creates a new credit application repository
func NewApplicationRepository(db dbExecutor) ApplicationRepository {
	return &applicationRepository{db: db}
}

func scanApplication(row interface{ Scan(...interface{}) error }, a *models.CreditApplication) error {
	return row.Scan(
		&a.ID, &a.CompanyID, &a.RequestedAmount, &a.TermMonths, &a.Purpose,
		&a.Status, &a.AssessmentID, &a.SubmittedBy, &a.CreatedAt, &a.UpdatedAt,
	)
}

// GetByID retrieves an application by ID
func (r *applicationRepository) GetByID(id uuid.UUID) (*models.CreditApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM credit_applications WHERE id = $1`

	application := &models.CreditApplication{}
	err := scanApplication(r.db.QueryRow(query, id), application)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("credit application not found")
		}
		return nil, fmt.Errorf("failed to get credit application: %w", err)
	}

	return application, nil
}

// ListByCompany retrieves applications for a company, newest first
func (r *applicationRepository) ListByCompany(companyID uuid.UUID) ([]models.CreditApplication, error) {
	query := `SELECT ` + applicationColumns + `
		FROM credit_applications
		WHERE company_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var applications []models.CreditApplication
	for rows.Next() {
		var application models.CreditApplication
		if err := scanApplication(rows, &application); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, application)
	}

	return applications, nil
}

// ListByStatus retrieves applications in a given status, oldest first so
// the review queue is FIFO
func (r *applicationRepository) ListByStatus(status models.ApplicationStatus, limit int) ([]models.CreditApplication, error) {
	query := `SELECT ` + applicationColumns + `
		FROM credit_applications
		WHERE status = $1
		ORDER BY created_at ASC`

	args := []interface{}{string(status)}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications by status: %w", err)
	}
	defer rows.Close()

	var applications []models.CreditApplication
	for rows.Next() {
		var application models.CreditApplication
		if err := scanApplication(rows, &application); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, application)
	}

	return applications, nil
}

// Create stores a new application
func (r *applicationRepository) Create(application *models.CreditApplication) error {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	if application.Status == "" {
		application.Status = string(models.ApplicationPending)
	}

	now := time.Now()
	application.CreatedAt = now
	application.UpdatedAt = now

	query := `
		INSERT INTO credit_applications (
			id, company_id, requested_amount, term_months, purpose,
			status, assessment_id, submitted_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := r.db.Exec(query,
		application.ID, application.CompanyID, application.RequestedAmount,
		application.TermMonths, application.Purpose, application.Status,
		application.AssessmentID, application.SubmittedBy,
		application.CreatedAt, application.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create credit application: %w", err)
	}

	return nil
}

// UpdateStatus transitions an application, optionally attaching the
// assessment that drove the decision
func (r *applicationRepository) UpdateStatus(id uuid.UUID, status models.ApplicationStatus, assessmentID *uuid.UUID) error {
	query := `
		UPDATE credit_applications
		SET status = $2, assessment_id = COALESCE($3, assessment_id), updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, string(status), assessmentID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("credit application not found")
	}

	return nil
}
