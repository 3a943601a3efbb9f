package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/credipyme/risk-api/internal/models"
	"github.com/google/uuid"
)

const companyColumns = `id, ruc, name, sector, foundation_date, employee_count,
	   website, description, social_links, address, legal_status,
	   compliance_status, digital_score, verified, created_at, updated_at`

// companyRepository implements CompanyRepository
type companyRepository struct {
	db dbExecutor
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db dbExecutor) CompanyRepository {
	return &companyRepository{db: db}
}

func scanCompany(row interface{ Scan(...interface{}) error }, company *models.Company) error {
	return row.Scan(
		&company.ID, &company.RUC, &company.Name, &company.Sector,
		&company.FoundationDate, &company.EmployeeCount, &company.Website,
		&company.Description, &company.SocialLinks, &company.Address,
		&company.LegalStatus, &company.ComplianceStatus, &company.DigitalScore,
		&company.Verified, &company.CreatedAt, &company.UpdatedAt,
	)
}

// GetByID retrieves a company by ID
func (r *companyRepository) GetByID(id uuid.UUID) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company := &models.Company{}
	err := scanCompany(r.db.QueryRow(query, id), company)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company not found")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return company, nil
}

// GetByRUC retrieves a company by its tax registry number
func (r *companyRepository) GetByRUC(ruc string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE ruc = $1`

	company := &models.Company{}
	err := scanCompany(r.db.QueryRow(query, ruc), company)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company with RUC %s not found", ruc)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return company, nil
}

// Create creates a new company
func (r *companyRepository) Create(company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `
		INSERT INTO companies (
			id, ruc, name, sector, foundation_date, employee_count,
			website, description, social_links, address, legal_status,
			compliance_status, digital_score, verified, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
	`

	_, err := r.db.Exec(query,
		company.ID, company.RUC, company.Name, company.Sector,
		company.FoundationDate, company.EmployeeCount, company.Website,
		company.Description, company.SocialLinks, company.Address,
		company.LegalStatus, company.ComplianceStatus, company.DigitalScore,
		company.Verified, company.CreatedAt, company.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// Update updates an existing company
func (r *companyRepository) Update(company *models.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies SET
			name = $2, sector = $3, foundation_date = $4, employee_count = $5,
			website = $6, description = $7, social_links = $8, address = $9,
			legal_status = $10, compliance_status = $11, digital_score = $12,
			verified = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		company.ID, company.Name, company.Sector, company.FoundationDate,
		company.EmployeeCount, company.Website, company.Description,
		company.SocialLinks, company.Address, company.LegalStatus,
		company.ComplianceStatus, company.DigitalScore, company.Verified,
		company.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("company not found")
	}

	return nil
}

// Delete deletes a company
func (r *companyRepository) Delete(id uuid.UUID) error {
	query := `DELETE FROM companies WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("company not found")
	}

	return nil
}

// GetAll retrieves companies with filters
func (r *companyRepository) GetAll(filters CompanyFilters) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	// Apply filters
	if len(filters.Sectors) > 0 {
		placeholders := make([]string, len(filters.Sectors))
		for i, sector := range filters.Sectors {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, sector)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("sector IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(filters.LegalStatus) > 0 {
		placeholders := make([]string, len(filters.LegalStatus))
		for i, status := range filters.LegalStatus {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, status)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("legal_status IN (%s)", strings.Join(placeholders, ",")))
	}

	if filters.HasWebsite != nil {
		if *filters.HasWebsite {
			whereClauses = append(whereClauses, "website IS NOT NULL AND website != ''")
		} else {
			whereClauses = append(whereClauses, "(website IS NULL OR website = '')")
		}
	}

	if filters.IsVerified != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("verified = $%d", argIndex))
		args = append(args, *filters.IsVerified)
		argIndex++
	}

	if filters.MinEmployees != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("employee_count >= $%d", argIndex))
		args = append(args, *filters.MinEmployees)
		argIndex++
	}

	if filters.MaxEmployees != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("employee_count <= $%d", argIndex))
		args = append(args, *filters.MaxEmployees)
		argIndex++
	}

	if filters.FoundedFrom != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("foundation_date >= $%d", argIndex))
		args = append(args, *filters.FoundedFrom)
		argIndex++
	}

	if filters.FoundedTo != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("foundation_date <= $%d", argIndex))
		args = append(args, *filters.FoundedTo)
		argIndex++
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY updated_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var company models.Company
		if err := scanCompany(rows, &company); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	return companies, nil
}

// GetUnassessed retrieves companies without a sufficiently recent risk
// assessment
func (r *companyRepository) GetUnassessed(criteria UnassessedCriteria) ([]models.Company, error) {
	query := `
		SELECT c.id, c.ruc, c.name, c.sector, c.foundation_date, c.employee_count,
			   c.website, c.description, c.social_links, c.address, c.legal_status,
			   c.compliance_status, c.digital_score, c.verified, c.created_at, c.updated_at
		FROM companies c
	`

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if criteria.ExcludeAssessed {
		join := " LEFT JOIN risk_assessments ra ON c.id = ra.company_id"
		if criteria.AssessedSince != nil {
			join += fmt.Sprintf(" AND ra.created_at >= $%d", argIndex)
			args = append(args, *criteria.AssessedSince)
			argIndex++
		}
		query += join
		whereClauses = append(whereClauses, "ra.company_id IS NULL")
	}

	if len(criteria.Sectors) > 0 {
		placeholders := make([]string, len(criteria.Sectors))
		for i, sector := range criteria.Sectors {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, sector)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("c.sector IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY c.updated_at DESC"

	if criteria.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, criteria.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query unassessed companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var company models.Company
		if err := scanCompany(rows, &company); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	return companies, nil
}

// GetAllIDs retrieves all company IDs
func (r *companyRepository) GetAllIDs() ([]uuid.UUID, error) {
	query := `SELECT id FROM companies ORDER BY updated_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query company IDs: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
