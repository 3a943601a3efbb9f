package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/credipyme/risk-api/internal/models"
	"github.com/google/uuid"
)

const statementColumns = `id, company_id, fiscal_year, current_assets, non_current_assets,
	   current_liabilities, non_current_liabilities, equity, total_revenue,
	   net_income, operating_cash_flow, created_at, updated_at`

// statementRepository implements StatementRepository
type statementRepository struct {
	db dbExecutor
}

// NewStatementRepository creates a new financial statement repository
func NewStatementRepository(db dbExecutor) StatementRepository {
	return &statementRepository{db: db}
}

func scanStatement(row interface{ Scan(...interface{}) error }, s *models.FinancialStatement) error {
	return row.Scan(
		&s.ID, &s.CompanyID, &s.FiscalYear, &s.CurrentAssets, &s.NonCurrentAssets,
		&s.CurrentLiabilities, &s.NonCurrentLiabilities, &s.Equity, &s.TotalRevenue,
		&s.NetIncome, &s.OperatingCashFlow, &s.CreatedAt, &s.UpdatedAt,
	)
}

// GetByID retrieves a statement by ID
func (r *statementRepository) GetByID(id uuid.UUID) (*models.FinancialStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM financial_statements WHERE id = $1`

	statement := &models.FinancialStatement{}
	err := scanStatement(r.db.QueryRow(query, id), statement)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("financial statement not found")
		}
		return nil, fmt.Errorf("failed to get financial statement: %w", err)
	}

	return statement, nil
}

// GetLatestByCompany retrieves the most recent fiscal year statement
func (r *statementRepository) GetLatestByCompany(companyID uuid.UUID) (*models.FinancialStatement, error) {
	query := `SELECT ` + statementColumns + `
		FROM financial_statements
		WHERE company_id = $1
		ORDER BY fiscal_year DESC
		LIMIT 1`

	statement := &models.FinancialStatement{}
	err := scanStatement(r.db.QueryRow(query, companyID), statement)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no financial statements for company")
		}
		return nil, fmt.Errorf("failed to get latest statement: %w", err)
	}

	return statement, nil
}

// GetByCompanyAndYear retrieves the statement for a specific fiscal year
func (r *statementRepository) GetByCompanyAndYear(companyID uuid.UUID, fiscalYear int) (*models.FinancialStatement, error) {
	query := `SELECT ` + statementColumns + `
		FROM financial_statements
		WHERE company_id = $1 AND fiscal_year = $2`

	statement := &models.FinancialStatement{}
	err := scanStatement(r.db.QueryRow(query, companyID, fiscalYear), statement)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no statement for fiscal year %d", fiscalYear)
		}
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}

	return statement, nil
}

// ListByCompany retrieves all statements for a company, newest first
func (r *statementRepository) ListByCompany(companyID uuid.UUID) ([]models.FinancialStatement, error) {
	query := `SELECT ` + statementColumns + `
		FROM financial_statements
		WHERE company_id = $1
		ORDER BY fiscal_year DESC`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var statements []models.FinancialStatement
	for rows.Next() {
		var statement models.FinancialStatement
		if err := scanStatement(rows, &statement); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, statement)
	}

	return statements, nil
}

// Upsert creates or replaces the statement for a company's fiscal year
func (r *statementRepository) Upsert(statement *models.FinancialStatement) error {
	if statement.ID == uuid.Nil {
		statement.ID = uuid.New()
	}

	now := time.Now()
	if statement.CreatedAt.IsZero() {
		statement.CreatedAt = now
	}
	statement.UpdatedAt = now

	query := `
		INSERT INTO financial_statements (
			id, company_id, fiscal_year, current_assets, non_current_assets,
			current_liabilities, non_current_liabilities, equity, total_revenue,
			net_income, operating_cash_flow, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (company_id, fiscal_year) DO UPDATE SET
			current_assets = EXCLUDED.current_assets,
			non_current_assets = EXCLUDED.non_current_assets,
			current_liabilities = EXCLUDED.current_liabilities,
			non_current_liabilities = EXCLUDED.non_current_liabilities,
			equity = EXCLUDED.equity,
			total_revenue = EXCLUDED.total_revenue,
			net_income = EXCLUDED.net_income,
			operating_cash_flow = EXCLUDED.operating_cash_flow,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(query,
		statement.ID, statement.CompanyID, statement.FiscalYear,
		statement.CurrentAssets, statement.NonCurrentAssets,
		statement.CurrentLiabilities, statement.NonCurrentLiabilities,
		statement.Equity, statement.TotalRevenue, statement.NetIncome,
		statement.OperatingCashFlow, statement.CreatedAt, statement.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert financial statement: %w", err)
	}

	return nil
}

// Delete deletes a statement
func (r *statementRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM financial_statements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("financial statement not found")
	}

	return nil
}
