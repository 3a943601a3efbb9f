package repository

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/google/uuid"
)

func TestAssessmentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewAssessmentRepository(db)

	assessment := &models.RiskAssessment{
		CompanyID:             uuid.New(),
		FinancialScore:        0.62,
		SocialScore:           0.55,
		ReputationScore:       0.48,
		OverallScore:          57.25,
		RiskLevel:             "medium",
		RecommendedLimit:      24000,
		RecommendedRate:       18.5,
		RecommendedTermMonths: 24,
		DecisionFactors:       models.DecisionFactors{"established_business": "Negocio establecido"},
		ConfidenceLevel:       0.85,
	}

	mock.ExpectExec(`INSERT INTO risk_assessments`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(assessment); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if assessment.ID == uuid.Nil {
		t.Error("Create should assign an ID")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAssessmentRepository_GetLatestByCompany(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewAssessmentRepository(db)

	companyID := uuid.New()
	factors := models.DecisionFactors{"strong_liquidity": "Buena liquidez corriente"}
	factorsJSON, _ := factors.Value()

	rows := sqlmock.NewRows([]string{
		"id", "company_id", "financial_score", "social_media_score",
		"business_reputation_score", "overall_score", "risk_level",
		"recommended_credit_limit", "recommended_interest_rate",
		"recommended_term_months", "decision_factors", "confidence_level", "created_at",
	}).AddRow(
		uuid.New(), companyID, 0.8, 0.6, 0.7, 74.5, "low",
		36000.0, 15.0, 36, factorsJSON, 0.9, time.Now(),
	)

	mock.ExpectQuery(`SELECT .* FROM risk_assessments WHERE company_id = \$1 ORDER BY created_at DESC LIMIT 1`).
		WithArgs(companyID).
		WillReturnRows(rows)

	got, err := repo.GetLatestByCompany(companyID)
	if err != nil {
		t.Fatalf("GetLatestByCompany returned error: %v", err)
	}
	if got.RiskLevel != "low" {
		t.Errorf("RiskLevel = %s, expected low", got.RiskLevel)
	}
	if got.DecisionFactors["strong_liquidity"] != "Buena liquidez corriente" {
		t.Error("DecisionFactors did not round-trip through the JSON column")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStatementRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewStatementRepository(db)

	statement := &models.FinancialStatement{
		CompanyID:          uuid.New(),
		FiscalYear:         2025,
		CurrentAssets:      150000,
		CurrentLiabilities: 100000,
		Equity:             120000,
		TotalRevenue:       600000,
		NetIncome:          48000,
	}

	mock.ExpectExec(`INSERT INTO financial_statements .* ON CONFLICT \(company_id, fiscal_year\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(statement); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if statement.ID == uuid.Nil {
		t.Error("Upsert should assign an ID")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
