package services

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/credipyme/risk-api/internal/errors"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/scoring"
	"github.com/google/uuid"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

// seedStrongCompany populates the fakes with a healthy, established
// commerce company: liquid, profitable, active online, two fiscal
// years on file.
func seedStrongCompany(t *testing.T, repos *repository.Repositories) uuid.UUID {
	t.Helper()

	founded := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	company := &models.Company{
		RUC:            "1790012345001",
		Name:           "Comercial Andina",
		Sector:         "Comercio",
		FoundationDate: &founded,
		EmployeeCount:  25,
		Website:        "https://andina.ec",
		SocialLinks: models.SocialLinks{
			"instagram": "https://instagram.com/andina",
			"facebook":  "https://facebook.com/andina",
		},
		LegalStatus:      models.LegalStatusActive,
		ComplianceStatus: models.ComplianceCurrent,
		DigitalScore:     55,
		Verified:         true,
	}
	if err := repos.Company.Create(company); err != nil {
		t.Fatalf("seed company: %v", err)
	}

	statements := []*models.FinancialStatement{
		{
			CompanyID:    company.ID,
			FiscalYear:   2024,
			TotalRevenue: 500000,
		},
		{
			CompanyID:             company.ID,
			FiscalYear:            2025,
			CurrentAssets:         300000,
			NonCurrentAssets:      200000,
			CurrentLiabilities:    100000,
			NonCurrentLiabilities: 50000,
			Equity:                350000,
			TotalRevenue:          600000,
			NetIncome:             90000,
			OperatingCashFlow:     120000,
		},
	}
	for _, statement := range statements {
		if err := repos.Statement.Upsert(statement); err != nil {
			t.Fatalf("seed statement: %v", err)
		}
	}

	if err := repos.Social.Create(&models.SocialAnalysis{
		CompanyID:                company.ID,
		FollowersCount:           20000,
		PostsCount:               80,
		EngagementRate:           5.0,
		OverallSentiment:         models.SentimentPositive,
		ProfessionalContentScore: 0.8,
		PostingFrequency:         "weekly",
		Source:                   "web",
	}); err != nil {
		t.Fatalf("seed social: %v", err)
	}

	return company.ID
}

func TestAssessCompanyScoresAndPersists(t *testing.T) {
	repos := newTestRepos()
	companyID := seedStrongCompany(t, repos)
	service := newAssessmentService(repos, scoring.NewRiskEngine(), noopLogger{})

	assessment, err := service.AssessCompany(companyID.String())
	if err != nil {
		t.Fatalf("AssessCompany: %v", err)
	}

	if assessment.OverallScore != 64.51 {
		t.Errorf("overall score = %v, want 64.51", assessment.OverallScore)
	}
	if assessment.RiskLevel != scoring.RiskMedium {
		t.Errorf("risk level = %q, want %q", assessment.RiskLevel, scoring.RiskMedium)
	}
	if assessment.RecommendedLimit != 24000 {
		t.Errorf("recommended limit = %v, want 24000", assessment.RecommendedLimit)
	}
	if assessment.RecommendedRate != 17.27 {
		t.Errorf("recommended rate = %v, want 17.27", assessment.RecommendedRate)
	}
	if assessment.RecommendedTermMonths != 24 {
		t.Errorf("term = %d, want 24", assessment.RecommendedTermMonths)
	}
	if assessment.ConfidenceLevel != 0.9 {
		t.Errorf("confidence = %v, want 0.9", assessment.ConfidenceLevel)
	}
	if _, ok := assessment.DecisionFactors["strong_liquidity"]; !ok {
		t.Errorf("decision factors missing strong_liquidity: %v", assessment.DecisionFactors)
	}
	if _, ok := assessment.DecisionFactors["profitable"]; !ok {
		t.Errorf("decision factors missing profitable: %v", assessment.DecisionFactors)
	}

	stored, err := service.GetLatestAssessment(companyID.String())
	if err != nil {
		t.Fatalf("GetLatestAssessment: %v", err)
	}
	if stored.OverallScore != assessment.OverallScore {
		t.Errorf("stored score = %v, want %v", stored.OverallScore, assessment.OverallScore)
	}
}

func TestAssessCompanyWithoutRecords(t *testing.T) {
	repos := newTestRepos()
	company := &models.Company{RUC: "0990123456001", Name: "Sin Datos", Sector: "Comercio"}
	if err := repos.Company.Create(company); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	service := newAssessmentService(repos, scoring.NewRiskEngine(), noopLogger{})

	assessment, err := service.AssessCompany(company.ID.String())
	if err != nil {
		t.Fatalf("AssessCompany: %v", err)
	}
	if assessment.RiskLevel != scoring.RiskHigh {
		t.Errorf("risk level = %q, want %q for an empty profile", assessment.RiskLevel, scoring.RiskHigh)
	}
	if assessment.RecommendedLimit != 5000 {
		t.Errorf("recommended limit = %v, want the 5000 floor", assessment.RecommendedLimit)
	}
}

func TestAssessCompanyUnknownCompany(t *testing.T) {
	service := newAssessmentService(newTestRepos(), scoring.NewRiskEngine(), noopLogger{})

	_, err := service.AssessCompany(uuid.New().String())
	if code := errCode(t, err); code != apperrors.ErrCodeNotFound {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeNotFound)
	}

	_, err = service.AssessCompany("not-a-uuid")
	if code := errCode(t, err); code != apperrors.ErrCodeInvalidInput {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeInvalidInput)
	}
}

func TestFinancialSignalFromHistory(t *testing.T) {
	statement := func(year int, revenue float64) models.FinancialStatement {
		return models.FinancialStatement{FiscalYear: year, TotalRevenue: revenue}
	}

	tests := []struct {
		name          string
		statements    []models.FinancialStatement
		wantGrowth    float64
		wantStability string
	}{
		{
			name:          "steady growth",
			statements:    []models.FinancialStatement{statement(2025, 600000), statement(2024, 500000)},
			wantGrowth:    20,
			wantStability: "high",
		},
		{
			name:          "collapse",
			statements:    []models.FinancialStatement{statement(2025, 400000), statement(2024, 500000)},
			wantGrowth:    -20,
			wantStability: "low",
		},
		{
			name:          "single year",
			statements:    []models.FinancialStatement{statement(2025, 500000)},
			wantGrowth:    0,
			wantStability: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := financialSignalFromHistory(tt.statements)
			if signal.RevenueGrowthPercent != tt.wantGrowth {
				t.Errorf("growth = %v, want %v", signal.RevenueGrowthPercent, tt.wantGrowth)
			}
			if signal.RevenueStability != tt.wantStability {
				t.Errorf("stability = %q, want %q", signal.RevenueStability, tt.wantStability)
			}
		})
	}
}

func TestIntegratedAssessmentBlendsAllSources(t *testing.T) {
	repos := newTestRepos()
	companyID := seedStrongCompany(t, repos)
	service := newAssessmentService(repos, scoring.NewRiskEngine(), noopLogger{})

	if _, err := service.AssessCompany(companyID.String()); err != nil {
		t.Fatalf("AssessCompany: %v", err)
	}

	result, err := service.IntegratedAssessment(companyID.String())
	if err != nil {
		t.Fatalf("IntegratedAssessment: %v", err)
	}

	// core 64.51, financials 75 (20% growth, high stability), digital
	// 55, legal 85 (ACTIVA + AL_DIA), resilience 27.5.
	if result.FinalRiskScore != 64.6 {
		t.Errorf("final score = %v, want 64.6", result.FinalRiskScore)
	}
	if result.RiskLevel != "medium-high" {
		t.Errorf("risk level = %q, want medium-high", result.RiskLevel)
	}
	if result.ConfidenceLevel != 0.95 {
		t.Errorf("confidence = %v, want 0.95 with all five sources", result.ConfidenceLevel)
	}
	if len(result.ComponentScores) != 5 {
		t.Errorf("component scores = %d entries, want 5", len(result.ComponentScores))
	}
	if result.ComponentScores["legal_status"] != 85 {
		t.Errorf("legal component = %v, want 85", result.ComponentScores["legal_status"])
	}
}

func TestIntegratedAssessmentWithSparseProfile(t *testing.T) {
	repos := newTestRepos()
	company := &models.Company{RUC: "0990123456001", Name: "Nueva", Sector: "Servicios"}
	if err := repos.Company.Create(company); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	service := newAssessmentService(repos, scoring.NewRiskEngine(), noopLogger{})

	result, err := service.IntegratedAssessment(company.ID.String())
	if err != nil {
		t.Fatalf("IntegratedAssessment: %v", err)
	}

	// Only the scenario simulation counts as a source here.
	if result.ConfidenceLevel != 0.6 {
		t.Errorf("confidence = %v, want 0.6 with a single source", result.ConfidenceLevel)
	}
	if result.ComponentScores["core_analysis"] != 50 {
		t.Errorf("core component = %v, want neutral 50", result.ComponentScores["core_analysis"])
	}
}
