package services

import (
	apperrors "github.com/credipyme/risk-api/internal/errors"
	"github.com/credipyme/risk-api/internal/logger"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/scenario"
	"github.com/credipyme/risk-api/internal/scoring"
	"github.com/google/uuid"
)

// assessmentServiceImpl implements AssessmentService
type assessmentServiceImpl struct {
	repos  *repository.Repositories
	engine *scoring.RiskEngine
	log    logger.Logger
}

// newAssessmentService creates a new assessment service implementation
func newAssessmentService(repos *repository.Repositories, engine *scoring.RiskEngine, log logger.Logger) *assessmentServiceImpl {
	return &assessmentServiceImpl{repos: repos, engine: engine, log: log}
}

// statementToRecord maps a stored statement onto the engine's input.
// A nil statement yields the zero record, which the engine degrades
// gracefully.
func statementToRecord(statement *models.FinancialStatement) scoring.FinancialRecord {
	if statement == nil {
		return scoring.FinancialRecord{}
	}
	return scoring.FinancialRecord{
		CurrentAssets:         statement.CurrentAssets,
		NonCurrentAssets:      statement.NonCurrentAssets,
		CurrentLiabilities:    statement.CurrentLiabilities,
		NonCurrentLiabilities: statement.NonCurrentLiabilities,
		Equity:                statement.Equity,
		TotalRevenue:          statement.TotalRevenue,
		NetIncome:             statement.NetIncome,
		OperatingCashFlow:     statement.OperatingCashFlow,
		TotalAssets:           statement.TotalAssets(),
		TotalLiabilities:      statement.TotalLiabilities(),
	}
}

func socialToRecord(analysis *models.SocialAnalysis) scoring.SocialRecord {
	if analysis == nil {
		return scoring.SocialRecord{}
	}
	return scoring.SocialRecord{
		FollowersCount:           analysis.FollowersCount,
		PostsCount:               analysis.PostsCount,
		EngagementRate:           analysis.EngagementRate,
		OverallSentiment:         analysis.OverallSentiment,
		ProfessionalContentScore: analysis.ProfessionalContentScore,
		PostingFrequency:         analysis.PostingFrequency,
	}
}

func companyToBusiness(company *models.Company) scoring.BusinessRecord {
	return scoring.BusinessRecord{
		FoundationDate: company.FoundationDate,
		Sector:         company.Sector,
		EmployeeCount:  company.EmployeeCount,
		Website:        company.Website,
		SocialMedia:    company.SocialLinks,
		Verified:       company.Verified,
	}
}

// loadRecords assembles the three engine inputs for a company. Missing
// statements or snapshots are tolerated.
func (s *assessmentServiceImpl) loadRecords(companyID uuid.UUID) (*models.Company, scoring.FinancialRecord, scoring.SocialRecord, scoring.BusinessRecord, error) {
	company, err := s.repos.Company.GetByID(companyID)
	if err != nil {
		return nil, scoring.FinancialRecord{}, scoring.SocialRecord{}, scoring.BusinessRecord{}, apperrors.NotFound("company not found", err)
	}

	statement, err := s.repos.Statement.GetLatestByCompany(companyID)
	if err != nil {
		s.log.Debug("no financial statement on file", "company", company.RUC)
		statement = nil
	}

	analysis, err := s.repos.Social.GetLatestByCompany(companyID)
	if err != nil {
		s.log.Debug("no social snapshot on file", "company", company.RUC)
		analysis = nil
	}

	return company, statementToRecord(statement), socialToRecord(analysis), companyToBusiness(company), nil
}

// AssessCompany runs the scoring engine over the latest records and
// persists the result
func (s *assessmentServiceImpl) AssessCompany(companyID string) (*models.RiskAssessment, error) {
	id, err := parseID(companyID)
	if err != nil {
		return nil, err
	}

	company, fin, soc, biz, err := s.loadRecords(id)
	if err != nil {
		return nil, err
	}

	result := s.engine.Score(fin, soc, biz)

	assessment := &models.RiskAssessment{
		CompanyID:             company.ID,
		FinancialScore:        result.FinancialScore,
		SocialScore:           result.SocialMediaScore,
		ReputationScore:       result.BusinessReputationScore,
		OverallScore:          result.OverallScore,
		RiskLevel:             result.RiskLevel,
		RecommendedLimit:      result.RecommendedCreditLimit,
		RecommendedRate:       result.RecommendedInterestRate,
		RecommendedTermMonths: result.RecommendedTermMonths,
		DecisionFactors:       models.DecisionFactors(result.DecisionFactors),
		ConfidenceLevel:       result.ConfidenceLevel,
	}

	if err := s.repos.Assessment.Create(assessment); err != nil {
		return nil, apperrors.DatabaseError("failed to store assessment", err).WithOperation("AssessCompany")
	}

	s.log.Info("company assessed",
		"ruc", company.RUC,
		"score", assessment.OverallScore,
		"risk_level", assessment.RiskLevel,
	)
	return assessment, nil
}

// GetLatestAssessment returns the most recent stored assessment
func (s *assessmentServiceImpl) GetLatestAssessment(companyID string) (*models.RiskAssessment, error) {
	id, err := parseID(companyID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.repos.Assessment.GetLatestByCompany(id)
	if err != nil {
		return nil, apperrors.NotFound("no assessment for company", err).WithOperation("GetLatestAssessment")
	}
	return assessment, nil
}

// GetAssessmentHistory returns all stored assessments, newest first
func (s *assessmentServiceImpl) GetAssessmentHistory(companyID string) ([]models.RiskAssessment, error) {
	id, err := parseID(companyID)
	if err != nil {
		return nil, err
	}
	assessments, err := s.repos.Assessment.ListByCompany(id)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list assessments", err).WithOperation("GetAssessmentHistory")
	}
	return assessments, nil
}

// IntegratedAssessment combines every available signal source into a
// single weighted verdict
func (s *assessmentServiceImpl) IntegratedAssessment(companyID string) (*scoring.IntegratedAssessment, error) {
	id, err := parseID(companyID)
	if err != nil {
		return nil, err
	}

	company, err := s.repos.Company.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}

	components := scoring.IntegratedComponents{}

	if assessment, err := s.repos.Assessment.GetLatestByCompany(id); err == nil {
		score := assessment.OverallScore
		components.CoreScore = &score
	}

	statements, err := s.repos.Statement.ListByCompany(id)
	if err == nil && len(statements) > 0 {
		components.Financial = financialSignalFromHistory(statements)
	}

	if company.DigitalScore > 0 {
		digital := company.DigitalScore
		components.DigitalScore = &digital
	}

	if company.LegalStatus != "" || company.ComplianceStatus != "" {
		components.Legal = &scoring.LegalStatus{
			CompanyStatus:    company.LegalStatus,
			ComplianceStatus: company.ComplianceStatus,
		}
	}

	// Stress survival rates from a fresh shock simulation.
	revenue := 0.0
	if len(statements) > 0 {
		revenue = statements[0].TotalRevenue
	}
	info := scenario.CompanyInfo{
		Name:      company.Name,
		RUC:       company.RUC,
		Sector:    company.Sector,
		RiskScore: orZero(components.CoreScore),
	}
	shocks := scenario.NewSimulator().SimulateEconomicShocks(info, scenario.FinancesFromRevenue(revenue))
	components.ShockSurvivalRates = shocks.SurvivalRates()
	components.HasScenarioSimulation = true

	return s.engine.CombineIntegratedScore(components), nil
}

// financialSignalFromHistory derives growth and stability from the
// statement history, newest first.
func financialSignalFromHistory(statements []models.FinancialStatement) *scoring.FinancialSignal {
	signal := &scoring.FinancialSignal{}
	if len(statements) >= 2 && statements[1].TotalRevenue > 0 {
		growth := (statements[0].TotalRevenue - statements[1].TotalRevenue) / statements[1].TotalRevenue * 100
		signal.RevenueGrowthPercent = growth
		switch {
		case growth > -5 && growth < 25:
			signal.RevenueStability = "high"
		case growth < -15:
			signal.RevenueStability = "low"
		}
	}
	return signal
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
