package services

import (
	"database/sql"

	"github.com/credipyme/risk-api/internal/logger"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/scenario"
	"github.com/credipyme/risk-api/internal/scoring"
	"github.com/credipyme/risk-api/internal/social"
	"github.com/credipyme/risk-api/pkg/config"
)

// Services contains all application services
type Services struct {
	Company     CompanyService
	Assessment  AssessmentService
	Scenario    ScenarioService
	Application ApplicationService
	Auth        AuthService
}

// CompanyService defines the interface for company business logic
type CompanyService interface {
	GetByID(id string) (*models.Company, error)
	GetByRUC(ruc string) (*models.Company, error)
	GetAll(filters repository.CompanyFilters) ([]models.Company, error)
	Create(form *repository.CompanyForm) (*models.Company, error)
	Update(id string, form *repository.CompanyForm) (*models.Company, error)
	Delete(id string) error
	SubmitStatement(companyID string, form *repository.StatementForm) (*models.FinancialStatement, error)
	RefreshSocialSnapshot(companyID string) (*models.SocialAnalysis, error)
}

// AssessmentService defines the interface for risk scoring business logic
type AssessmentService interface {
	AssessCompany(companyID string) (*models.RiskAssessment, error)
	GetLatestAssessment(companyID string) (*models.RiskAssessment, error)
	GetAssessmentHistory(companyID string) ([]models.RiskAssessment, error)
	IntegratedAssessment(companyID string) (*scoring.IntegratedAssessment, error)
}

// ScenarioService defines the interface for what-if simulations
type ScenarioService interface {
	SimulateChanges(companyID string, changes scoring.ScenarioChanges) (*scoring.RiskAssessment, error)
	SimulateFamily(companyID, family string) (interface{}, error)
	SimulateAll(companyID string) (*scenario.SimulationReport, error)
	ListStoredSimulations(companyID string) ([]models.SimulationRecord, error)
}

// ApplicationService defines the interface for credit applications
type ApplicationService interface {
	Submit(companyID, userID string, form *repository.ApplicationForm) (*models.CreditApplication, error)
	Decide(applicationID string) (*models.CreditApplication, error)
	GetByID(applicationID string) (*models.CreditApplication, error)
	ListByCompany(companyID string) ([]models.CreditApplication, error)
	ListPending(limit int) ([]models.CreditApplication, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(email, password string) (*repository.LoginResponse, error)
	Register(user *repository.RegisterRequest) (*models.User, error)
	ValidateToken(token string) (*models.User, error)
	RefreshToken(token string) (*repository.LoginResponse, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config, log logger.Logger, fetcher social.Fetcher) *Services {
	repos := repository.NewRepositories(db)
	engine := scoring.NewRiskEngine()
	simulator := scenario.NewSimulator()

	assessment := newAssessmentService(repos, engine, log)
	return &Services{
		Company:     newCompanyService(repos, fetcher, log),
		Assessment:  assessment,
		Scenario:    newScenarioService(repos, engine, simulator, log),
		Application: newApplicationService(repos, assessment, log),
		Auth:        newAuthService(repos, cfg),
	}
}

// NewAssessmentService creates a standalone assessment service
func NewAssessmentService(repos *repository.Repositories, log logger.Logger) AssessmentService {
	return newAssessmentService(repos, scoring.NewRiskEngine(), log)
}
