package repository

import (
	"time"

	"github.com/credipyme/risk-api/internal/models"
	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Basic CRUD operations
	GetByID(id uuid.UUID) (*models.Company, error)
	GetByRUC(ruc string) (*models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id uuid.UUID) error

	// Bulk operations
	GetAll(filters CompanyFilters) ([]models.Company, error)
	GetUnassessed(criteria UnassessedCriteria) ([]models.Company, error)
	GetAllIDs() ([]uuid.UUID, error)
}

// StatementRepository defines the interface for financial statement access
type StatementRepository interface {
	GetByID(id uuid.UUID) (*models.FinancialStatement, error)
	GetLatestByCompany(companyID uuid.UUID) (*models.FinancialStatement, error)
	GetByCompanyAndYear(companyID uuid.UUID, fiscalYear int) (*models.FinancialStatement, error)
	ListByCompany(companyID uuid.UUID) ([]models.FinancialStatement, error)
	Upsert(statement *models.FinancialStatement) error
	Delete(id uuid.UUID) error
}

// SocialRepository defines the interface for social analysis access
type SocialRepository interface {
	GetLatestByCompany(companyID uuid.UUID) (*models.SocialAnalysis, error)
	Create(analysis *models.SocialAnalysis) error
	DeleteByCompany(companyID uuid.UUID) error
}

// AssessmentRepository defines the interface for risk assessment access
type AssessmentRepository interface {
	GetByID(id uuid.UUID) (*models.RiskAssessment, error)
	GetLatestByCompany(companyID uuid.UUID) (*models.RiskAssessment, error)
	ListByCompany(companyID uuid.UUID) ([]models.RiskAssessment, error)
	Create(assessment *models.RiskAssessment) error
	DeleteByCompany(companyID uuid.UUID) error

	// Simulation runs
	StoreSimulation(record *models.SimulationRecord) error
	ListSimulationsByCompany(companyID uuid.UUID) ([]models.SimulationRecord, error)
}

// ApplicationRepository defines the interface for credit application access
type ApplicationRepository interface {
	GetByID(id uuid.UUID) (*models.CreditApplication, error)
	ListByCompany(companyID uuid.UUID) ([]models.CreditApplication, error)
	ListByStatus(status models.ApplicationStatus, limit int) ([]models.CreditApplication, error)
	Create(application *models.CreditApplication) error
	UpdateStatus(id uuid.UUID, status models.ApplicationStatus, assessmentID *uuid.UUID) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Company     CompanyRepository
	Statement   StatementRepository
	Social      SocialRepository
	Assessment  AssessmentRepository
	Application ApplicationRepository
	User        UserRepository
	Tx          TransactionManager
}

// CompanyFilters defines filters for querying companies
type CompanyFilters struct {
	Sectors          []string
	LegalStatus      []string
	HasWebsite       *bool
	IsVerified       *bool
	MinEmployees     *int
	MaxEmployees     *int
	FoundedFrom      *time.Time
	FoundedTo        *time.Time
	Limit            int
	Offset           int
}

// UnassessedCriteria defines criteria for finding companies without a
// recent risk assessment
type UnassessedCriteria struct {
	Sectors         []string
	AssessedSince   *time.Time
	ExcludeAssessed bool
	Limit           int
}
