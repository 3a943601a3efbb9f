package services

import (
	"context"
	"time"

	apperrors "github.com/credipyme/risk-api/internal/errors"
	"github.com/credipyme/risk-api/internal/logger"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/social"
	"github.com/google/uuid"
)

const socialFetchTimeout = 45 * time.Second

// companyServiceImpl implements CompanyService
type companyServiceImpl struct {
	repos   *repository.Repositories
	fetcher social.Fetcher
	log     logger.Logger
}

// newCompanyService creates a new company service implementation
func newCompanyService(repos *repository.Repositories, fetcher social.Fetcher, log logger.Logger) CompanyService {
	return &companyServiceImpl{repos: repos, fetcher: fetcher, log: log}
}

// validateRUC checks the Ecuadorian tax registry number format: 13
// digits ending in 001.
func validateRUC(ruc string) error {
	if len(ruc) != 13 {
		return apperrors.InvalidInput("RUC must be 13 digits", nil).WithDetails("ruc: " + ruc)
	}
	for _, c := range ruc {
		if c < '0' || c > '9' {
			return apperrors.InvalidInput("RUC must contain only digits", nil).WithDetails("ruc: " + ruc)
		}
	}
	if ruc[10:] != "001" {
		return apperrors.InvalidInput("RUC must end in 001", nil).WithDetails("ruc: " + ruc)
	}
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput("invalid id", err).WithDetails("id: " + id)
	}
	return parsed, nil
}

// GetByID retrieves a company by ID
func (s *companyServiceImpl) GetByID(id string) (*models.Company, error) {
	companyID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	company, err := s.repos.Company.GetByID(companyID)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err).WithOperation("GetByID")
	}
	return company, nil
}

// GetByRUC retrieves a company by its registry number
func (s *companyServiceImpl) GetByRUC(ruc string) (*models.Company, error) {
	if err := validateRUC(ruc); err != nil {
		return nil, err
	}
	company, err := s.repos.Company.GetByRUC(ruc)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err).WithOperation("GetByRUC")
	}
	return company, nil
}

// GetAll retrieves companies with filters
func (s *companyServiceImpl) GetAll(filters repository.CompanyFilters) ([]models.Company, error) {
	companies, err := s.repos.Company.GetAll(filters)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list companies", err).WithOperation("GetAll")
	}
	return companies, nil
}

// Create registers a new company
func (s *companyServiceImpl) Create(form *repository.CompanyForm) (*models.Company, error) {
	if err := validateRUC(form.RUC); err != nil {
		return nil, err
	}

	if existing, err := s.repos.Company.GetByRUC(form.RUC); err == nil && existing != nil {
		return nil, apperrors.Conflict("company with this RUC already exists", nil).WithDetails("ruc: " + form.RUC)
	}

	company := &models.Company{
		RUC:              form.RUC,
		Name:             form.Name,
		Sector:           form.Sector,
		FoundationDate:   form.FoundationDate,
		EmployeeCount:    form.EmployeeCount,
		Website:          form.Website,
		Description:      form.Description,
		SocialLinks:      form.SocialLinks,
		Address:          form.Address,
		LegalStatus:      models.LegalStatusActive,
		ComplianceStatus: models.ComplianceCurrent,
	}

	if err := s.repos.Company.Create(company); err != nil {
		return nil, apperrors.DatabaseError("failed to create company", err).WithOperation("Create")
	}

	s.log.Info("company registered", "ruc", company.RUC, "id", company.ID)
	return company, nil
}

// Update modifies an existing company
func (s *companyServiceImpl) Update(id string, form *repository.CompanyForm) (*models.Company, error) {
	company, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	company.Name = form.Name
	company.Sector = form.Sector
	company.FoundationDate = form.FoundationDate
	company.EmployeeCount = form.EmployeeCount
	company.Website = form.Website
	company.Description = form.Description
	company.SocialLinks = form.SocialLinks
	company.Address = form.Address

	if err := s.repos.Company.Update(company); err != nil {
		return nil, apperrors.DatabaseError("failed to update company", err).WithOperation("Update")
	}

	return company, nil
}

// Delete removes a company
func (s *companyServiceImpl) Delete(id string) error {
	companyID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repos.Company.Delete(companyID); err != nil {
		return apperrors.DatabaseError("failed to delete company", err).WithOperation("Delete")
	}
	return nil
}

// SubmitStatement stores or replaces the statement for a fiscal year
func (s *companyServiceImpl) SubmitStatement(companyID string, form *repository.StatementForm) (*models.FinancialStatement, error) {
	company, err := s.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	if form.FiscalYear < 1900 || form.FiscalYear > time.Now().Year() {
		return nil, apperrors.ValidationError("fiscal year out of range", nil)
	}

	statement := &models.FinancialStatement{
		CompanyID:             company.ID,
		FiscalYear:            form.FiscalYear,
		CurrentAssets:         form.CurrentAssets,
		NonCurrentAssets:      form.NonCurrentAssets,
		CurrentLiabilities:    form.CurrentLiabilities,
		NonCurrentLiabilities: form.NonCurrentLiabilities,
		Equity:                form.Equity,
		TotalRevenue:          form.TotalRevenue,
		NetIncome:             form.NetIncome,
		OperatingCashFlow:     form.OperatingCashFlow,
	}

	if err := s.repos.Statement.Upsert(statement); err != nil {
		return nil, apperrors.DatabaseError("failed to store statement", err).WithOperation("SubmitStatement")
	}

	s.log.Info("statement filed", "company", company.RUC, "fiscal_year", form.FiscalYear)
	return statement, nil
}

// RefreshSocialSnapshot fetches the current public social signal and
// stores it as the latest snapshot
func (s *companyServiceImpl) RefreshSocialSnapshot(companyID string) (*models.SocialAnalysis, error) {
	company, err := s.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), socialFetchTimeout)
	defer cancel()

	record, err := s.fetcher.FetchSocialSignal(ctx, company)
	if err != nil {
		return nil, apperrors.ServiceError("social fetch failed", err).WithOperation("RefreshSocialSnapshot")
	}

	analysis := &models.SocialAnalysis{
		CompanyID:                company.ID,
		FollowersCount:           record.FollowersCount,
		PostsCount:               record.PostsCount,
		EngagementRate:           record.EngagementRate,
		OverallSentiment:         record.OverallSentiment,
		ProfessionalContentScore: record.ProfessionalContentScore,
		PostingFrequency:         record.PostingFrequency,
		Source:                   "web",
	}

	if err := s.repos.Social.Create(analysis); err != nil {
		return nil, apperrors.DatabaseError("failed to store social snapshot", err).WithOperation("RefreshSocialSnapshot")
	}

	return analysis, nil
}
