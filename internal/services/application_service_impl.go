package services

import (
	apperrors "github.com/credipyme/risk-api/internal/errors"
	"github.com/credipyme/risk-api/internal/logger"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/scoring"
)

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	repos      *repository.Repositories
	assessment AssessmentService
	log        logger.Logger
}

// newApplicationService creates a new application service implementation
func newApplicationService(repos *repository.Repositories, assessment AssessmentService, log logger.Logger) ApplicationService {
	return &applicationServiceImpl{repos: repos, assessment: assessment, log: log}
}

// Submit registers a new credit application
func (s *applicationServiceImpl) Submit(companyID, userID string, form *repository.ApplicationForm) (*models.CreditApplication, error) {
	cID, err := parseID(companyID)
	if err != nil {
		return nil, err
	}
	uID, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Company.GetByID(cID); err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}

	application := &models.CreditApplication{
		CompanyID:       cID,
		RequestedAmount: form.RequestedAmount,
		TermMonths:      form.TermMonths,
		Purpose:         form.Purpose,
		Status:          string(models.ApplicationPending),
		SubmittedBy:     uID,
	}

	if err := s.repos.Application.Create(application); err != nil {
		return nil, apperrors.DatabaseError("failed to create application", err).WithOperation("Submit")
	}

	s.log.Info("credit application submitted",
		"application", application.ID,
		"amount", application.RequestedAmount,
	)
	return application, nil
}

// Decide scores the applicant and transitions the application based on
// the fresh assessment. The scoring run and the status transition are
// committed together.
func (s *applicationServiceImpl) Decide(applicationID string) (*models.CreditApplication, error) {
	id, err := parseID(applicationID)
	if err != nil {
		return nil, err
	}

	application, err := s.repos.Application.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFound("application not found", err)
	}
	if application.Status != string(models.ApplicationPending) {
		return nil, apperrors.Conflict("application already decided", nil).
			WithDetails("status: " + application.Status)
	}

	assessment, err := s.assessment.AssessCompany(application.CompanyID.String())
	if err != nil {
		return nil, err
	}

	status := decideStatus(assessment, application.RequestedAmount)

	err = s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		return repos.Application.UpdateStatus(id, status, &assessment.ID)
	})
	if err != nil {
		return nil, apperrors.DatabaseError("failed to record decision", err).WithOperation("Decide")
	}

	application.Status = string(status)
	application.AssessmentID = &assessment.ID

	s.log.Info("credit application decided",
		"application", application.ID,
		"status", application.Status,
		"score", assessment.OverallScore,
	)
	return application, nil
}

// decideStatus maps an assessment onto the application outcome:
// high-risk applicants are rejected, low and medium tiers are approved
// when the requested amount fits the recommended limit, anything else
// stays queued for manual review.
func decideStatus(assessment *models.RiskAssessment, requestedAmount float64) models.ApplicationStatus {
	if assessment.RiskLevel == scoring.RiskHigh {
		return models.ApplicationRejected
	}
	if requestedAmount <= assessment.RecommendedLimit {
		return models.ApplicationApproved
	}
	return models.ApplicationScored
}

// GetByID retrieves an application
func (s *applicationServiceImpl) GetByID(applicationID string) (*models.CreditApplication, error) {
	id, err := parseID(applicationID)
	if err != nil {
		return nil, err
	}
	application, err := s.repos.Application.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFound("application not found", err).WithOperation("GetByID")
	}
	return application, nil
}

// ListByCompany retrieves applications for a company
func (s *applicationServiceImpl) ListByCompany(companyID string) ([]models.CreditApplication, error) {
	id, err := parseID(companyID)
	if err != nil {
		return nil, err
	}
	applications, err := s.repos.Application.ListByCompany(id)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list applications", err).WithOperation("ListByCompany")
	}
	return applications, nil
}

// ListPending retrieves the pending review queue
func (s *applicationServiceImpl) ListPending(limit int) ([]models.CreditApplication, error) {
	applications, err := s.repos.Application.ListByStatus(models.ApplicationPending, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list pending applications", err).WithOperation("ListPending")
	}
	return applications, nil
}
