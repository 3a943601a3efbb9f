package services

import (
	"sort"

	apperrors "github.com/credipyme/risk-api/internal/errors"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces. Each fake keeps its
// rows in a map and hands back copies, so tests can mutate results
// without corrupting the store.

type noopLogger struct{}

func (noopLogger) Info(msg string, fields ...interface{})             {}
func (noopLogger) Error(msg string, err error, fields ...interface{}) {}
func (noopLogger) Warn(msg string, fields ...interface{})             {}
func (noopLogger) Debug(msg string, fields ...interface{})            {}
func (noopLogger) Fatal(msg string, err error, fields ...interface{}) {}

type fakeCompanyRepo struct {
	companies map[uuid.UUID]models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[uuid.UUID]models.Company{}}
}

func (r *fakeCompanyRepo) GetByID(id uuid.UUID) (*models.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, apperrors.NotFound("company not found", nil)
	}
	return &company, nil
}

func (r *fakeCompanyRepo) GetByRUC(ruc string) (*models.Company, error) {
	for _, company := range r.companies {
		if company.RUC == ruc {
			c := company
			return &c, nil
		}
	}
	return nil, apperrors.NotFound("company not found", nil)
}

func (r *fakeCompanyRepo) Create(company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Update(company *models.Company) error {
	if _, ok := r.companies[company.ID]; !ok {
		return apperrors.NotFound("company not found", nil)
	}
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Delete(id uuid.UUID) error {
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) GetAll(filters repository.CompanyFilters) ([]models.Company, error) {
	var out []models.Company
	for _, company := range r.companies {
		out = append(out, company)
	}
	return out, nil
}

func (r *fakeCompanyRepo) GetUnassessed(criteria repository.UnassessedCriteria) ([]models.Company, error) {
	return r.GetAll(repository.CompanyFilters{})
}

func (r *fakeCompanyRepo) GetAllIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range r.companies {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeStatementRepo struct {
	statements map[uuid.UUID]models.FinancialStatement
}

func newFakeStatementRepo() *fakeStatementRepo {
	return &fakeStatementRepo{statements: map[uuid.UUID]models.FinancialStatement{}}
}

func (r *fakeStatementRepo) GetByID(id uuid.UUID) (*models.FinancialStatement, error) {
	statement, ok := r.statements[id]
	if !ok {
		return nil, apperrors.NotFound("statement not found", nil)
	}
	return &statement, nil
}

func (r *fakeStatementRepo) GetLatestByCompany(companyID uuid.UUID) (*models.FinancialStatement, error) {
	statements, _ := r.ListByCompany(companyID)
	if len(statements) == 0 {
		return nil, apperrors.NotFound("statement not found", nil)
	}
	return &statements[0], nil
}

func (r *fakeStatementRepo) GetByCompanyAndYear(companyID uuid.UUID, fiscalYear int) (*models.FinancialStatement, error) {
	for _, statement := range r.statements {
		if statement.CompanyID == companyID && statement.FiscalYear == fiscalYear {
			s := statement
			return &s, nil
		}
	}
	return nil, apperrors.NotFound("statement not found", nil)
}

// ListByCompany returns statements newest fiscal year first
func (r *fakeStatementRepo) ListByCompany(companyID uuid.UUID) ([]models.FinancialStatement, error) {
	var out []models.FinancialStatement
	for _, statement := range r.statements {
		if statement.CompanyID == companyID {
			out = append(out, statement)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FiscalYear > out[j].FiscalYear })
	return out, nil
}

func (r *fakeStatementRepo) Upsert(statement *models.FinancialStatement) error {
	if existing, err := r.GetByCompanyAndYear(statement.CompanyID, statement.FiscalYear); err == nil {
		statement.ID = existing.ID
	}
	if statement.ID == uuid.Nil {
		statement.ID = uuid.New()
	}
	r.statements[statement.ID] = *statement
	return nil
}

func (r *fakeStatementRepo) Delete(id uuid.UUID) error {
	delete(r.statements, id)
	return nil
}

type fakeSocialRepo struct {
	analyses []models.SocialAnalysis
}

func (r *fakeSocialRepo) GetLatestByCompany(companyID uuid.UUID) (*models.SocialAnalysis, error) {
	for i := len(r.analyses) - 1; i >= 0; i-- {
		if r.analyses[i].CompanyID == companyID {
			analysis := r.analyses[i]
			return &analysis, nil
		}
	}
	return nil, apperrors.NotFound("analysis not found", nil)
}

func (r *fakeSocialRepo) Create(analysis *models.SocialAnalysis) error {
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	r.analyses = append(r.analyses, *analysis)
	return nil
}

func (r *fakeSocialRepo) DeleteByCompany(companyID uuid.UUID) error {
	var kept []models.SocialAnalysis
	for _, analysis := range r.analyses {
		if analysis.CompanyID != companyID {
			kept = append(kept, analysis)
		}
	}
	r.analyses = kept
	return nil
}

type fakeAssessmentRepo struct {
	assessments []models.RiskAssessment
	simulations []models.SimulationRecord
}

func (r *fakeAssessmentRepo) GetByID(id uuid.UUID) (*models.RiskAssessment, error) {
	for _, assessment := range r.assessments {
		if assessment.ID == id {
			a := assessment
			return &a, nil
		}
	}
	return nil, apperrors.NotFound("assessment not found", nil)
}

func (r *fakeAssessmentRepo) GetLatestByCompany(companyID uuid.UUID) (*models.RiskAssessment, error) {
	for i := len(r.assessments) - 1; i >= 0; i-- {
		if r.assessments[i].CompanyID == companyID {
			assessment := r.assessments[i]
			return &assessment, nil
		}
	}
	return nil, apperrors.NotFound("assessment not found", nil)
}

func (r *fakeAssessmentRepo) ListByCompany(companyID uuid.UUID) ([]models.RiskAssessment, error) {
	var out []models.RiskAssessment
	for i := len(r.assessments) - 1; i >= 0; i-- {
		if r.assessments[i].CompanyID == companyID {
			out = append(out, r.assessments[i])
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) Create(assessment *models.RiskAssessment) error {
	if assessment.ID == uuid.Nil {
		assessment.ID = uuid.New()
	}
	r.assessments = append(r.assessments, *assessment)
	return nil
}

func (r *fakeAssessmentRepo) DeleteByCompany(companyID uuid.UUID) error {
	var kept []models.RiskAssessment
	for _, assessment := range r.assessments {
		if assessment.CompanyID != companyID {
			kept = append(kept, assessment)
		}
	}
	r.assessments = kept
	return nil
}

func (r *fakeAssessmentRepo) StoreSimulation(record *models.SimulationRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.simulations = append(r.simulations, *record)
	return nil
}

func (r *fakeAssessmentRepo) ListSimulationsByCompany(companyID uuid.UUID) ([]models.SimulationRecord, error) {
	var out []models.SimulationRecord
	for i := len(r.simulations) - 1; i >= 0; i-- {
		if r.simulations[i].CompanyID == companyID {
			out = append(out, r.simulations[i])
		}
	}
	return out, nil
}

type fakeApplicationRepo struct {
	applications map[uuid.UUID]models.CreditApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: map[uuid.UUID]models.CreditApplication{}}
}

func (r *fakeApplicationRepo) GetByID(id uuid.UUID) (*models.CreditApplication, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, apperrors.NotFound("application not found", nil)
	}
	return &application, nil
}

func (r *fakeApplicationRepo) ListByCompany(companyID uuid.UUID) ([]models.CreditApplication, error) {
	var out []models.CreditApplication
	for _, application := range r.applications {
		if application.CompanyID == companyID {
			out = append(out, application)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByStatus(status models.ApplicationStatus, limit int) ([]models.CreditApplication, error) {
	var out []models.CreditApplication
	for _, application := range r.applications {
		if application.Status == string(status) {
			out = append(out, application)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) Create(application *models.CreditApplication) error {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	application.Status = string(models.ApplicationPending)
	r.applications[application.ID] = *application
	return nil
}

func (r *fakeApplicationRepo) UpdateStatus(id uuid.UUID, status models.ApplicationStatus, assessmentID *uuid.UUID) error {
	application, ok := r.applications[id]
	if !ok {
		return apperrors.NotFound("application not found", nil)
	}
	application.Status = string(status)
	if assessmentID != nil {
		application.AssessmentID = assessmentID
	}
	r.applications[id] = application
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]models.User{}}
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user not found", nil)
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user not found", nil)
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

// fakeTxManager runs the callback against the same repositories; the
// fakes have no transactional state to isolate.
type fakeTxManager struct {
	repos *repository.Repositories
}

func (m *fakeTxManager) WithTransaction(fn func(repos *repository.Repositories) error) error {
	return fn(m.repos)
}

func newTestRepos() *repository.Repositories {
	repos := &repository.Repositories{
		Company:     newFakeCompanyRepo(),
		Statement:   newFakeStatementRepo(),
		Social:      &fakeSocialRepo{},
		Assessment:  &fakeAssessmentRepo{},
		Application: newFakeApplicationRepo(),
		User:        newFakeUserRepo(),
	}
	repos.Tx = &fakeTxManager{repos: repos}
	return repos
}
