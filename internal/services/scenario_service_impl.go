package services

import (
	"encoding/json"

	apperrors "github.com/credipyme/risk-api/internal/errors"
	"github.com/credipyme/risk-api/internal/logger"
	"github.com/credipyme/risk-api/internal/models"
	"github.com/credipyme/risk-api/internal/repository"
	"github.com/credipyme/risk-api/internal/scenario"
	"github.com/credipyme/risk-api/internal/scoring"
	"github.com/google/uuid"
)

// scenarioServiceImpl implements ScenarioService
type scenarioServiceImpl struct {
	repos     *repository.Repositories
	engine    *scoring.RiskEngine
	simulator *scenario.Simulator
	log       logger.Logger
}

// newScenarioService creates a new scenario service implementation
func newScenarioService(repos *repository.Repositories, engine *scoring.RiskEngine, simulator *scenario.Simulator, log logger.Logger) ScenarioService {
	return &scenarioServiceImpl{repos: repos, engine: engine, simulator: simulator, log: log}
}

// loadBaseline resolves the company and the inputs the simulators
// project from.
func (s *scenarioServiceImpl) loadBaseline(companyID string) (*models.Company, scenario.CompanyInfo, scenario.Finances, error) {
	id, err := parseID(companyID)
	if err != nil {
		return nil, scenario.CompanyInfo{}, scenario.Finances{}, err
	}

	company, err := s.repos.Company.GetByID(id)
	if err != nil {
		return nil, scenario.CompanyInfo{}, scenario.Finances{}, apperrors.NotFound("company not found", err)
	}

	info := scenario.CompanyInfo{
		Name:         company.Name,
		RUC:          company.RUC,
		Sector:       company.Sector,
		DigitalScore: company.DigitalScore,
	}
	if assessment, err := s.repos.Assessment.GetLatestByCompany(id); err == nil {
		info.RiskScore = assessment.OverallScore
	}

	revenue := 0.0
	if statement, err := s.repos.Statement.GetLatestByCompany(id); err == nil {
		revenue = statement.TotalRevenue
	}

	return company, info, scenario.FinancesFromRevenue(revenue), nil
}

// SimulateChanges re-scores the company with direct feature deltas
// applied, without persisting anything
func (s *scenarioServiceImpl) SimulateChanges(companyID string, changes scoring.ScenarioChanges) (*scoring.RiskAssessment, error) {
	id, err := parseID(companyID)
	if err != nil {
		return nil, err
	}

	company, err := s.repos.Company.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}

	var fin scoring.FinancialRecord
	if statement, err := s.repos.Statement.GetLatestByCompany(id); err == nil {
		fin = statementToRecord(statement)
	}
	var soc scoring.SocialRecord
	if analysis, err := s.repos.Social.GetLatestByCompany(id); err == nil {
		soc = socialToRecord(analysis)
	}

	features := s.engine.PrepareFeatures(fin, soc, companyToBusiness(company))
	return s.engine.SimulateScenario(features, changes), nil
}

// SimulateFamily runs one scenario family and stores the run
func (s *scenarioServiceImpl) SimulateFamily(companyID, family string) (interface{}, error) {
	company, info, finances, err := s.loadBaseline(companyID)
	if err != nil {
		return nil, err
	}

	result, err := s.simulator.SimulateFamily(family, info, finances)
	if err != nil {
		return nil, err
	}

	s.storeRun(company.ID, family, result)
	return result, nil
}

// SimulateAll runs every family and stores the full report
func (s *scenarioServiceImpl) SimulateAll(companyID string) (*scenario.SimulationReport, error) {
	company, info, finances, err := s.loadBaseline(companyID)
	if err != nil {
		return nil, err
	}

	report := s.simulator.SimulateAll(info, finances)
	s.storeRun(company.ID, "all", report)

	s.log.Info("scenario simulation completed",
		"ruc", company.RUC,
		"scenarios", report.Summary.TotalScenariosAnalyzed,
	)
	return report, nil
}

// ListStoredSimulations returns the persisted runs for a company
func (s *scenarioServiceImpl) ListStoredSimulations(companyID string) ([]models.SimulationRecord, error) {
	id, err := parseID(companyID)
	if err != nil {
		return nil, err
	}
	records, err := s.repos.Assessment.ListSimulationsByCompany(id)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list simulations", err).WithOperation("ListStoredSimulations")
	}
	return records, nil
}

// storeRun persists a simulation payload. Storage failures are logged
// but never fail the simulation itself.
func (s *scenarioServiceImpl) storeRun(companyID uuid.UUID, family string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("failed to encode simulation payload", err, "family", family)
		return
	}
	record := &models.SimulationRecord{
		CompanyID: companyID,
		Family:    family,
		Payload:   data,
	}
	if err := s.repos.Assessment.StoreSimulation(record); err != nil {
		s.log.Error("failed to store simulation", err, "family", family)
	}
}
