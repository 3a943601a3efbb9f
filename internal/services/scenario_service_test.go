package services

import (
	"encoding/json"
	"testing"

	apperrors "github.com/credipyme/risk-api/internal/errors"
	"github.com/credipyme/risk-api/internal/scenario"
	"github.com/credipyme/risk-api/internal/scoring"
)

func newScenarioFixture(t *testing.T) (ScenarioService, string) {
	t.Helper()
	repos := newTestRepos()
	companyID := seedStrongCompany(t, repos)

	engine := scoring.NewRiskEngine()
	assessment := newAssessmentService(repos, engine, noopLogger{})
	if _, err := assessment.AssessCompany(companyID.String()); err != nil {
		t.Fatalf("AssessCompany: %v", err)
	}

	service := newScenarioService(repos, engine, scenario.NewSimulator(), noopLogger{})
	return service, companyID.String()
}

func TestSimulateChangesNeutralReproducesBaseline(t *testing.T) {
	service, companyID := newScenarioFixture(t)

	result, err := service.SimulateChanges(companyID, scoring.ScenarioChanges{})
	if err != nil {
		t.Fatalf("SimulateChanges: %v", err)
	}
	if result.OverallScore != 64.51 {
		t.Errorf("neutral scenario score = %v, want the 64.51 baseline", result.OverallScore)
	}
}

func TestSimulateChangesRevenueDrop(t *testing.T) {
	service, companyID := newScenarioFixture(t)

	baseline, err := service.SimulateChanges(companyID, scoring.ScenarioChanges{})
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	stressed, err := service.SimulateChanges(companyID, scoring.ScenarioChanges{RevenueChangePercent: -40})
	if err != nil {
		t.Fatalf("stressed: %v", err)
	}

	if stressed.OverallScore >= baseline.OverallScore {
		t.Errorf("revenue drop did not lower the score: %v >= %v", stressed.OverallScore, baseline.OverallScore)
	}
}

func TestSimulateFamilyUnknown(t *testing.T) {
	service, companyID := newScenarioFixture(t)

	_, err := service.SimulateFamily(companyID, "lottery_win")
	if code := errCode(t, err); code != apperrors.ErrCodeInvalidInput {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeInvalidInput)
	}
}

func TestSimulateFamilyStoresRun(t *testing.T) {
	service, companyID := newScenarioFixture(t)

	result, err := service.SimulateFamily(companyID, scenario.FamilyRevenue)
	if err != nil {
		t.Fatalf("SimulateFamily: %v", err)
	}
	family, ok := result.(*scenario.RevenueFamily)
	if !ok {
		t.Fatalf("result type = %T, want *scenario.RevenueFamily", result)
	}
	if len(family.Scenarios) != 5 {
		t.Errorf("revenue scenarios = %d, want 5", len(family.Scenarios))
	}

	records, err := service.ListStoredSimulations(companyID)
	if err != nil {
		t.Fatalf("ListStoredSimulations: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("stored runs = %d, want 1", len(records))
	}
	if records[0].Family != scenario.FamilyRevenue {
		t.Errorf("stored family = %q, want %q", records[0].Family, scenario.FamilyRevenue)
	}
	if !json.Valid(records[0].Payload) {
		t.Error("stored payload is not valid JSON")
	}
}

func TestSimulateAllStoresFullReport(t *testing.T) {
	service, companyID := newScenarioFixture(t)

	report, err := service.SimulateAll(companyID)
	if err != nil {
		t.Fatalf("SimulateAll: %v", err)
	}
	if report.Summary.TotalScenariosAnalyzed != 25 {
		t.Errorf("total scenarios = %d, want 25", report.Summary.TotalScenariosAnalyzed)
	}
	if report.CompanyInfo.RUC != "1790012345001" {
		t.Errorf("report RUC = %q, want the company RUC", report.CompanyInfo.RUC)
	}

	records, err := service.ListStoredSimulations(companyID)
	if err != nil {
		t.Fatalf("ListStoredSimulations: %v", err)
	}
	if len(records) != 1 || records[0].Family != "all" {
		t.Fatalf("stored runs = %+v, want a single record with family all", records)
	}
}
