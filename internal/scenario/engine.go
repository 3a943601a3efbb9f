package scenario

import (
	"sync"
	"time"
)

// Simulator runs the what-if families. It is stateless and safe for
// concurrent use.
type Simulator struct{}

func NewSimulator() *Simulator {
	return &Simulator{}
}

// BaseScenario restates the inputs every family projects from.
type BaseScenario struct {
	CurrentRevenue      float64 `json:"current_revenue"`
	CurrentCosts        float64 `json:"current_costs"`
	CurrentProfitMargin float64 `json:"current_profit_margin"`
	CurrentRiskScore    float64 `json:"current_risk_score"`
	CurrentRiskLevel    string  `json:"current_risk_level"`
}

// ReportCompanyInfo is the identity block of a simulation report.
type ReportCompanyInfo struct {
	Name             string  `json:"name"`
	RUC              string  `json:"ruc"`
	Sector           string  `json:"sector"`
	CurrentRiskScore float64 `json:"current_risk_score"`
	CompanySize      string  `json:"company_size"`
}

// FamilyResults holds the outcome of every family for one company.
type FamilyResults struct {
	Revenue   *RevenueFamily   `json:"revenue_scenarios"`
	Cost      *CostFamily      `json:"cost_optimization"`
	Digital   *DigitalFamily   `json:"digital_transformation"`
	Credit    *CreditFamily    `json:"credit_scenarios"`
	Expansion *ExpansionFamily `json:"market_expansion"`
	Shock     *ShockFamily     `json:"economic_shocks"`
}

// ReportSummary is the executive summary attached to a full run.
type ReportSummary struct {
	TotalScenariosAnalyzed   int      `json:"total_scenarios_analyzed"`
	BestImprovementPotential string   `json:"best_improvement_potential"`
	HighestRiskScenario      string   `json:"highest_risk_scenario"`
	RecommendedActionPlan    []string `json:"recommended_action_plan"`
	SimulationConfidence     string   `json:"simulation_confidence"`
}

// SimulationReport is the result of running every family.
type SimulationReport struct {
	CompanyInfo     ReportCompanyInfo `json:"company_info"`
	SimulatedAt     time.Time         `json:"simulation_timestamp"`
	BaseScenario    BaseScenario      `json:"base_scenario"`
	Scenarios       FamilyResults     `json:"scenarios"`
	Recommendations []string          `json:"recommendations"`
	Summary         ReportSummary     `json:"summary"`
}

// SimulateFamily dispatches a single family by name.
func (s *Simulator) SimulateFamily(family string, info CompanyInfo, finances Finances) (interface{}, error) {
	switch family {
	case FamilyRevenue:
		return s.SimulateRevenue(info, finances), nil
	case FamilyCost:
		return s.SimulateCostOptimization(info, finances), nil
	case FamilyDigital:
		return s.SimulateDigitalTransformation(info, finances), nil
	case FamilyCredit:
		return s.SimulateCreditScenarios(info, finances), nil
	case FamilyExpansion:
		return s.SimulateMarketExpansion(info, finances), nil
	case FamilyShock:
		return s.SimulateEconomicShocks(info, finances), nil
	default:
		return nil, unknownFamilyError(family)
	}
}

// SimulateAll runs every family and assembles the full report. The
// families are independent pure functions, so they run concurrently.
func (s *Simulator) SimulateAll(info CompanyInfo, finances Finances) *SimulationReport {
	base := baseRiskScore(info)

	report := &SimulationReport{
		CompanyInfo: ReportCompanyInfo{
			Name:             info.Name,
			RUC:              info.RUC,
			Sector:           info.Sector,
			CurrentRiskScore: base,
			CompanySize:      CompanySize(finances.Revenue),
		},
		SimulatedAt: time.Now().UTC(),
		BaseScenario: BaseScenario{
			CurrentRevenue:      finances.Revenue,
			CurrentCosts:        finances.Costs,
			CurrentProfitMargin: finances.ProfitMargin,
			CurrentRiskScore:    base,
			CurrentRiskLevel:    riskLevelForScore(base),
		},
	}

	var wg sync.WaitGroup
	wg.Add(6)
	go func() { defer wg.Done(); report.Scenarios.Revenue = s.SimulateRevenue(info, finances) }()
	go func() { defer wg.Done(); report.Scenarios.Cost = s.SimulateCostOptimization(info, finances) }()
	go func() { defer wg.Done(); report.Scenarios.Digital = s.SimulateDigitalTransformation(info, finances) }()
	go func() { defer wg.Done(); report.Scenarios.Credit = s.SimulateCreditScenarios(info, finances) }()
	go func() { defer wg.Done(); report.Scenarios.Expansion = s.SimulateMarketExpansion(info, finances) }()
	go func() { defer wg.Done(); report.Scenarios.Shock = s.SimulateEconomicShocks(info, finances) }()
	wg.Wait()

	report.Recommendations = scenarioRecommendations(base)
	report.Summary = buildSummary(report.Scenarios)
	return report
}

func scenarioRecommendations(baseRisk float64) []string {
	switch {
	case baseRisk > 70:
		return []string{"Priorizar escenarios de crecimiento de ingresos y optimización de costos"}
	case baseRisk > 50:
		return []string{"Considerar transformación digital y expansión gradual"}
	default:
		return []string{"Prepararse para shocks económicos y diversificar riesgos"}
	}
}

func buildSummary(results FamilyResults) ReportSummary {
	total := len(results.Revenue.Scenarios) +
		len(results.Cost.Scenarios) +
		len(results.Digital.Scenarios) +
		len(results.Credit.Scenarios) +
		len(results.Expansion.Scenarios) +
		len(results.Shock.Scenarios)

	return ReportSummary{
		TotalScenariosAnalyzed:   total,
		BestImprovementPotential: "Transformación digital + optimización de costos",
		HighestRiskScenario:      "Recesión severa con disrupción de supply chain",
		RecommendedActionPlan: []string{
			"Implementar digitalización básica (3 meses)",
			"Optimizar costos operativos (6 meses)",
			"Construir reservas de efectivo",
			"Diversificar fuentes de ingresos",
		},
		SimulationConfidence: "85%",
	}
}

// SurvivalRates extracts the per-shock survival probabilities in the
// fixed definition order, for downstream resilience scoring.
func (f *ShockFamily) SurvivalRates() []float64 {
	rates := make([]float64, 0, len(shockDefs))
	for _, def := range shockDefs {
		if sc, ok := f.Scenarios[def.name]; ok {
			rates = append(rates, sc.SurvivalProbability)
		}
	}
	return rates
}
