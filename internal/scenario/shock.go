package scenario

import (
	"fmt"
	"math"
)

// Each combined point of revenue loss and cost inflation adds half a
// point of risk.
const stressRiskFactor = 0.5

// ShockScenario is one macroeconomic stress case.
type ShockScenario struct {
	Description          string   `json:"description"`
	RevenueImpact        float64  `json:"revenue_impact"`
	CostIncrease         float64  `json:"cost_increase"`
	DurationMonths       int      `json:"duration_months"`
	Probability          float64  `json:"probability"`
	MitigationStrategies []string `json:"mitigation_strategies"`
	CurrentRevenue       float64  `json:"current_revenue"`
	ProjectedRevenue     float64  `json:"projected_revenue"`
	CurrentCosts         float64  `json:"current_costs"`
	ProjectedCosts       float64  `json:"projected_costs"`
	ProfitImpact         float64  `json:"profit_impact"`
	MonthlyCashImpact    float64  `json:"monthly_cash_impact"`
	TotalCashImpact      float64  `json:"total_cash_impact"`
	// MonthsOfSurvival is nil when the shock does not burn cash.
	MonthsOfSurvival      *float64 `json:"months_of_survival"`
	SurvivalProbability   float64  `json:"survival_probability"`
	FinancialStressImpact float64  `json:"financial_stress_impact"`
	NewRiskScore          float64  `json:"new_risk_score"`
	RecoveryTimeEstimate  string   `json:"recovery_time_estimate"`
}

// FinancialResilience summarizes the cash cushion going into a shock.
type FinancialResilience struct {
	CashReserves           float64 `json:"cash_reserves"`
	MonthsOfExpensesCovered float64 `json:"months_of_expenses_covered"`
	FinancialFlexibility   string  `json:"financial_flexibility"`
}

// ShockFamily groups the stress scenarios.
type ShockFamily struct {
	ScenarioType        string                    `json:"scenario_type"`
	FinancialResilience FinancialResilience       `json:"current_financial_resilience"`
	Scenarios           map[string]*ShockScenario `json:"scenarios"`
	HighestRiskScenario string                    `json:"highest_risk_scenario"`
	Preparedness        []string                  `json:"preparedness_recommendations"`
}

type shockDef struct {
	name           string
	description    string
	revenueImpact  float64
	costIncrease   float64
	durationMonths int
	probability    float64
	mitigations    []string
}

var shockDefs = []shockDef{
	{
		name:           "mild_recession",
		description:    "Recesión leve: reducción del 15% en la demanda",
		revenueImpact:  -15,
		costIncrease:   5,
		durationMonths: 12,
		probability:    0.3,
		mitigations: []string{
			"Reducir gastos no esenciales",
			"Diversificar clientes",
			"Negociar términos con proveedores",
		},
	},
	{
		name:           "severe_recession",
		description:    "Recesión severa: reducción del 30% en la demanda",
		revenueImpact:  -30,
		costIncrease:   10,
		durationMonths: 18,
		probability:    0.15,
		mitigations: []string{
			"Reestructuración profunda",
			"Reducción de personal",
			"Buscar nuevos mercados",
		},
	},
	{
		name:           "supply_chain_disruption",
		description:    "Disrupción en cadena de suministro",
		revenueImpact:  -20,
		costIncrease:   25,
		durationMonths: 9,
		probability:    0.25,
		mitigations: []string{
			"Diversificar proveedores",
			"Aumentar inventarios",
			"Buscar proveedores locales",
		},
	},
	{
		name:           "sector_specific_crisis",
		description:    "Crisis específica del sector",
		revenueImpact:  -25,
		costIncrease:   8,
		durationMonths: 15,
		probability:    0.20,
		mitigations: []string{
			"Pivotar a sectores relacionados",
			"Innovar en productos/servicios",
			"Formar alianzas estratégicas",
		},
	},
}

func survivalProbability(monthsOfSurvival *float64, duration int) float64 {
	if monthsOfSurvival == nil {
		return 0.9
	}
	months := *monthsOfSurvival
	d := float64(duration)
	switch {
	case months >= d:
		return 0.9
	case months >= d*0.7:
		return 0.7
	case months >= d*0.5:
		return 0.5
	default:
		return 0.2
	}
}

func shockPreparedness(cashReserves, revenue float64) []string {
	var recommendations []string

	var cashMonths float64
	if revenue > 0 {
		cashMonths = cashReserves / (revenue / 12)
	}
	if cashMonths < 3 {
		recommendations = append(recommendations, "Incrementar reservas de efectivo a mínimo 3 meses de gastos")
	}
	if cashMonths < 6 {
		recommendations = append(recommendations, "Establecer línea de crédito de emergencia")
	}
	recommendations = append(recommendations,
		"Diversificar proveedores y clientes",
		"Crear plan de contingencia operativo",
	)
	return recommendations
}

// SimulateEconomicShocks stress-tests the company against four macro
// scenarios and estimates how long the cash cushion lasts in each.
func (s *Simulator) SimulateEconomicShocks(info CompanyInfo, finances Finances) *ShockFamily {
	base := baseRiskScore(info)
	currentProfit := finances.Revenue - finances.Costs

	var monthsCovered float64
	if finances.Costs > 0 {
		monthsCovered = round1(finances.CashReserves / (finances.Costs / 12))
	}

	family := &ShockFamily{
		ScenarioType: FamilyShock,
		FinancialResilience: FinancialResilience{
			CashReserves:            finances.CashReserves,
			MonthsOfExpensesCovered: monthsCovered,
			FinancialFlexibility:    "medium",
		},
		Scenarios:    make(map[string]*ShockScenario, len(shockDefs)),
		Preparedness: shockPreparedness(finances.CashReserves, finances.Revenue),
	}

	var worstScore float64
	for i, def := range shockDefs {
		newRevenue := finances.Revenue * (1 + def.revenueImpact/100)
		newCosts := finances.Costs * (1 + def.costIncrease/100)
		newProfit := newRevenue - newCosts

		monthlyCashImpact := (newProfit - currentProfit) / 12
		totalCashImpact := monthlyCashImpact * float64(def.durationMonths)

		var survival *float64
		if monthlyCashImpact < 0 {
			months := round1(finances.CashReserves / math.Abs(monthlyCashImpact))
			survival = &months
		}

		stress := (math.Abs(def.revenueImpact) + def.costIncrease) * stressRiskFactor
		newScore := round2(math.Min(100, base+stress))

		sc := &ShockScenario{
			Description:           def.description,
			RevenueImpact:         def.revenueImpact,
			CostIncrease:          def.costIncrease,
			DurationMonths:        def.durationMonths,
			Probability:           def.probability,
			MitigationStrategies:  def.mitigations,
			CurrentRevenue:        finances.Revenue,
			ProjectedRevenue:      round2(newRevenue),
			CurrentCosts:          finances.Costs,
			ProjectedCosts:        round2(newCosts),
			ProfitImpact:          round2(newProfit - currentProfit),
			MonthlyCashImpact:     round2(monthlyCashImpact),
			TotalCashImpact:       round2(totalCashImpact),
			MonthsOfSurvival:      survival,
			SurvivalProbability:   survivalProbability(survival, def.durationMonths),
			FinancialStressImpact: round2(stress),
			NewRiskScore:          newScore,
			RecoveryTimeEstimate:  fmt.Sprintf("%d months", def.durationMonths+6),
		}
		family.Scenarios[def.name] = sc

		if i == 0 || sc.NewRiskScore > worstScore {
			worstScore = sc.NewRiskScore
			family.HighestRiskScenario = def.name
		}
	}

	return family
}
