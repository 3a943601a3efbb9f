package scenario

// RevenueScenario is one projected revenue sub-scenario.
type RevenueScenario struct {
	Description         string            `json:"description"`
	RevenueChange       float64           `json:"revenue_change"`
	Probability         float64           `json:"probability"`
	Timeframe           string            `json:"timeframe"`
	Assumptions         []string          `json:"assumptions"`
	CurrentRevenue      float64           `json:"current_revenue"`
	ProjectedRevenue    float64           `json:"projected_revenue"`
	RevenueImpactOnRisk float64           `json:"revenue_impact_on_risk"`
	NewRiskScore        float64           `json:"new_risk_score"`
	NewRiskLevel        string            `json:"new_risk_level"`
	CreditLimitChange   CreditLimitChange `json:"credit_limit_change"`
}

// CreditLimitChange describes how the suggested limit moves between
// two scores.
type CreditLimitChange struct {
	OldLimit         float64 `json:"old_limit"`
	NewLimit         float64 `json:"new_limit"`
	ChangeAmount     float64 `json:"change_amount"`
	ChangePercentage float64 `json:"change_percentage"`
}

// RevenueFamily groups the five revenue sub-scenarios with their
// selectors.
type RevenueFamily struct {
	ScenarioType   string                      `json:"scenario_type"`
	CurrentRevenue float64                     `json:"current_revenue"`
	CompanySize    string                      `json:"company_size"`
	Scenarios      map[string]*RevenueScenario `json:"scenarios"`
	BestCase       string                      `json:"best_case"`
	WorstCase      string                      `json:"worst_case"`
	MostLikely     string                      `json:"most_likely"`
}

type revenueDef struct {
	name          string
	description   string
	revenueChange float64
	// probability is the raw weight before the size adjustment below.
	probability       float64
	scaleByGrowth     bool
	scaleByRisk       bool
	assumptions       []string
}

var revenueDefs = []revenueDef{
	{
		name:          "optimistic_growth",
		description:   "Crecimiento optimista del 25% en ingresos",
		revenueChange: 25,
		probability:   0.2,
		scaleByGrowth: true,
		assumptions: []string{
			"Expansión exitosa de la base de clientes",
			"Condiciones económicas favorables",
			"Sin competencia significativa nueva",
		},
	},
	{
		name:          "moderate_growth",
		description:   "Crecimiento moderado del 15% en ingresos",
		revenueChange: 15,
		probability:   0.5,
		scaleByGrowth: true,
		assumptions: []string{
			"Crecimiento orgánico estable",
			"Retención de clientes actuales",
			"Condiciones de mercado normales",
		},
	},
	{
		name:          "conservative_growth",
		description:   "Crecimiento conservador del 8% en ingresos",
		revenueChange: 8,
		probability:   0.7,
		assumptions: []string{
			"Crecimiento mínimo del mercado",
			"Mantenimiento de posición actual",
			"Sin inversiones significativas",
		},
	},
	{
		name:          "stagnation",
		description:   "Sin crecimiento en ingresos",
		revenueChange: 0,
		probability:   0.2,
		assumptions: []string{
			"Mercado saturado",
			"Alta competencia",
			"Restricciones económicas",
		},
	},
	{
		name:          "decline",
		description:   "Declive del 10% en ingresos",
		revenueChange: -10,
		probability:   0.15,
		scaleByRisk:   true,
		assumptions: []string{
			"Pérdida de clientes clave",
			"Entrada de nuevos competidores",
			"Condiciones económicas adversas",
		},
	},
}

// SimulateRevenue projects the score under the five revenue deltas.
func (s *Simulator) SimulateRevenue(info CompanyInfo, finances Finances) *RevenueFamily {
	base := baseRiskScore(info)
	size := CompanySize(finances.Revenue)
	profile := profileForSize(size)

	family := &RevenueFamily{
		ScenarioType:   FamilyRevenue,
		CurrentRevenue: finances.Revenue,
		CompanySize:    size,
		Scenarios:      make(map[string]*RevenueScenario, len(revenueDefs)),
	}

	var bestScore, worstScore, topProbability float64
	for i, def := range revenueDefs {
		probability := def.probability
		if def.scaleByGrowth {
			probability *= profile.growthPotential
		}
		if def.scaleByRisk {
			probability *= profile.risk
		}

		impact := revenueImpactOnRisk(def.revenueChange, size)
		newScore := round2(clampScore(base + impact))

		sc := &RevenueScenario{
			Description:         def.description,
			RevenueChange:       def.revenueChange,
			Probability:         probability,
			Timeframe:           "12 months",
			Assumptions:         def.assumptions,
			CurrentRevenue:      finances.Revenue,
			ProjectedRevenue:    finances.Revenue * (1 + def.revenueChange/100),
			RevenueImpactOnRisk: impact,
			NewRiskScore:        newScore,
			NewRiskLevel:        riskLevelForScore(newScore),
			CreditLimitChange:   creditLimitChange(base, newScore),
		}
		family.Scenarios[def.name] = sc

		if i == 0 || sc.NewRiskScore > bestScore {
			bestScore = sc.NewRiskScore
			family.BestCase = def.name
		}
		if i == 0 || sc.NewRiskScore < worstScore {
			worstScore = sc.NewRiskScore
			family.WorstCase = def.name
		}
		if i == 0 || sc.Probability > topProbability {
			topProbability = sc.Probability
			family.MostLikely = def.name
		}
	}

	return family
}

func creditLimitChange(oldScore, newScore float64) CreditLimitChange {
	oldLimit := creditLimitForScore(oldScore)
	newLimit := creditLimitForScore(newScore)

	change := CreditLimitChange{
		OldLimit:     oldLimit,
		NewLimit:     newLimit,
		ChangeAmount: newLimit - oldLimit,
	}
	if oldLimit > 0 {
		change.ChangePercentage = (newLimit - oldLimit) / oldLimit * 100
	}
	return change
}
