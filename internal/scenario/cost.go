package scenario

// Each percentage point of margin gained moves the score by this many
// points.
const marginToRiskFactor = 30

// CostScenario is one cost-optimization sub-scenario.
type CostScenario struct {
	Description         string   `json:"description"`
	CostReduction       float64  `json:"cost_reduction"`
	InvestmentRequired  float64  `json:"investment_required"`
	ImplementationTime  string   `json:"implementation_time"`
	RiskFactors         []string `json:"risk_factors"`
	SuccessProbability  float64  `json:"success_probability"`
	CurrentCosts        float64  `json:"current_costs"`
	NewCosts            float64  `json:"new_costs"`
	CostSavings         float64  `json:"cost_savings"`
	CurrentProfitMargin float64  `json:"current_profit_margin"`
	NewProfitMargin     float64  `json:"new_profit_margin"`
	MarginImprovement   float64  `json:"margin_improvement"`
	RiskImprovement     float64  `json:"risk_improvement"`
	NewRiskScore        float64  `json:"new_risk_score"`
	// ROIMonths is nil when the scenario saves nothing to recoup the
	// investment from.
	ROIMonths *float64 `json:"roi_months"`
}

// CostStructure summarizes the baseline cost position.
type CostStructure struct {
	TotalCosts   float64 `json:"total_costs"`
	ProfitMargin float64 `json:"profit_margin"`
}

// CostFamily groups the cost-optimization sub-scenarios.
type CostFamily struct {
	ScenarioType         string                   `json:"scenario_type"`
	CurrentCostStructure CostStructure            `json:"current_cost_structure"`
	Scenarios            map[string]*CostScenario `json:"scenarios"`
	BestROI              string                   `json:"best_roi"`
	HighestImpact        string                   `json:"highest_impact"`
}

type costDef struct {
	name               string
	description        string
	costReduction      float64
	investmentShare    float64
	implementationTime string
	riskFactors        []string
	successProbability float64
}

var costDefs = []costDef{
	{
		name:               "aggressive_optimization",
		description:        "Optimización agresiva: reducción del 20% en costos operativos",
		costReduction:      20,
		investmentShare:    0.05,
		implementationTime: "6 months",
		riskFactors: []string{
			"Posible reducción en calidad",
			"Resistencia del personal",
			"Inversión inicial alta",
		},
		successProbability: 0.3,
	},
	{
		name:               "moderate_optimization",
		description:        "Optimización moderada: reducción del 12% en costos",
		costReduction:      12,
		investmentShare:    0.03,
		implementationTime: "4 months",
		riskFactors: []string{
			"Cambios en procesos",
			"Capacitación necesaria",
		},
		successProbability: 0.6,
	},
	{
		name:               "gradual_optimization",
		description:        "Optimización gradual: reducción del 7% en costos",
		costReduction:      7,
		investmentShare:    0.01,
		implementationTime: "3 months",
		riskFactors: []string{
			"Resultados limitados",
			"Proceso lento",
		},
		successProbability: 0.8,
	},
	{
		name:               "digital_automation",
		description:        "Automatización digital: reducción del 15% con tecnología",
		costReduction:      15,
		investmentShare:    0.08,
		implementationTime: "8 months",
		riskFactors: []string{
			"Alta inversión tecnológica",
			"Curva de aprendizaje",
			"Dependencia tecnológica",
		},
		successProbability: 0.4,
	},
}

// SimulateCostOptimization projects the score under the four cost-cut
// programs. Margin gains subtract from the risk score.
func (s *Simulator) SimulateCostOptimization(info CompanyInfo, finances Finances) *CostFamily {
	base := baseRiskScore(info)

	family := &CostFamily{
		ScenarioType: FamilyCost,
		CurrentCostStructure: CostStructure{
			TotalCosts:   finances.Costs,
			ProfitMargin: round2(finances.ProfitMargin * 100),
		},
		Scenarios: make(map[string]*CostScenario, len(costDefs)),
	}

	var bestROI float64
	var highestImpact float64
	for i, def := range costDefs {
		newCosts := finances.Costs * (1 - def.costReduction/100)
		newMargin := finances.ProfitMargin + def.costReduction/100
		savings := finances.Costs - newCosts
		investment := finances.Costs * def.investmentShare

		improvement := (newMargin - finances.ProfitMargin) * marginToRiskFactor
		newScore := round2(clampScore(base - improvement))

		var roiMonths *float64
		if savings > 0 {
			roi := investment / (savings / 12)
			roiMonths = &roi
		}

		sc := &CostScenario{
			Description:         def.description,
			CostReduction:       def.costReduction,
			InvestmentRequired:  investment,
			ImplementationTime:  def.implementationTime,
			RiskFactors:         def.riskFactors,
			SuccessProbability:  def.successProbability,
			CurrentCosts:        finances.Costs,
			NewCosts:            newCosts,
			CostSavings:         savings,
			CurrentProfitMargin: round2(finances.ProfitMargin * 100),
			NewProfitMargin:     round2(newMargin * 100),
			MarginImprovement:   round2((newMargin - finances.ProfitMargin) * 100),
			RiskImprovement:     round2(improvement),
			NewRiskScore:        newScore,
			ROIMonths:           roiMonths,
		}
		family.Scenarios[def.name] = sc

		if roiMonths != nil && (family.BestROI == "" || *roiMonths < bestROI) {
			bestROI = *roiMonths
			family.BestROI = def.name
		}
		if i == 0 || sc.RiskImprovement > highestImpact {
			highestImpact = sc.RiskImprovement
			family.HighestImpact = def.name
		}
	}

	return family
}
