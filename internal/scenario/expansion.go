package scenario

// Expansion moves the score in both directions: diversification helps,
// the capital outlay hurts.
const (
	diversificationFactor = 8
	investmentRiskFactor  = 20
	expansionProfitMargin = 0.2
)

// ExpansionScenario is one market-expansion strategy.
type ExpansionScenario struct {
	Description            string   `json:"description"`
	InvestmentRequired     float64  `json:"investment_required"`
	ExpectedRevenueIncrease float64 `json:"expected_revenue_increase"`
	MarketPenetrationTime  string   `json:"market_penetration_time"`
	RiskFactors            []string `json:"risk_factors"`
	SuccessProbability     float64  `json:"success_probability"`
	CurrentRevenue         float64  `json:"current_revenue"`
	ProjectedRevenue       float64  `json:"projected_revenue"`
	AdditionalRevenue      float64  `json:"additional_revenue"`
	DiversificationBenefit float64  `json:"diversification_benefit"`
	InvestmentRisk         float64  `json:"investment_risk"`
	NetRiskImpact          float64  `json:"net_risk_impact"`
	NewRiskScore           float64  `json:"new_risk_score"`
	ExpectedROI            float64  `json:"expected_roi"`
	RiskAdjustedROI        float64  `json:"risk_adjusted_roi"`
	// BreakEvenMonths is nil when the strategy never pays itself back.
	BreakEvenMonths *float64 `json:"break_even_months"`
}

// MarketPosition summarizes the starting point for expansion.
type MarketPosition struct {
	Revenue            float64 `json:"revenue"`
	Sector             string  `json:"sector"`
	ExpansionReadiness string  `json:"expansion_readiness"`
}

// ExpansionFamily groups the four expansion strategies.
type ExpansionFamily struct {
	ScenarioType           string                        `json:"scenario_type"`
	CurrentMarketPosition  MarketPosition                `json:"current_market_position"`
	Scenarios              map[string]*ExpansionScenario `json:"scenarios"`
	RecommendedExpansion   string                        `json:"recommended_expansion"`
	StrategyRecommendation string                        `json:"expansion_strategy_recommendation"`
}

type expansionDef struct {
	name              string
	description       string
	investmentShare   float64
	revenueIncrease   float64
	penetrationTime   string
	riskFactors       []string
	successProbability float64
}

var expansionDefs = []expansionDef{
	{
		name:            "geographic_expansion",
		description:     "Expansión geográfica a nuevas ciudades",
		investmentShare: 0.20,
		revenueIncrease: 30,
		penetrationTime: "18 months",
		riskFactors: []string{
			"Desconocimiento del mercado local",
			"Competencia establecida",
			"Costos logísticos",
		},
		successProbability: 0.4,
	},
	{
		name:            "product_diversification",
		description:     "Diversificación de productos/servicios",
		investmentShare: 0.15,
		revenueIncrease: 25,
		penetrationTime: "12 months",
		riskFactors: []string{
			"Desarrollo de nuevas competencias",
			"Inversión en R&D",
			"Riesgo de canibalización",
		},
		successProbability: 0.5,
	},
	{
		name:            "digital_market_entry",
		description:     "Entrada a mercados digitales/online",
		investmentShare: 0.10,
		revenueIncrease: 40,
		penetrationTime: "9 months",
		riskFactors: []string{
			"Competencia digital intensa",
			"Curva de aprendizaje tecnológica",
			"Cambio en modelo de negocio",
		},
		successProbability: 0.6,
	},
	{
		name:            "b2b_expansion",
		description:     "Expansión al mercado B2B/empresarial",
		investmentShare: 0.12,
		revenueIncrease: 35,
		penetrationTime: "15 months",
		riskFactors: []string{
			"Ciclos de venta más largos",
			"Necesidad de certificaciones",
			"Cambio en estructura de ventas",
		},
		successProbability: 0.45,
	},
}

// SimulateMarketExpansion projects the score and ROI for four growth
// strategies and picks the best risk-adjusted one.
func (s *Simulator) SimulateMarketExpansion(info CompanyInfo, finances Finances) *ExpansionFamily {
	base := baseRiskScore(info)
	sector := info.Sector
	if sector == "" {
		sector = "Otros"
	}

	family := &ExpansionFamily{
		ScenarioType: FamilyExpansion,
		CurrentMarketPosition: MarketPosition{
			Revenue:            finances.Revenue,
			Sector:             sector,
			ExpansionReadiness: "medium",
		},
		Scenarios: make(map[string]*ExpansionScenario, len(expansionDefs)),
	}
	if base < 60 {
		family.StrategyRecommendation = "Expansión agresiva recomendada"
	} else {
		family.StrategyRecommendation = "Expansión conservadora recomendada"
	}

	var topROI float64
	for i, def := range expansionDefs {
		investment := finances.Revenue * def.investmentShare
		newRevenue := finances.Revenue * (1 + def.revenueIncrease/100)
		additionalRevenue := newRevenue - finances.Revenue

		diversification := def.revenueIncrease / 100 * diversificationFactor
		var investmentRisk float64
		if finances.Revenue > 0 {
			investmentRisk = investment / finances.Revenue * investmentRiskFactor
		}
		netImpact := diversification - investmentRisk
		newScore := round2(clampScore(base + netImpact))

		annualProfit := additionalRevenue * expansionProfitMargin
		var expectedROI float64
		if investment > 0 {
			expectedROI = (annualProfit - investment) / investment
		}
		riskAdjustedROI := expectedROI * def.successProbability

		var breakEven *float64
		if annualProfit > 0 {
			months := round1(investment / (annualProfit / 12))
			breakEven = &months
		}

		sc := &ExpansionScenario{
			Description:             def.description,
			InvestmentRequired:      investment,
			ExpectedRevenueIncrease: def.revenueIncrease,
			MarketPenetrationTime:   def.penetrationTime,
			RiskFactors:             def.riskFactors,
			SuccessProbability:      def.successProbability,
			CurrentRevenue:          finances.Revenue,
			ProjectedRevenue:        round2(newRevenue),
			AdditionalRevenue:       round2(additionalRevenue),
			DiversificationBenefit:  round2(diversification),
			InvestmentRisk:          round2(investmentRisk),
			NetRiskImpact:           round2(netImpact),
			NewRiskScore:            newScore,
			ExpectedROI:             round2(expectedROI * 100),
			RiskAdjustedROI:         round2(riskAdjustedROI * 100),
			BreakEvenMonths:         breakEven,
		}
		family.Scenarios[def.name] = sc

		if i == 0 || sc.RiskAdjustedROI > topROI {
			topROI = sc.RiskAdjustedROI
			family.RecommendedExpansion = def.name
		}
	}

	return family
}
