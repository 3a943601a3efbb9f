package scenario

// CreditScenario is one proposed credit product and its payment-capacity
// analysis.
type CreditScenario struct {
	Description           string  `json:"description"`
	CreditAmount          float64 `json:"credit_amount"`
	InterestRate          float64 `json:"interest_rate"`
	TermMonths            int     `json:"term_months"`
	Purpose               string  `json:"purpose"`
	CollateralRequired    string  `json:"collateral_required"`
	MonthlyPayment        float64 `json:"monthly_payment"`
	TotalInterest         float64 `json:"total_interest"`
	TotalCost             float64 `json:"total_cost"`
	PaymentToRevenueRatio float64 `json:"payment_to_revenue_ratio"`
	Viability             string  `json:"viability"`
	ApprovalProbability   float64 `json:"approval_probability"`
	LeverageImpact        float64 `json:"leverage_impact"`
	NewRiskScore          float64 `json:"new_risk_score"`
	Recommended           bool    `json:"recommended"`
}

// FinancialCapacity summarizes what the company can carry.
type FinancialCapacity struct {
	MonthlyRevenue float64 `json:"monthly_revenue"`
	CurrentAssets  float64 `json:"current_assets"`
	DebtCapacity   float64 `json:"debt_capacity"`
}

// CreditFamily groups the four credit products.
type CreditFamily struct {
	ScenarioType      string                     `json:"scenario_type"`
	FinancialCapacity FinancialCapacity          `json:"company_financial_capacity"`
	Scenarios         map[string]*CreditScenario `json:"scenarios"`
	RecommendedCredits []string                  `json:"recommended_credits"`
	CreditReadiness   float64                    `json:"credit_readiness_score"`
}

type creditDef struct {
	name        string
	description string
	// amount and rateMarkup parameterize the product relative to the
	// company's revenue or assets and its base rate.
	amountOfRevenue float64
	amountOfAssets  float64
	rateMarkup      float64
	termMonths      int
	purpose         string
	collateral      string
}

var creditDefs = []creditDef{
	{
		name:            "working_capital_credit",
		description:     "Crédito de capital de trabajo",
		amountOfRevenue: 0.15,
		termMonths:      12,
		purpose:         "Financiar operaciones diarias y compra de inventario",
		collateral:      "Inventario y cuentas por cobrar",
	},
	{
		name:            "expansion_credit",
		description:     "Crédito para expansión de negocio",
		amountOfRevenue: 0.30,
		rateMarkup:      2,
		termMonths:      36,
		purpose:         "Expandir operaciones, nuevos productos o mercados",
		collateral:      "Activos fijos de la empresa",
	},
	{
		name:           "equipment_financing",
		description:    "Financiamiento de equipos",
		amountOfAssets: 0.25,
		rateMarkup:     1,
		termMonths:     48,
		purpose:        "Compra de maquinaria y equipos",
		collateral:     "Los mismos equipos financiados",
	},
	{
		name:            "emergency_credit",
		description:     "Línea de crédito de emergencia",
		amountOfRevenue: 0.08,
		rateMarkup:      3,
		termMonths:      6,
		purpose:         "Situaciones imprevistas o crisis temporales",
		collateral:      "Garantía personal del propietario",
	},
}

// leverageImpact scores the risk effect of taking on new debt. Modest
// leverage slightly improves the score through access to capital.
func leverageImpact(creditAmount, assets float64) float64 {
	if assets <= 0 {
		return 10
	}
	ratio := creditAmount / assets
	switch {
	case ratio > 0.5:
		return 10
	case ratio > 0.3:
		return 5
	default:
		return -2
	}
}

// CreditReadinessScore is the inverse of the risk score, clamped.
func CreditReadinessScore(baseRisk float64) float64 {
	return clampScore(100 - baseRisk)
}

// SimulateCreditScenarios evaluates four credit products against the
// company's payment capacity.
func (s *Simulator) SimulateCreditScenarios(info CompanyInfo, finances Finances) *CreditFamily {
	base := baseRiskScore(info)
	baseRate := interestRateForScore(base)
	monthlyRevenue := finances.Revenue / 12

	family := &CreditFamily{
		ScenarioType: FamilyCredit,
		FinancialCapacity: FinancialCapacity{
			MonthlyRevenue: round2(monthlyRevenue),
			CurrentAssets:  finances.Assets,
			DebtCapacity:   round2(monthlyRevenue * 0.25),
		},
		Scenarios: make(map[string]*CreditScenario, len(creditDefs)),
	}

	for _, def := range creditDefs {
		amount := finances.Revenue * def.amountOfRevenue
		if def.amountOfAssets > 0 {
			amount = finances.Assets * def.amountOfAssets
		}
		rate := baseRate + def.rateMarkup

		payment := monthlyPayment(amount, rate, def.termMonths)
		totalInterest := payment*float64(def.termMonths) - amount

		var paymentRatio float64
		if monthlyRevenue > 0 {
			paymentRatio = payment / monthlyRevenue
		}

		var viability string
		var approval float64
		switch {
		case paymentRatio <= 0.15:
			viability = "alta"
			approval = 0.8
		case paymentRatio <= 0.25:
			viability = "media"
			approval = 0.6
		default:
			viability = "baja"
			approval = 0.3
		}

		leverage := leverageImpact(amount, finances.Assets)
		newScore := round2(clampScore(base + leverage))

		sc := &CreditScenario{
			Description:           def.description,
			CreditAmount:          amount,
			InterestRate:          rate,
			TermMonths:            def.termMonths,
			Purpose:               def.purpose,
			CollateralRequired:    def.collateral,
			MonthlyPayment:        round2(payment),
			TotalInterest:         round2(totalInterest),
			TotalCost:             round2(amount + totalInterest),
			PaymentToRevenueRatio: round2(paymentRatio * 100),
			Viability:             viability,
			ApprovalProbability:   approval,
			LeverageImpact:        round2(leverage),
			NewRiskScore:          newScore,
			Recommended:           approval >= 0.6 && paymentRatio <= 0.20,
		}
		family.Scenarios[def.name] = sc
		if sc.Recommended {
			family.RecommendedCredits = append(family.RecommendedCredits, def.name)
		}
	}

	family.CreditReadiness = CreditReadinessScore(base)
	return family
}
