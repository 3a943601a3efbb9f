// Package scenario projects a company's risk score forward under
// parameterized hypotheses: revenue growth, cost cuts, digitalization,
// new credit exposure, market expansion and macro shocks. Every
// simulation is a pure function of its inputs and the fixed coefficient
// tables below.
package scenario

import (
	"math"

	apperrors "github.com/credipyme/risk-api/internal/errors"
)

// Scenario family names accepted by Simulator.SimulateFamily.
const (
	FamilyRevenue   = "revenue_scenarios"
	FamilyCost      = "cost_optimization"
	FamilyDigital   = "digital_transformation"
	FamilyCredit    = "credit_scenarios"
	FamilyExpansion = "market_expansion"
	FamilyShock     = "economic_shocks"
)

// Families lists every scenario family in presentation order.
var Families = []string{
	FamilyRevenue, FamilyCost, FamilyDigital,
	FamilyCredit, FamilyExpansion, FamilyShock,
}

// CompanyInfo identifies the company being simulated and its current
// standing. RiskScore defaults to the neutral 50 when unset.
type CompanyInfo struct {
	Name         string  `json:"name"`
	RUC          string  `json:"ruc"`
	Sector       string  `json:"sector"`
	RiskScore    float64 `json:"current_risk_score"`
	DigitalScore float64 `json:"digital_score"`
}

// Finances is the extracted financial baseline the families project
// from.
type Finances struct {
	Revenue      float64 `json:"revenue"`
	Costs        float64 `json:"costs"`
	ProfitMargin float64 `json:"profit_margin"`
	Assets       float64 `json:"assets"`
	CashReserves float64 `json:"cash_reserves"`
}

// Default financial assumptions applied when statements are missing:
// cost base at 70% of revenue, a 15% margin, assets at 1.2x revenue and
// cash reserves at 10% of revenue.
const (
	defaultRevenue       = 500000.0
	defaultCostShare     = 0.7
	defaultProfitMargin  = 0.15
	defaultAssetFactor   = 1.2
	defaultReserveFactor = 0.1
)

// FinancesFromRevenue builds a baseline from a known revenue figure,
// filling the rest with the standard assumptions. Non-positive revenue
// falls back to the default.
func FinancesFromRevenue(revenue float64) Finances {
	if revenue <= 0 {
		revenue = defaultRevenue
	}
	return Finances{
		Revenue:      revenue,
		Costs:        revenue * defaultCostShare,
		ProfitMargin: defaultProfitMargin,
		Assets:       revenue * defaultAssetFactor,
		CashReserves: revenue * defaultReserveFactor,
	}
}

// Company size tiers by annual revenue.
const (
	SizeMicro  = "micro"
	SizeSmall  = "small"
	SizeMedium = "medium"
)

// sizeProfile adjusts scenario probabilities and impacts: smaller
// companies move faster but carry more downside risk.
type sizeProfile struct {
	agility         float64
	risk            float64
	growthPotential float64
}

var sizeProfiles = map[string]sizeProfile{
	SizeMicro:  {agility: 1.3, risk: 1.4, growthPotential: 1.2},
	SizeSmall:  {agility: 1.1, risk: 1.2, growthPotential: 1.1},
	SizeMedium: {agility: 0.9, risk: 1.0, growthPotential: 1.0},
}

// CompanySize classifies a company by annual revenue.
func CompanySize(revenue float64) string {
	switch {
	case revenue < 300000:
		return SizeMicro
	case revenue < 1000000:
		return SizeSmall
	default:
		return SizeMedium
	}
}

func profileForSize(size string) sizeProfile {
	if p, ok := sizeProfiles[size]; ok {
		return p
	}
	return sizeProfiles[SizeMedium]
}

// riskLevelForScore maps a projected score to the simulator's own risk
// scale. The thresholds are deliberately stricter than the core
// classifier's; the credit-rate steps below are keyed to them.
func riskLevelForScore(score float64) string {
	switch {
	case score >= 80:
		return "low"
	case score >= 60:
		return "medium"
	default:
		return "high"
	}
}

// creditLimitForScore converts a risk score to a suggested credit
// limit via a fixed step function.
func creditLimitForScore(score float64) float64 {
	switch {
	case score >= 80:
		return 100000
	case score >= 70:
		return 75000
	case score >= 60:
		return 50000
	case score >= 40:
		return 25000
	default:
		return 10000
	}
}

// interestRateForScore derives the base annual rate for new credit
// from the current score.
func interestRateForScore(score float64) float64 {
	switch {
	case score >= 80:
		return 12.0
	case score >= 60:
		return 15.0
	default:
		return 20.0
	}
}

// monthlyPayment computes the standard fixed-rate amortized payment.
func monthlyPayment(principal, annualRate float64, months int) float64 {
	monthlyRate := annualRate / 100 / 12
	if monthlyRate == 0 {
		return principal / float64(months)
	}
	factor := math.Pow(1+monthlyRate, float64(months))
	return principal * (monthlyRate * factor) / (factor - 1)
}

// revenueImpactOnRisk converts a revenue delta into a score movement.
// Growth reduces risk, so the sign is negative for positive deltas.
func revenueImpactOnRisk(revenueChangePercent float64, size string) float64 {
	return -(revenueChangePercent / 100) * 15 * profileForSize(size).agility
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// baseRiskScore resolves the company's current score, neutral when the
// caller left it unset.
func baseRiskScore(info CompanyInfo) float64 {
	if info.RiskScore == 0 {
		return 50
	}
	return info.RiskScore
}

// unknownFamilyError is the contract-violation error for a family name
// outside the fixed set.
func unknownFamilyError(name string) error {
	return apperrors.InvalidInput("unknown scenario family", nil).
		WithDetails("scenario_family: " + name)
}
