package scoring

import (
	"math"
)

// RiskEngine runs the rule-based credit risk pipeline: feature
// normalization, category scoring, tier classification and the credit
// recommendation. It is stateless; one instance serves all requests.
type RiskEngine struct{}

// NewRiskEngine creates a new risk engine instance
func NewRiskEngine() *RiskEngine {
	return &RiskEngine{}
}

// Risk tiers. Naming is inverted relative to the score: a high score
// means low risk. The 70/40 thresholds are inclusive lower bounds and
// the credit tables below are keyed to them.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Category weights: financial statements dominate, social and business
// reputation split the rest evenly.
const (
	financialWeight = 0.50
	socialWeight    = 0.25
	businessWeight  = 0.25
)

// creditTerms holds the per-tier credit recommendation parameters.
type creditTerms struct {
	multiplier float64
	baseRate   float64
	termMonths int
}

var creditTermsByTier = map[string]creditTerms{
	RiskLow:    {multiplier: 0.30, baseRate: 12.0, termMonths: 36},
	RiskMedium: {multiplier: 0.20, baseRate: 18.0, termMonths: 24},
	RiskHigh:   {multiplier: 0.10, baseRate: 25.0, termMonths: 12},
}

const (
	minCreditLimit  = 5000.0
	minInterestRate = 8.0
	maxInterestRate = 30.0

	// Crude revenue stand-in when no direct figure is available.
	revenueProxyScale = 100000.0

	// Baseline consistency term blended into the confidence estimate.
	confidenceBaseline = 0.8
)

// RiskAssessment is the output of one scoring invocation.
type RiskAssessment struct {
	FinancialScore          float64           `json:"financial_score"`
	SocialMediaScore        float64           `json:"social_media_score"`
	BusinessReputationScore float64           `json:"business_reputation_score"`
	OverallScore            float64           `json:"overall_score"`
	RiskLevel               string            `json:"risk_level"`
	RecommendedCreditLimit  float64           `json:"recommended_credit_limit"`
	RecommendedInterestRate float64           `json:"recommended_interest_rate"`
	RecommendedTermMonths   int               `json:"recommended_term_months"`
	DecisionFactors         map[string]string `json:"decision_factors"`
	ConfidenceLevel         float64           `json:"confidence_level"`
}

// ScenarioChanges are the deltas understood by SimulateScenario. The
// zero value is the neutral scenario and reproduces the baseline.
type ScenarioChanges struct {
	RevenueChangePercent      float64 `json:"revenue_change_percent"`
	ExpenseChangePercent      float64 `json:"expense_change_percent"`
	SocialMediaImprovement    bool    `json:"social_media_improvement"`
	PaymentHistoryImprovement bool    `json:"payment_history_improvement"`
}

// Score normalizes the raw records and runs the full pipeline.
func (e *RiskEngine) Score(fin FinancialRecord, soc SocialRecord, biz BusinessRecord) *RiskAssessment {
	return e.CalculateRiskScore(e.PrepareFeatures(fin, soc, biz))
}

// CalculateRiskScore runs the weighting, classification and
// recommendation steps over a prepared feature set.
func (e *RiskEngine) CalculateRiskScore(features FeatureSet) *RiskAssessment {
	financial := e.CategoryScore(features, financialFeatures)
	social := e.CategoryScore(features, socialFeatures)
	business := e.CategoryScore(features, businessFeatures)

	overall := round2((financial*financialWeight + social*socialWeight + business*businessWeight) * 100)
	level := RiskLevelForScore(overall)

	limit, rate, term := e.creditRecommendation(overall, level, features)

	return &RiskAssessment{
		FinancialScore:          round2(financial * 100),
		SocialMediaScore:        round2(social * 100),
		BusinessReputationScore: round2(business * 100),
		OverallScore:            overall,
		RiskLevel:               level,
		RecommendedCreditLimit:  limit,
		RecommendedInterestRate: rate,
		RecommendedTermMonths:   term,
		DecisionFactors:         e.decisionFactors(features),
		ConfidenceLevel:         e.confidence(features),
	}
}

// CategoryScore clamps each feature in the group to [0,1] and returns
// the arithmetic mean, 0 for an empty group.
func (e *RiskEngine) CategoryScore(features FeatureSet, group []string) float64 {
	if len(group) == 0 {
		return 0
	}
	var sum float64
	for _, name := range group {
		sum += clamp(features[name], 0, 1)
	}
	return sum / float64(len(group))
}

// RiskLevelForScore maps an overall 0-100 score to its tier.
func RiskLevelForScore(score float64) string {
	switch {
	case score >= 70:
		return RiskLow
	case score >= 40:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func (e *RiskEngine) creditRecommendation(overall float64, level string, features FeatureSet) (limit, rate float64, termMonths int) {
	terms := creditTermsByTier[level]
	revenueProxy := features["asset_turnover"] * revenueProxyScale

	limit = round2(math.Max(minCreditLimit, revenueProxy*terms.multiplier))

	// A score 50 points above neutral shaves 2.5 points off the base
	// rate, scaled linearly, then clamped to the product limits.
	rate = terms.baseRate - (overall-50)/100*5
	rate = round2(clamp(rate, minInterestRate, maxInterestRate))

	return limit, rate, terms.termMonths
}

// decisionFactors emits the qualitative explanations for every
// threshold crossing in the feature set.
func (e *RiskEngine) decisionFactors(features FeatureSet) map[string]string {
	factors := make(map[string]string)

	if features["current_ratio"] > 1.5 {
		factors["strong_liquidity"] = "Buena liquidez corriente"
	} else if features["current_ratio"] < 1.0 {
		factors["weak_liquidity"] = "Liquidez corriente baja"
	}

	if features["debt_to_equity"] > 2.0 {
		factors["high_leverage"] = "Alto nivel de endeudamiento"
	}

	if features["profit_margin"] > 0.1 {
		factors["profitable"] = "Márgenes de utilidad saludables"
	}

	if features["sentiment_score"] > 0.7 {
		factors["positive_reputation"] = "Buena reputación en redes sociales"
	} else if features["sentiment_score"] < 0.3 {
		factors["reputation_concerns"] = "Preocupaciones en reputación online"
	}

	if features["years_in_business"] > 0.5 {
		factors["established_business"] = "Negocio establecido"
	}

	if features["social_media_presence"] > 0.7 {
		factors["strong_digital_presence"] = "Fuerte presencia digital"
	}

	return factors
}

// confidence is a completeness proxy: the fraction of the vocabulary
// populated with non-zero values, averaged with a fixed baseline.
func (e *RiskEngine) confidence(features FeatureSet) float64 {
	if len(features) == 0 {
		return round3(confidenceBaseline / 2)
	}
	nonZero := 0
	for _, v := range features {
		if v != 0 {
			nonZero++
		}
	}
	completeness := float64(nonZero) / float64(len(features))
	return round3((completeness + confidenceBaseline) / 2)
}

// SimulateScenario applies the named deltas to a copy of the baseline
// feature set and re-runs the full pipeline. Neutral deltas reproduce
// the baseline assessment exactly.
func (e *RiskEngine) SimulateScenario(baseline FeatureSet, changes ScenarioChanges) *RiskAssessment {
	features := baseline.Clone()

	if changes.RevenueChangePercent != 0 {
		factor := 1 + changes.RevenueChangePercent/100
		features["asset_turnover"] *= factor
		features["profit_margin"] *= factor
	}

	if changes.ExpenseChangePercent != 0 {
		factor := 1 + changes.ExpenseChangePercent/100
		if factor != 0 {
			features["profit_margin"] /= factor
		}
	}

	if changes.SocialMediaImprovement {
		features["sentiment_score"] = math.Min(features["sentiment_score"]+0.2, 1.0)
		features["professional_content_score"] = math.Min(features["professional_content_score"]+0.15, 1.0)
	}

	if changes.PaymentHistoryImprovement {
		features["current_ratio"] = math.Min(features["current_ratio"]+0.3, 3.0)
	}

	return e.CalculateRiskScore(features)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
