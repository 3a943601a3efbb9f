package scoring

// Fixed component weights for the integrated blend.
var integratedWeights = map[string]float64{
	"core_analysis":       0.30,
	"official_financials": 0.25,
	"digital_footprint":   0.20,
	"legal_status":        0.15,
	"scenario_resilience": 0.10,
}

const neutralComponentScore = 50.0

// FinancialSignal summarizes growth and stability from official filings.
type FinancialSignal struct {
	RevenueGrowthPercent float64 `json:"revenue_growth_percent"`
	RevenueStability     string  `json:"revenue_stability"`
}

// LegalStatus carries the registry standing of the company.
type LegalStatus struct {
	CompanyStatus    string `json:"company_status"`
	ComplianceStatus string `json:"compliance_status"`
}

// IntegratedComponents are the collaborator-supplied inputs to the
// blend. Nil components fall back to the neutral score.
type IntegratedComponents struct {
	CoreScore             *float64         `json:"core_score"`
	Financial             *FinancialSignal `json:"financial"`
	DigitalScore          *float64         `json:"digital_score"`
	Legal                 *LegalStatus     `json:"legal"`
	ShockSurvivalRates    []float64        `json:"shock_survival_rates"`
	HasScenarioSimulation bool             `json:"has_scenario_simulation"`
}

// IntegratedAssessment is the blended multi-source result.
type IntegratedAssessment struct {
	FinalRiskScore  float64            `json:"final_risk_score"`
	RiskLevel       string             `json:"risk_level"`
	Recommendation  string             `json:"recommendation"`
	ComponentScores map[string]float64 `json:"component_scores"`
	WeightsUsed     map[string]float64 `json:"weights_used"`
	ConfidenceLevel float64            `json:"confidence_level"`
	Methodology     string             `json:"scoring_methodology"`
}

// CombineIntegratedScore blends the core assessment with the external
// collaborator scores using fixed weights. Missing components count as
// neutral, and the confidence reflects how many sources were present.
func (e *RiskEngine) CombineIntegratedScore(components IntegratedComponents) *IntegratedAssessment {
	scores := map[string]float64{
		"core_analysis":       orNeutral(components.CoreScore),
		"official_financials": FinancialSignalScore(components.Financial),
		"digital_footprint":   orNeutral(components.DigitalScore),
		"legal_status":        LegalScore(components.Legal),
		"scenario_resilience": ScenarioResilienceScore(components.ShockSurvivalRates),
	}

	var final float64
	for component, weight := range integratedWeights {
		final += scores[component] * weight
	}
	final = round2(final)

	level, recommendation := integratedVerdict(final)

	return &IntegratedAssessment{
		FinalRiskScore:  final,
		RiskLevel:       level,
		Recommendation:  recommendation,
		ComponentScores: scores,
		WeightsUsed:     integratedWeights,
		ConfidenceLevel: integratedConfidence(components),
		Methodology:     "Multi-Source Integrated Assessment",
	}
}

func integratedVerdict(score float64) (level, recommendation string) {
	switch {
	case score >= 80:
		return "low", "APROBADO - Excelente perfil crediticio"
	case score >= 65:
		return "medium", "APROBADO CON CONDICIONES - Perfil sólido"
	case score >= 45:
		return "medium-high", "EVALUACIÓN ADICIONAL REQUERIDA"
	default:
		return "high", "NO RECOMENDADO - Alto riesgo"
	}
}

// FinancialSignalScore scores official-filing signals around a neutral
// base, rewarding growth and stability.
func FinancialSignalScore(signal *FinancialSignal) float64 {
	if signal == nil {
		return neutralComponentScore
	}

	score := neutralComponentScore

	switch {
	case signal.RevenueGrowthPercent > 15:
		score += 15
	case signal.RevenueGrowthPercent > 5:
		score += 8
	case signal.RevenueGrowthPercent < -10:
		score -= 15
	}

	switch signal.RevenueStability {
	case "high":
		score += 10
	case "low":
		score -= 10
	}

	return clamp(score, 0, 100)
}

// LegalScore scores registry standing around a neutral base.
func LegalScore(legal *LegalStatus) float64 {
	if legal == nil {
		return neutralComponentScore
	}

	score := neutralComponentScore

	switch legal.CompanyStatus {
	case "ACTIVA":
		score += 20
	case "SUSPENDIDA":
		score -= 20
	case "DISUELTA":
		score -= 40
	}

	switch legal.ComplianceStatus {
	case "AL_DIA":
		score += 15
	case "MORA":
		score -= 15
	}

	return clamp(score, 0, 100)
}

// ScenarioResilienceScore averages the shock-scenario survival
// probabilities onto the 0-100 scale, neutral when none were run.
func ScenarioResilienceScore(survivalRates []float64) float64 {
	if len(survivalRates) == 0 {
		return neutralComponentScore
	}
	var sum float64
	for _, rate := range survivalRates {
		sum += rate * 100
	}
	return clamp(sum/float64(len(survivalRates)), 0, 100)
}

// integratedConfidence grows with the number of populated sources,
// capped below certainty.
func integratedConfidence(components IntegratedComponents) float64 {
	sources := 0
	if components.CoreScore != nil {
		sources++
	}
	if components.Financial != nil {
		sources++
	}
	if components.DigitalScore != nil {
		sources++
	}
	if components.Legal != nil {
		sources++
	}
	if components.HasScenarioSimulation || len(components.ShockSurvivalRates) > 0 {
		sources++
	}

	confidence := 0.5 + float64(sources)*0.1
	if confidence > 0.95 {
		confidence = 0.95
	}
	return round2(confidence)
}

func orNeutral(v *float64) float64 {
	if v == nil {
		return neutralComponentScore
	}
	return *v
}
