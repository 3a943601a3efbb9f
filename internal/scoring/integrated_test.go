package scoring

import (
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestCombineIntegratedScore_AllMissingIsNeutral(t *testing.T) {
	engine := NewRiskEngine()

	result := engine.CombineIntegratedScore(IntegratedComponents{})

	if result.FinalRiskScore != 50 {
		t.Errorf("FinalRiskScore = %v, expected neutral 50", result.FinalRiskScore)
	}
	if result.RiskLevel != "medium-high" {
		t.Errorf("RiskLevel = %s, expected medium-high at the neutral score", result.RiskLevel)
	}
	if result.ConfidenceLevel != 0.5 {
		t.Errorf("ConfidenceLevel = %v, expected 0.5 with no sources", result.ConfidenceLevel)
	}
}

func TestCombineIntegratedScore_Verdicts(t *testing.T) {
	engine := NewRiskEngine()

	testCases := []struct {
		name           string
		components     IntegratedComponents
		expectedLevel  string
		expectedPrefix byte
	}{
		{
			name: "strong profile approves",
			components: IntegratedComponents{
				CoreScore:          floatPtr(90),
				Financial:          &FinancialSignal{RevenueGrowthPercent: 20, RevenueStability: "high"},
				DigitalScore:       floatPtr(85),
				Legal:              &LegalStatus{CompanyStatus: "ACTIVA", ComplianceStatus: "AL_DIA"},
				ShockSurvivalRates: []float64{0.9, 0.9, 0.9, 0.9},
			},
			expectedLevel: "low",
		},
		{
			name: "dissolved company is rejected",
			components: IntegratedComponents{
				CoreScore:    floatPtr(20),
				Financial:    &FinancialSignal{RevenueGrowthPercent: -20, RevenueStability: "low"},
				DigitalScore: floatPtr(10),
				Legal:        &LegalStatus{CompanyStatus: "DISUELTA", ComplianceStatus: "MORA"},
			},
			expectedLevel: "high",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := engine.CombineIntegratedScore(tc.components)
			if result.RiskLevel != tc.expectedLevel {
				t.Errorf("RiskLevel = %s (score %v), expected %s", result.RiskLevel, result.FinalRiskScore, tc.expectedLevel)
			}
			if result.Recommendation == "" {
				t.Error("expected a non-empty recommendation")
			}
		})
	}
}

func TestLegalScore(t *testing.T) {
	testCases := []struct {
		name     string
		legal    *LegalStatus
		expected float64
	}{
		{"nil is neutral", nil, 50},
		{"active and current", &LegalStatus{CompanyStatus: "ACTIVA", ComplianceStatus: "AL_DIA"}, 85},
		{"suspended in arrears", &LegalStatus{CompanyStatus: "SUSPENDIDA", ComplianceStatus: "MORA"}, 15},
		{"dissolved in arrears clamps at zero", &LegalStatus{CompanyStatus: "DISUELTA", ComplianceStatus: "MORA"}, 0},
		{"unknown statuses stay neutral", &LegalStatus{CompanyStatus: "?", ComplianceStatus: "?"}, 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LegalScore(tc.legal); got != tc.expected {
				t.Errorf("LegalScore = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFinancialSignalScore(t *testing.T) {
	testCases := []struct {
		name     string
		signal   *FinancialSignal
		expected float64
	}{
		{"nil is neutral", nil, 50},
		{"strong growth and stability", &FinancialSignal{RevenueGrowthPercent: 20, RevenueStability: "high"}, 75},
		{"moderate growth", &FinancialSignal{RevenueGrowthPercent: 8}, 58},
		{"declining unstable revenue", &FinancialSignal{RevenueGrowthPercent: -15, RevenueStability: "low"}, 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FinancialSignalScore(tc.signal); got != tc.expected {
				t.Errorf("FinancialSignalScore = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestScenarioResilienceScore(t *testing.T) {
	if got := ScenarioResilienceScore(nil); got != 50 {
		t.Errorf("empty survival rates = %v, expected neutral 50", got)
	}
	if got := ScenarioResilienceScore([]float64{0.9, 0.7, 0.5, 0.2}); got != 57.5 {
		t.Errorf("ScenarioResilienceScore = %v, expected 57.5", got)
	}
}

func TestIntegratedConfidence_Cap(t *testing.T) {
	engine := NewRiskEngine()

	result := engine.CombineIntegratedScore(IntegratedComponents{
		CoreScore:             floatPtr(80),
		Financial:             &FinancialSignal{},
		DigitalScore:          floatPtr(70),
		Legal:                 &LegalStatus{CompanyStatus: "ACTIVA"},
		ShockSurvivalRates:    []float64{0.9},
		HasScenarioSimulation: true,
	})

	if result.ConfidenceLevel != 0.95 {
		t.Errorf("ConfidenceLevel = %v, expected the 0.95 cap with five sources", result.ConfidenceLevel)
	}
}
