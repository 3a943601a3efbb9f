package scenario

// Each point of digital-score improvement shaves improvement/100*10
// points off the risk score.
const digitalRiskFactor = 10

// Margin assumed on the extra revenue a digitalization program brings
// in, used for the ROI payback estimate.
const digitalBenefitMargin = 0.25

const defaultDigitalScore = 30

// DigitalScenario is one digitalization program.
type DigitalScenario struct {
	Description            string   `json:"description"`
	Investment             float64  `json:"investment"`
	DigitalImprovement     float64  `json:"digital_score_improvement"`
	ImplementationTime     string   `json:"implementation_time"`
	Components             []string `json:"components"`
	ExpectedRevenueImpact  float64  `json:"expected_revenue_impact"`
	CurrentDigitalScore    float64  `json:"current_digital_score"`
	NewDigitalScore        float64  `json:"new_digital_score"`
	DigitalRiskImprovement float64  `json:"digital_risk_improvement"`
	RevenueRiskImprovement float64  `json:"revenue_risk_improvement"`
	TotalRiskImprovement   float64  `json:"total_risk_improvement"`
	NewRiskScore           float64  `json:"new_risk_score"`
	AnnualRevenueIncrease  float64  `json:"annual_revenue_increase"`
	// ROIYears is nil when the program generates no measurable benefit
	// to pay back from.
	ROIYears *float64 `json:"roi_years"`
}

// DigitalMaturity describes the baseline digitalization level.
type DigitalMaturity struct {
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

// DigitalFamily groups the digital-transformation programs.
type DigitalFamily struct {
	ScenarioType           string                      `json:"scenario_type"`
	CurrentDigitalMaturity DigitalMaturity             `json:"current_digital_maturity"`
	Sector                 string                      `json:"sector"`
	Scenarios              map[string]*DigitalScenario `json:"scenarios"`
	RecommendedPath        string                      `json:"recommended_path"`
}

type digitalDef struct {
	name               string
	description        string
	investment         float64
	digitalImprovement float64
	implementationTime string
	components         []string
	revenueImpact      float64
}

// Sector tables for the tailored fourth program. Keys use the display
// casing the registry exposes sectors in.
var sectorDigitalInvestment = map[string]float64{
	"Tecnología":  25000,
	"Comercio":    15000,
	"Servicios":   12000,
	"Manufactura": 30000,
	"Otros":       18000,
}

var sectorDigitalImprovement = map[string]float64{
	"Tecnología":  70,
	"Comercio":    50,
	"Servicios":   45,
	"Manufactura": 35,
	"Otros":       40,
}

var sectorDigitalRevenueImpact = map[string]float64{
	"Tecnología":  25,
	"Comercio":    20,
	"Servicios":   18,
	"Manufactura": 15,
	"Otros":       16,
}

var sectorDigitalComponents = map[string][]string{
	"Tecnología":  {"API integrations", "Cloud infrastructure", "DevOps automation"},
	"Comercio":    {"E-commerce platform", "Inventory management", "POS integration"},
	"Servicios":   {"CRM system", "Appointment scheduling", "Customer portal"},
	"Manufactura": {"IoT sensors", "Production tracking", "Quality management"},
	"Otros":       {"Basic digitalization", "Online presence", "Process automation"},
}

func sectorLookup(table map[string]float64, sector string) float64 {
	if v, ok := table[sector]; ok {
		return v
	}
	return table["Otros"]
}

func digitalDefsForSector(sector string) []digitalDef {
	components, ok := sectorDigitalComponents[sector]
	if !ok {
		components = []string{"Basic digitalization"}
	}
	return []digitalDef{
		{
			name:               "basic_digitalization",
			description:        "Digitalización básica: presencia web y redes sociales",
			investment:         5000,
			digitalImprovement: 25,
			implementationTime: "3 months",
			components: []string{
				"Sitio web profesional",
				"Presencia en redes sociales",
				"Google My Business",
				"Email marketing básico",
			},
			revenueImpact: 8,
		},
		{
			name:               "intermediate_digitalization",
			description:        "Digitalización intermedia: e-commerce y automatización",
			investment:         15000,
			digitalImprovement: 40,
			implementationTime: "6 months",
			components: []string{
				"Plataforma e-commerce",
				"CRM básico",
				"Automatización de procesos",
				"Marketing digital",
				"Facturación electrónica",
			},
			revenueImpact: 18,
		},
		{
			name:               "advanced_digitalization",
			description:        "Digitalización avanzada: IA y análisis de datos",
			investment:         35000,
			digitalImprovement: 60,
			implementationTime: "12 months",
			components: []string{
				"Plataforma integral",
				"IA para atención al cliente",
				"Análisis de datos avanzado",
				"Automatización completa",
				"Integración multi-canal",
			},
			revenueImpact: 35,
		},
		{
			name:               "sector_specific_solution",
			description:        "Solución específica para sector " + sector,
			investment:         sectorLookup(sectorDigitalInvestment, sector),
			digitalImprovement: sectorLookup(sectorDigitalImprovement, sector),
			implementationTime: "8 months",
			components:         components,
			revenueImpact:      sectorLookup(sectorDigitalRevenueImpact, sector),
		},
	}
}

// DigitalMaturityLevel labels a digital score.
func DigitalMaturityLevel(score float64) string {
	switch {
	case score >= 80:
		return "Avanzado"
	case score >= 60:
		return "Intermedio"
	case score >= 40:
		return "Básico"
	default:
		return "Inicial"
	}
}

// recommendDigitalPath picks a program by how risky the company
// already is: riskier companies start smaller.
func recommendDigitalPath(baseRisk float64) string {
	switch {
	case baseRisk > 70:
		return "basic_digitalization"
	case baseRisk > 50:
		return "intermediate_digitalization"
	default:
		return "advanced_digitalization"
	}
}

// SimulateDigitalTransformation projects the score under four
// digitalization programs, one of them tailored to the sector.
func (s *Simulator) SimulateDigitalTransformation(info CompanyInfo, finances Finances) *DigitalFamily {
	base := baseRiskScore(info)
	sector := info.Sector
	if sector == "" {
		sector = "Otros"
	}
	digitalScore := info.DigitalScore
	if digitalScore == 0 {
		digitalScore = defaultDigitalScore
	}

	defs := digitalDefsForSector(sector)
	family := &DigitalFamily{
		ScenarioType: FamilyDigital,
		CurrentDigitalMaturity: DigitalMaturity{
			Score: digitalScore,
			Level: DigitalMaturityLevel(digitalScore),
		},
		Sector:          sector,
		Scenarios:       make(map[string]*DigitalScenario, len(defs)),
		RecommendedPath: recommendDigitalPath(base),
	}

	for _, def := range defs {
		digitalImprovement := def.digitalImprovement / 100 * digitalRiskFactor
		revenueImprovement := -revenueImpactOnRisk(def.revenueImpact, SizeMedium)
		totalImprovement := digitalImprovement + revenueImprovement
		newScore := round2(clampScore(base - totalImprovement))

		additionalRevenue := finances.Revenue * (def.revenueImpact / 100)
		annualBenefit := additionalRevenue * digitalBenefitMargin
		var roiYears *float64
		if annualBenefit > 0 {
			roi := round2(def.investment / annualBenefit)
			roiYears = &roi
		}

		family.Scenarios[def.name] = &DigitalScenario{
			Description:            def.description,
			Investment:             def.investment,
			DigitalImprovement:     def.digitalImprovement,
			ImplementationTime:     def.implementationTime,
			Components:             def.components,
			ExpectedRevenueImpact:  def.revenueImpact,
			CurrentDigitalScore:    digitalScore,
			NewDigitalScore:        digitalScore + def.digitalImprovement,
			DigitalRiskImprovement: round2(digitalImprovement),
			RevenueRiskImprovement: round2(revenueImprovement),
			TotalRiskImprovement:   round2(totalImprovement),
			NewRiskScore:           newScore,
			AnnualRevenueIncrease:  round2(additionalRevenue),
			ROIYears:               roiYears,
		}
	}

	return family
}
