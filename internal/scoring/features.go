package scoring

import (
	"math"
	"strings"
	"time"
)

// FinancialRecord holds the raw balance-sheet and income figures for one
// statement period. Missing fields stay at zero and degrade to neutral
// features instead of failing the assessment.
type FinancialRecord struct {
	CurrentAssets         float64 `json:"current_assets"`
	NonCurrentAssets      float64 `json:"non_current_assets"`
	CurrentLiabilities    float64 `json:"current_liabilities"`
	NonCurrentLiabilities float64 `json:"non_current_liabilities"`
	Equity                float64 `json:"equity"`
	TotalRevenue          float64 `json:"total_revenue"`
	NetIncome             float64 `json:"net_income"`
	OperatingCashFlow     float64 `json:"operating_cash_flow"`
	TotalAssets           float64 `json:"total_assets"`
	TotalLiabilities      float64 `json:"total_liabilities"`
}

// SocialRecord holds the social-media signal for a company as supplied by
// the social collaborator.
type SocialRecord struct {
	FollowersCount           int     `json:"followers_count"`
	PostsCount               int     `json:"posts_count"`
	EngagementRate           float64 `json:"engagement_rate"`
	OverallSentiment         string  `json:"overall_sentiment"`
	ProfessionalContentScore float64 `json:"professional_content_score"`
	PostingFrequency         string  `json:"posting_frequency"`
}

// BusinessRecord holds the qualitative descriptors of the company itself.
type BusinessRecord struct {
	FoundationDate *time.Time        `json:"foundation_date"`
	Sector         string            `json:"sector"`
	EmployeeCount  int               `json:"employee_count"`
	Website        string            `json:"website"`
	SocialMedia    map[string]string `json:"social_media"`
	Verified       bool              `json:"verified"`
}

// FeatureSet maps the fixed feature vocabulary to normalized values.
// Financial ratios may exceed 1 here; they are clamped when aggregated
// into a category score.
type FeatureSet map[string]float64

// Feature vocabulary, grouped. Every prepared FeatureSet carries all of
// these names; absent inputs default to 0.
var (
	financialFeatures = []string{
		"current_ratio", "debt_to_equity", "return_on_assets", "return_on_equity",
		"profit_margin", "asset_turnover", "revenue_growth", "cash_flow_ratio",
	}

	socialFeatures = []string{
		"followers_count", "posts_count", "engagement_rate",
		"sentiment_score", "professional_content_score", "posting_frequency_score",
	}

	businessFeatures = []string{
		"years_in_business", "sector_risk", "employee_count",
		"has_website", "social_media_presence", "business_verification",
	}
)

// sectorRisk maps sector names (lower-cased) to a fixed risk weight.
// Unknown sectors fall back to 0.5.
var sectorRisk = map[string]float64{
	"tecnología":   0.8,
	"servicios":    0.7,
	"comercio":     0.6,
	"manufactura":  0.5,
	"construcción": 0.4,
	"turismo":      0.3,
	"agricultura":  0.5,
}

var sentimentScore = map[string]float64{
	"positive": 1.0,
	"neutral":  0.5,
	"negative": 0.0,
}

var postingFrequencyScore = map[string]float64{
	"daily":   1.0,
	"weekly":  0.8,
	"monthly": 0.5,
	"rarely":  0.2,
}

// Placeholder growth rate used until historical statements are available.
const defaultRevenueGrowth = 0.05

// PrepareFeatures normalizes the three raw records into the complete
// feature vocabulary.
func (e *RiskEngine) PrepareFeatures(fin FinancialRecord, soc SocialRecord, biz BusinessRecord) FeatureSet {
	features := make(FeatureSet, len(financialFeatures)+len(socialFeatures)+len(businessFeatures))

	// Financial ratios. Every division guards its denominator and
	// substitutes 0 so empty statements degrade instead of failing.
	features["current_ratio"] = safeRatio(fin.CurrentAssets, fin.CurrentLiabilities)
	features["debt_to_equity"] = safeRatio(fin.TotalLiabilities, fin.Equity)
	features["return_on_assets"] = safeRatio(fin.NetIncome, fin.TotalAssets)
	features["return_on_equity"] = safeRatio(fin.NetIncome, fin.Equity)
	features["profit_margin"] = safeRatio(fin.NetIncome, fin.TotalRevenue)
	features["asset_turnover"] = safeRatio(fin.TotalRevenue, fin.TotalAssets)
	features["revenue_growth"] = defaultRevenueGrowth
	features["cash_flow_ratio"] = safeRatio(fin.OperatingCashFlow, fin.CurrentLiabilities)

	// Social signal. Follower reach saturates around one million via the
	// log scale; post volume saturates at 100 posts.
	features["followers_count"] = math.Min(math.Log10(float64(soc.FollowersCount)+1)/6, 1.0)
	features["posts_count"] = math.Min(float64(soc.PostsCount)/100, 1.0)
	features["engagement_rate"] = soc.EngagementRate / 10
	features["sentiment_score"] = labelScore(sentimentScore, soc.OverallSentiment, 0.5)
	features["professional_content_score"] = soc.ProfessionalContentScore
	features["posting_frequency_score"] = labelScore(postingFrequencyScore, soc.PostingFrequency, 0.5)

	// Business descriptors.
	features["years_in_business"] = yearsInBusiness(biz.FoundationDate)
	features["sector_risk"] = labelScore(sectorRisk, biz.Sector, 0.5)
	features["employee_count"] = math.Min(float64(biz.EmployeeCount)/50, 1.0)
	features["has_website"] = boolFeature(biz.Website != "")
	features["social_media_presence"] = math.Min(float64(len(biz.SocialMedia))/3, 1.0)
	if biz.Verified {
		features["business_verification"] = 1.0
	} else {
		features["business_verification"] = 0.5
	}

	return features
}

// safeRatio divides numerator by denominator, returning 0 when the
// denominator is zero or negative.
func safeRatio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// labelScore resolves a label against a lookup table, case-insensitively,
// with a fixed fallback for unrecognized labels.
func labelScore(table map[string]float64, label string, fallback float64) float64 {
	if score, ok := table[strings.ToLower(strings.TrimSpace(label))]; ok {
		return score
	}
	return fallback
}

// yearsInBusiness scores company age on a 10-year ramp. Companies with no
// recorded foundation date get a small non-zero default rather than zero.
func yearsInBusiness(foundation *time.Time) float64 {
	if foundation == nil {
		return 0.1
	}
	years := time.Since(*foundation).Hours() / 24 / 365.25
	if years < 0 {
		return 0.1
	}
	return math.Min(years/10, 1.0)
}

func boolFeature(v bool) float64 {
	if v {
		return 1.0
	}
	return 0.0
}

// Clone returns an independent copy of the feature set.
func (fs FeatureSet) Clone() FeatureSet {
	out := make(FeatureSet, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// VocabularySize is the number of features in the fixed vocabulary.
func VocabularySize() int {
	return len(financialFeatures) + len(socialFeatures) + len(businessFeatures)
}
