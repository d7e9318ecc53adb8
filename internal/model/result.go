package model

import "time"

// Tier is the qualification band assigned to a researched company.
type Tier string

const (
	TierHot          Tier = "HOT_PROSPECT"
	TierWarm         Tier = "WARM_PROSPECT"
	TierCold         Tier = "COLD_PROSPECT"
	TierNotQualified Tier = "NOT_QUALIFIED"
)

// Tier thresholds. Evaluated in descending order so ties resolve upward.
const (
	HotThreshold  = 80
	WarmThreshold = 60
	ColdThreshold = 40
)

// TierForScore maps a total fit score to its qualification tier.
func TierForScore(score int) Tier {
	switch {
	case score >= HotThreshold:
		return TierHot
	case score >= WarmThreshold:
		return TierWarm
	case score >= ColdThreshold:
		return TierCold
	default:
		return TierNotQualified
	}
}

// ScoreBreakdown maps each fit-scoring factor to its point contribution.
type ScoreBreakdown struct {
	PlatformRecognition int `json:"platform_recognition"`
	PlatformType        int `json:"platform_type"`
	BusinessIndicators  int `json:"business_indicators"`
	TechnicalFit        int `json:"technical_fit"`
	PricingModel        int `json:"pricing_model"`
	GrowthIndicators    int `json:"growth_indicators"`
}

// MaxFitScore is the theoretical maximum total fit score (sum of factor caps).
const MaxFitScore = 120

// ScoringResult is the weighted fit score for a company.
type ScoringResult struct {
	TotalScore  int            `json:"total_score"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	MaxPossible int            `json:"max_possible"`
	Percentage  int            `json:"percentage"`
}

// Insights are the qualitative takeaways derived from scoring.
type Insights struct {
	Strengths       []string `json:"strengths,omitempty"`
	Concerns        []string `json:"concerns,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	EmailHooks      []string `json:"email_hooks,omitempty"`
}

// Intelligence holds third-party enrichment data. External providers are not
// wired yet, so all fields stay empty.
type Intelligence struct {
	CrunchbaseURL string `json:"crunchbase_url,omitempty"`
	LinkedInURL   string `json:"linkedin_url,omitempty"`
}

// ResearchResult is the full output of researching one company.
type ResearchResult struct {
	ID             string        `json:"id"`
	Company        CompanyRecord `json:"company"`
	Contacts       []Contact     `json:"contacts"`
	Intelligence   Intelligence  `json:"intelligence"`
	Scoring        ScoringResult `json:"scoring"`
	Insights       Insights      `json:"insights"`
	Recommendation Tier          `json:"recommendation"`
	ResearchedAt   time.Time     `json:"researched_at"`
}

// BatchResult is one entry in a batch research response: either a completed
// result or a per-company error record. Exactly one of Result/Error is set.
type BatchResult struct {
	Input  CompanyInput    `json:"input"`
	Result *ResearchResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Score returns the result's total score, or 0 for errored entries so they
// sort last.
func (b BatchResult) Score() int {
	if b.Result == nil {
		return 0
	}
	return b.Result.Scoring.TotalScore
}
