package risk

import "time"

// Claim is the claim-like record the scorer consumes. It is a read-only view
// of the claim owned by the claims package; absent fields are risk signals,
// not validation faults.
type Claim struct {
	ID             string
	ClaimNumber    string
	DiagnosisCodes []string
	ProcedureCodes []string
	ProviderNPI    string
	BilledAmount   float64
	PlanType       string
	ServiceDate    *time.Time
	Status         string
	Notes          string
}

// Factor is a per-claim instance of a risk factor: the immutable catalog
// definition plus a claim-specific description.
type Factor struct {
	ID             string   `json:"id"`
	Category       Category `json:"category"`
	Description    string   `json:"description"`
	Impact         Impact   `json:"impact"`
	Weight         int      `json:"weight"`
	Recommendation string   `json:"-"`
}

// Recommendation is a prioritized remediation suggestion.
type Recommendation struct {
	Type           string  `json:"type"`
	Recommendation string  `json:"recommendation"`
	Priority       string  `json:"priority"`
	Confidence     float64 `json:"confidence"`
}

// AIInsights is the parsed augmentation reply from the hosted model, plus
// the model identifier that produced it.
type AIInsights struct {
	AdditionalFactors       []string `json:"additionalFactors"`
	AdjustedScore           float64  `json:"adjustedScore"`
	Insights                string   `json:"insights"`
	SpecificRecommendations []string `json:"specificRecommendations"`
	Model                   string   `json:"model,omitempty"`
}

// Assessment is the composed result of one scoring pass. It is ephemeral;
// callers decide whether to persist it.
type Assessment struct {
	Score           int              `json:"score"`
	Level           string           `json:"level"`
	Factors         []Factor         `json:"factors"`
	Recommendations []Recommendation `json:"recommendations"`
	AIInsights      *AIInsights      `json:"aiInsights"`
	AnalyzedAt      time.Time        `json:"analyzedAt"`
}

// Risk levels derived from fixed score thresholds.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)
