package risk

import (
	"context"
	"fmt"
	"math"
	"time"

	"claims-backend/internal/shared/metrics"
	"claims-backend/internal/shared/telemetry"
)

const (
	highAmountThreshold = 10000
	timelyFilingDays    = 90

	ruleWeight = 0.6
	aiWeight   = 0.4
)

// Scorer computes denial-risk assessments. Insights is nil when the hosted
// AI augmentation is not configured; Now is overridable for tests.
type Scorer struct {
	Insights *InsightsClient
	Now      func() time.Time
}

// AssessRisk runs the fixed rule checklist against the claim, optionally
// blends in an AI-adjusted score, and composes the full assessment. It never
// returns an error: AI failures degrade silently to the rule-based score.
func (s *Scorer) AssessRisk(ctx context.Context, claim Claim) Assessment {
	now := s.now()
	started := time.Now()

	score := 0
	factors := make([]Factor, 0, 8)
	match := func(id, description string) {
		def, ok := Lookup(id)
		if !ok {
			return
		}
		f := def.Instantiate(description)
		factors = append(factors, f)
		score += f.Weight
	}

	if len(claim.DiagnosisCodes) == 0 {
		match("missing_diagnosis", "Claim has no diagnosis codes")
	}
	if len(claim.ProcedureCodes) == 0 {
		match("missing_procedure", "Claim has no procedure codes")
	}
	if claim.ProviderNPI == "" {
		match("missing_provider_info", "Rendering provider NPI is missing")
	}
	if claim.BilledAmount > highAmountThreshold {
		match("high_amount", fmt.Sprintf("Billed amount $%.2f exceeds the high-dollar review threshold", claim.BilledAmount))
	}
	// Exact plan-type match only: compound strings like "Medicare Advantage"
	// must not trigger either factor.
	if claim.PlanType == "Medicare" {
		match("medicare_strict", "Medicare applies strict documentation and coverage rules")
	} else if claim.PlanType == "Medicaid" {
		match("medicaid_strict", "Medicaid applies strict documentation and coverage rules")
	}
	if claim.ServiceDate == nil {
		// Not a catalog factor; the original product tracked this inline.
		factors = append(factors, Factor{
			ID:          "missing_service_date",
			Category:    CategoryDocumentation,
			Description: "Missing service date",
			Impact:      ImpactMedium,
			Weight:      15,
		})
		score += 15
	} else if days := int(now.Sub(*claim.ServiceDate).Hours() / 24); days > timelyFilingDays {
		match("timely_filing", fmt.Sprintf("Service date is %d days old; timely filing deadlines may apply", days))
	}

	if score > 100 {
		score = 100
	}
	ruleScore := score

	var insights *AIInsights
	if s.Insights != nil {
		found, err := s.Insights.RiskInsights(ctx, claim, factors)
		if err != nil {
			telemetry.Warn("risk.ai_insights_failed", map[string]any{
				"claim_id": claim.ID,
				"error":    err.Error(),
			})
			metrics.IncAssessmentAIFallback()
		} else if found != nil {
			insights = found
			score = blendScores(ruleScore, found.AdjustedScore)
			metrics.IncAssessmentAIBlended()
		}
	}

	assessment := Assessment{
		Score:           score,
		Level:           levelFor(score),
		Factors:         factors,
		Recommendations: BuildRecommendations(factors, claim),
		AIInsights:      insights,
		AnalyzedAt:      now,
	}

	metrics.IncAssessment()
	metrics.ObserveAssessmentDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return assessment
}

// blendScores combines the rule score with the model's adjusted score using a
// fixed 0.6/0.4 weighted average. The result is clamped to [0,100] so an
// out-of-range model reply cannot produce an out-of-range assessment.
func blendScores(ruleScore int, adjusted float64) int {
	blended := int(math.Round(float64(ruleScore)*ruleWeight + adjusted*aiWeight))
	if blended > 100 {
		return 100
	}
	if blended < 0 {
		return 0
	}
	return blended
}

func levelFor(score int) string {
	switch {
	case score >= 60:
		return LevelHigh
	case score >= 30:
		return LevelMedium
	default:
		return LevelLow
	}
}

func (s *Scorer) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
