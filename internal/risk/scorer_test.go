package risk

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestAssessRiskEmptyClaimFloor(t *testing.T) {
	s := &Scorer{Now: fixedNow}
	serviceDate := fixedNow().AddDate(0, 0, -10)
	claim := Claim{
		BilledAmount: 100,
		PlanType:     "Commercial",
		ServiceDate:  &serviceDate,
	}

	got := s.AssessRisk(context.Background(), claim)
	if got.Score < 55 {
		t.Fatalf("expected score >= 55 for claim missing codes and NPI, got %d", got.Score)
	}
}

func TestAssessRiskMedicareScenario(t *testing.T) {
	s := &Scorer{Now: fixedNow}
	claim := Claim{
		DiagnosisCodes: nil,
		ProcedureCodes: nil,
		ProviderNPI:    "",
		BilledAmount:   5000,
		PlanType:       "Medicare",
		ServiceDate:    nil,
	}

	got := s.AssessRisk(context.Background(), claim)

	// missing_diagnosis(25) + missing_procedure(20) + missing_provider_info(10)
	// + medicare_strict(10) + missing_service_date(15) = 80
	if got.Score != 80 {
		t.Fatalf("expected score 80, got %d", got.Score)
	}
	if got.Level != LevelHigh {
		t.Fatalf("expected level high, got %q", got.Level)
	}

	wantIDs := []string{"missing_diagnosis", "missing_procedure", "missing_provider_info", "medicare_strict", "missing_service_date"}
	gotIDs := make([]string, 0, len(got.Factors))
	for _, f := range got.Factors {
		gotIDs = append(gotIDs, f.ID)
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Fatalf("expected factors %v, got %v", wantIDs, gotIDs)
	}
}

func TestAssessRiskTimelyFilingBoundary(t *testing.T) {
	s := &Scorer{Now: fixedNow}
	serviceDate := fixedNow().AddDate(0, 0, -95)
	claim := Claim{
		DiagnosisCodes: []string{"E11.9"},
		ProcedureCodes: []string{"99213"},
		ProviderNPI:    "1234567890",
		BilledAmount:   200,
		PlanType:       "Commercial",
		ServiceDate:    &serviceDate,
		Notes:          "office visit",
		Status:         "submitted",
	}

	got := s.AssessRisk(context.Background(), claim)

	if len(got.Factors) != 1 || got.Factors[0].ID != "timely_filing" {
		t.Fatalf("expected only timely_filing factor, got %+v", got.Factors)
	}
	if got.Score != 30 {
		t.Fatalf("expected score 30, got %d", got.Score)
	}
	if got.Level != LevelMedium {
		t.Fatalf("expected level medium at threshold, got %q", got.Level)
	}
	if !strings.Contains(got.Factors[0].Description, "95 days") {
		t.Fatalf("expected day count in description, got %q", got.Factors[0].Description)
	}
}

func TestAssessRiskRecentServiceDateNoFactor(t *testing.T) {
	s := &Scorer{Now: fixedNow}
	serviceDate := fixedNow().AddDate(0, 0, -90)
	claim := Claim{
		DiagnosisCodes: []string{"E11.9"},
		ProcedureCodes: []string{"99213"},
		ProviderNPI:    "1234567890",
		BilledAmount:   200,
		ServiceDate:    &serviceDate,
		Notes:          "n",
	}

	got := s.AssessRisk(context.Background(), claim)
	if len(got.Factors) != 0 {
		t.Fatalf("expected no factors at exactly 90 days, got %+v", got.Factors)
	}
	if got.Score != 0 || got.Level != LevelLow {
		t.Fatalf("expected score 0 level low, got %d %q", got.Score, got.Level)
	}
}

func TestAssessRiskPlanTypeExactMatch(t *testing.T) {
	cases := []struct {
		name     string
		planType string
		wantIDs  []string
	}{
		{name: "medicare_exact", planType: "Medicare", wantIDs: []string{"medicare_strict"}},
		{name: "medicaid_exact", planType: "Medicaid", wantIDs: []string{"medicaid_strict"}},
		{name: "compound_no_match", planType: "Medicare Advantage", wantIDs: nil},
		{name: "both_substrings_no_match", planType: "Medicare/Medicaid dual", wantIDs: nil},
		{name: "lowercase_no_match", planType: "medicare", wantIDs: nil},
	}

	serviceDate := fixedNow().AddDate(0, 0, -5)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Scorer{Now: fixedNow}
			claim := Claim{
				DiagnosisCodes: []string{"E11.9"},
				ProcedureCodes: []string{"99213"},
				ProviderNPI:    "1234567890",
				BilledAmount:   200,
				PlanType:       tc.planType,
				ServiceDate:    &serviceDate,
				Notes:          "n",
			}
			got := s.AssessRisk(context.Background(), claim)
			gotIDs := make([]string, 0, len(got.Factors))
			for _, f := range got.Factors {
				gotIDs = append(gotIDs, f.ID)
			}
			if !reflect.DeepEqual(gotIDs, tc.wantIDs) && (len(gotIDs) != 0 || len(tc.wantIDs) != 0) {
				t.Fatalf("plan %q: expected factors %v, got %v", tc.planType, tc.wantIDs, gotIDs)
			}
		})
	}
}

func TestAssessRiskScoreClampedAt100(t *testing.T) {
	s := &Scorer{Now: fixedNow}
	serviceDate := fixedNow().AddDate(0, 0, -200)
	claim := Claim{
		BilledAmount: 50000,
		PlanType:     "Medicare",
		ServiceDate:  &serviceDate,
	}

	// 25+20+10+15+10+30 = 110, clamped to 100.
	got := s.AssessRisk(context.Background(), claim)
	if got.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", got.Score)
	}
	if got.Level != LevelHigh {
		t.Fatalf("expected level high, got %q", got.Level)
	}
}

func TestAssessRiskDeterministicWithoutAI(t *testing.T) {
	s := &Scorer{Now: fixedNow}
	serviceDate := fixedNow().AddDate(0, 0, -120)
	claim := Claim{
		DiagnosisCodes: []string{"E11.9"},
		ProcedureCodes: []string{"99213"},
		BilledAmount:   15000,
		PlanType:       "Medicaid",
		ServiceDate:    &serviceDate,
		Status:         "draft",
	}

	first := s.AssessRisk(context.Background(), claim)
	second := s.AssessRisk(context.Background(), claim)

	if first.Score != second.Score || first.Level != second.Level {
		t.Fatalf("expected identical score/level, got %d/%s vs %d/%s", first.Score, first.Level, second.Score, second.Level)
	}
	if !reflect.DeepEqual(first.Factors, second.Factors) {
		t.Fatalf("expected identical factors across runs")
	}
	if !reflect.DeepEqual(first.Recommendations, second.Recommendations) {
		t.Fatalf("expected identical recommendations across runs")
	}
}

func TestLevelThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, LevelLow},
		{29, LevelLow},
		{30, LevelMedium},
		{59, LevelMedium},
		{60, LevelHigh},
		{100, LevelHigh},
	}
	for _, tc := range cases {
		if got := levelFor(tc.score); got != tc.want {
			t.Fatalf("levelFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestBlendScores(t *testing.T) {
	cases := []struct {
		name     string
		rule     int
		adjusted float64
		want     int
	}{
		{name: "simple_blend", rule: 50, adjusted: 80, want: 62},
		{name: "rounds_half_up", rule: 55, adjusted: 60, want: 57},
		{name: "clamps_high_model_score", rule: 100, adjusted: 250, want: 100},
		{name: "clamps_negative_model_score", rule: 10, adjusted: -200, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := blendScores(tc.rule, tc.adjusted); got != tc.want {
				t.Fatalf("blendScores(%d, %v) = %d, want %d", tc.rule, tc.adjusted, got, tc.want)
			}
		})
	}
}

func TestAssessRiskAIFailureFallsBackToRuleScore(t *testing.T) {
	s := &Scorer{
		Insights: &InsightsClient{LLM: stubCompleter{err: errBoom}},
		Now:      fixedNow,
	}
	claim := Claim{PlanType: "Commercial", BilledAmount: 100}

	got := s.AssessRisk(context.Background(), claim)

	if got.AIInsights != nil {
		t.Fatalf("expected nil aiInsights on AI failure, got %+v", got.AIInsights)
	}
	// 25+20+10+15 = 70 rule score, unmodified.
	if got.Score != 70 {
		t.Fatalf("expected rule score 70 after fallback, got %d", got.Score)
	}
}

func TestAssessRiskAIBlendsAdjustedScore(t *testing.T) {
	s := &Scorer{
		Insights: &InsightsClient{LLM: stubCompleter{reply: `{"additionalFactors":["payer history"],"adjustedScore":90,"insights":"elevated","specificRecommendations":["call payer"]}`}},
		Now:      fixedNow,
	}
	claim := Claim{PlanType: "Commercial", BilledAmount: 100}

	got := s.AssessRisk(context.Background(), claim)

	if got.AIInsights == nil {
		t.Fatalf("expected aiInsights, got nil")
	}
	// round(70*0.6 + 90*0.4) = 78
	if got.Score != 78 {
		t.Fatalf("expected blended score 78, got %d", got.Score)
	}
	if got.Level != LevelHigh {
		t.Fatalf("expected level high, got %q", got.Level)
	}
}
