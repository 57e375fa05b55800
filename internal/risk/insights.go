package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"claims-backend/internal/llm"
)

// InsightsClient asks the hosted model for additional risk context. One
// attempt per call, no retries; every failure mode is an error the scorer
// treats as "skip augmentation".
type InsightsClient struct {
	LLM   llm.Completer
	Model string
}

// RiskInsights sends the claim and already-matched factors to the model and
// parses its constrained JSON reply.
func (c *InsightsClient) RiskInsights(ctx context.Context, claim Claim, factors []Factor) (*AIInsights, error) {
	if !llm.IsConfigured(c.LLM) {
		return nil, llm.ErrNotConfigured
	}

	raw, err := c.LLM.Complete(ctx, buildInsightsPrompt(claim, factors))
	if err != nil {
		return nil, fmt.Errorf("llm complete: %w", err)
	}

	var insights AIInsights
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &insights); err != nil {
		return nil, fmt.Errorf("llm output parse: %w", err)
	}
	insights.Model = c.Model
	return &insights, nil
}

func buildInsightsPrompt(claim Claim, factors []Factor) string {
	var b strings.Builder
	b.WriteString("You are a healthcare claims denial-risk analyst. Review this claim and the risk factors already identified, then suggest refinements.\n\n")
	b.WriteString("Claim:\n")
	fmt.Fprintf(&b, "- Claim number: %s\n", orUnknown(claim.ClaimNumber))
	fmt.Fprintf(&b, "- Diagnosis codes: %s\n", joinOrNone(claim.DiagnosisCodes))
	fmt.Fprintf(&b, "- Procedure codes: %s\n", joinOrNone(claim.ProcedureCodes))
	fmt.Fprintf(&b, "- Provider NPI: %s\n", orUnknown(claim.ProviderNPI))
	fmt.Fprintf(&b, "- Billed amount: $%.2f\n", claim.BilledAmount)
	fmt.Fprintf(&b, "- Plan type: %s\n", orUnknown(claim.PlanType))
	if claim.ServiceDate != nil {
		fmt.Fprintf(&b, "- Service date: %s\n", claim.ServiceDate.Format("2006-01-02"))
	} else {
		b.WriteString("- Service date: missing\n")
	}
	fmt.Fprintf(&b, "- Status: %s\n", orUnknown(claim.Status))

	b.WriteString("\nRisk factors already identified:\n")
	if len(factors) == 0 {
		b.WriteString("- none\n")
	}
	for _, f := range factors {
		fmt.Fprintf(&b, "- [%s] %s (weight %d)\n", f.Category, f.Description, f.Weight)
	}

	b.WriteString(`
Respond with ONLY a JSON object, no prose and no markdown, in this shape:
{"additionalFactors": ["..."], "adjustedScore": <number 0-100>, "insights": "...", "specificRecommendations": ["..."]}`)
	return b.String()
}

// StripCodeFences removes leading/trailing markdown code-fence markers that
// hosted models sometimes wrap around JSON replies.
func StripCodeFences(raw string) string {
	out := strings.TrimSpace(raw)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unknown"
	}
	return value
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
