package risk

// Fixed confidence constants for each recommendation source.
const (
	factorConfidence   = 0.85
	workflowConfidence = 0.9
	notesConfidence    = 0.7
)

// BuildRecommendations converts matched factors and a couple of claim-state
// checks into a flat prioritized list. Append order only; no deduplication.
func BuildRecommendations(factors []Factor, claim Claim) []Recommendation {
	out := make([]Recommendation, 0, len(factors)+2)

	for _, f := range factors {
		if f.Recommendation == "" {
			continue
		}
		out = append(out, Recommendation{
			Type:           string(f.Category),
			Recommendation: f.Recommendation,
			Priority:       string(f.Impact),
			Confidence:     factorConfidence,
		})
	}

	if claim.Status == "draft" {
		out = append(out, Recommendation{
			Type:           "Workflow",
			Recommendation: "Complete all required fields before submitting",
			Priority:       "medium",
			Confidence:     workflowConfidence,
		})
	}

	if claim.Notes == "" {
		out = append(out, Recommendation{
			Type:           "Documentation",
			Recommendation: "Add clinical notes to support medical necessity",
			Priority:       "low",
			Confidence:     notesConfidence,
		})
	}

	return out
}
