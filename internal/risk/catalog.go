package risk

// Category groups risk factors by the part of the claim lifecycle they touch.
type Category string

const (
	CategoryAuthorization Category = "Authorization"
	CategoryCoding        Category = "Coding"
	CategoryDocumentation Category = "Documentation"
	CategoryEligibility   Category = "Eligibility"
	CategoryBilling       Category = "Billing"
	CategoryPayer         Category = "Payer"
)

// Impact tiers a factor's severity independent of its weight.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// FactorDefinition is an immutable catalog entry. Definitions are loaded once
// at process start and never mutated; per-claim instances are produced with
// Instantiate.
type FactorDefinition struct {
	ID             string   `json:"id"`
	Category       Category `json:"category"`
	Description    string   `json:"description"`
	Impact         Impact   `json:"impact"`
	Weight         int      `json:"weight"`
	Recommendation string   `json:"recommendation"`
}

// Instantiate produces a per-claim Factor carrying the given claim-specific
// description. The catalog entry itself is left untouched.
func (d FactorDefinition) Instantiate(description string) Factor {
	return Factor{
		ID:             d.ID,
		Category:       d.Category,
		Description:    description,
		Impact:         d.Impact,
		Weight:         d.Weight,
		Recommendation: d.Recommendation,
	}
}

var catalog = []FactorDefinition{
	{
		ID:             "missing_diagnosis",
		Category:       CategoryCoding,
		Description:    "Missing diagnosis codes",
		Impact:         ImpactHigh,
		Weight:         25,
		Recommendation: "Add ICD-10 diagnosis codes before submission",
	},
	{
		ID:             "missing_procedure",
		Category:       CategoryCoding,
		Description:    "Missing procedure codes",
		Impact:         ImpactHigh,
		Weight:         20,
		Recommendation: "Add CPT/HCPCS procedure codes before submission",
	},
	{
		ID:             "missing_provider_info",
		Category:       CategoryBilling,
		Description:    "Missing provider NPI",
		Impact:         ImpactMedium,
		Weight:         10,
		Recommendation: "Verify the rendering provider NPI is present and valid",
	},
	{
		ID:             "high_amount",
		Category:       CategoryBilling,
		Description:    "High billed amount",
		Impact:         ImpactMedium,
		Weight:         15,
		Recommendation: "Attach supporting documentation for high-dollar claims",
	},
	{
		ID:             "medicare_strict",
		Category:       CategoryPayer,
		Description:    "Medicare documentation requirements",
		Impact:         ImpactMedium,
		Weight:         10,
		Recommendation: "Review Medicare LCD/NCD coverage rules for the billed services",
	},
	{
		ID:             "medicaid_strict",
		Category:       CategoryPayer,
		Description:    "Medicaid documentation requirements",
		Impact:         ImpactMedium,
		Weight:         10,
		Recommendation: "Confirm state Medicaid coverage and prior authorization rules",
	},
	{
		ID:             "timely_filing",
		Category:       CategoryBilling,
		Description:    "Timely filing window at risk",
		Impact:         ImpactHigh,
		Weight:         30,
		Recommendation: "Submit immediately; most payers enforce 90-180 day filing windows",
	},
	{
		ID:             "missing_prior_auth",
		Category:       CategoryAuthorization,
		Description:    "Missing prior authorization",
		Impact:         ImpactHigh,
		Weight:         30,
		Recommendation: "Obtain prior authorization before submitting the claim",
	},
	{
		ID:             "invalid_member_id",
		Category:       CategoryEligibility,
		Description:    "Member ID failed eligibility check",
		Impact:         ImpactMedium,
		Weight:         20,
		Recommendation: "Re-verify member eligibility and ID with the payer",
	},
	{
		ID:             "insufficient_documentation",
		Category:       CategoryDocumentation,
		Description:    "Insufficient clinical documentation",
		Impact:         ImpactMedium,
		Weight:         15,
		Recommendation: "Attach clinical notes supporting medical necessity",
	},
}

var catalogByID = func() map[string]FactorDefinition {
	m := make(map[string]FactorDefinition, len(catalog))
	for _, def := range catalog {
		m[def.ID] = def
	}
	return m
}()

// Catalog returns the full ordered factor table.
func Catalog() []FactorDefinition {
	out := make([]FactorDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (FactorDefinition, bool) {
	def, ok := catalogByID[id]
	return def, ok
}
