package appeals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"claims-backend/internal/claims"
	"claims-backend/internal/llm"
	"claims-backend/internal/shared/metrics"
	"claims-backend/internal/shared/telemetry"
)

// Generator produces appeal letters, preferring the configured LLM and
// falling back to a fixed template when the model is unavailable or fails.
type Generator struct {
	LLM   llm.Completer
	Model string
	Now   func() time.Time
}

// Generate drafts an appeal letter for a denied claim. It never fails:
// any AI error degrades to the template path.
func (g *Generator) Generate(ctx context.Context, claim claims.Claim, denial DenialInfo) Letter {
	if g.LLM != nil && llm.IsConfigured(g.LLM) {
		text, err := g.LLM.Complete(ctx, buildLetterPrompt(claim, denial))
		if err == nil && strings.TrimSpace(text) != "" {
			metrics.IncAppealLetter(TypeAIGenerated)
			return Letter{
				Letter:      strings.TrimSpace(text),
				Type:        TypeAIGenerated,
				Model:       g.Model,
				GeneratedAt: g.now(),
			}
		}
		if err != nil {
			telemetry.Warn("appeal letter generation degraded to template", map[string]any{
				"claim_id": claim.ID,
				"error":    err.Error(),
			})
		}
	}

	metrics.IncAppealLetter(TypeTemplate)
	return Letter{
		Letter:      templateLetter(claim, denial, g.now()),
		Type:        TypeTemplate,
		GeneratedAt: g.now(),
	}
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now().UTC()
}

func buildLetterPrompt(claim claims.Claim, denial DenialInfo) string {
	var b strings.Builder
	b.WriteString("Write a formal business letter appealing a denied health insurance claim.\n")
	b.WriteString("Use a professional, factual tone. Address the letter to the payer's appeals department.\n\n")
	b.WriteString("Claim details:\n")
	fmt.Fprintf(&b, "- Claim number: %s\n", orPlaceholder(claim.ClaimNumber, "[Claim Number]"))
	fmt.Fprintf(&b, "- Patient: %s\n", orPlaceholder(claim.PatientName, "[Patient Name]"))
	fmt.Fprintf(&b, "- Payer: %s\n", orPlaceholder(claim.PayerName, "[Payer Name]"))
	fmt.Fprintf(&b, "- Provider: %s\n", orPlaceholder(claim.ProviderName, "[Provider Name]"))
	fmt.Fprintf(&b, "- Provider NPI: %s\n", orPlaceholder(claim.ProviderNPI, "[Provider NPI]"))
	fmt.Fprintf(&b, "- Facility: %s\n", orPlaceholder(claim.FacilityName, "[Facility Name]"))
	fmt.Fprintf(&b, "- Billed amount: $%.2f\n", claim.BilledAmount)
	if claim.ServiceDate != nil {
		fmt.Fprintf(&b, "- Date of service: %s\n", claim.ServiceDate.Format("January 2, 2006"))
	}
	b.WriteString("\nDenial details:\n")
	fmt.Fprintf(&b, "- Reason: %s\n", orPlaceholder(denial.Reason, "[Denial Reason]"))
	if denial.Code != "" {
		fmt.Fprintf(&b, "- Denial code: %s\n", denial.Code)
	}
	if denial.Date != nil {
		fmt.Fprintf(&b, "- Denial date: %s\n", denial.Date.Format("January 2, 2006"))
	}
	b.WriteString("\nThe letter should state the grounds for appeal, reference the enclosed supporting documentation, and request reconsideration and payment of the claim. Reply with the letter text only.")
	return b.String()
}

func templateLetter(claim claims.Claim, denial DenialInfo, now time.Time) string {
	providerName := orPlaceholder(claim.ProviderName, "[Provider Name]")
	providerNPI := orPlaceholder(claim.ProviderNPI, "[Provider NPI]")
	facility := orPlaceholder(claim.FacilityName, "[Facility Name]")
	patient := orPlaceholder(claim.PatientName, "[Patient Name]")
	payer := orPlaceholder(claim.PayerName, "[Payer Name]")
	claimNumber := orPlaceholder(claim.ClaimNumber, "[Claim Number]")
	reason := orPlaceholder(denial.Reason, "[Denial Reason]")

	serviceDate := "[Date of Service]"
	if claim.ServiceDate != nil {
		serviceDate = claim.ServiceDate.Format("January 2, 2006")
	}
	denialDate := "[Denial Date]"
	if denial.Date != nil {
		denialDate = denial.Date.Format("January 2, 2006")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", now.Format("January 2, 2006"))
	fmt.Fprintf(&b, "%s\nAppeals Department\n\n", payer)
	fmt.Fprintf(&b, "Re: Appeal of Claim Denial\nClaim Number: %s\nPatient: %s\nDate of Service: %s\n\n", claimNumber, patient, serviceDate)
	b.WriteString("Dear Appeals Department,\n\n")
	fmt.Fprintf(&b,
		"I am writing on behalf of %s (NPI: %s) at %s to formally appeal the denial of the above-referenced claim, "+
			"denied on %s for the following stated reason: %s.\n\n",
		providerName, providerNPI, facility, denialDate, reason)
	b.WriteString("We respectfully request reconsideration of this determination on the following grounds:\n\n")
	b.WriteString("1. The services rendered were medically necessary and appropriate for the patient's condition, as documented in the enclosed clinical records.\n")
	b.WriteString("2. The claim was submitted in accordance with the applicable coverage policies and coding guidelines in effect on the date of service.\n")
	b.WriteString("3. The supporting documentation enclosed with this appeal substantiates the services billed and addresses the stated reason for denial.\n\n")
	fmt.Fprintf(&b, "The billed amount for this claim is $%.2f. We request that the claim be reprocessed and paid in full.\n\n", claim.BilledAmount)
	b.WriteString("Please contact our office if additional information is required. We look forward to your timely review of this appeal.\n\n")
	b.WriteString("Sincerely,\n\n")
	fmt.Fprintf(&b, "%s\n%s\n\n", providerName, facility)
	b.WriteString("Enclosures:\n")
	b.WriteString("- Copy of original claim\n")
	b.WriteString("- Copy of denial notice\n")
	b.WriteString("- Clinical documentation and medical records\n")
	return b.String()
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
