package claims

import (
	"time"

	"claims-backend/internal/risk"
)

// Claim statuses as tracked by the claims workflow.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusDenied    = "denied"
	StatusAppealed  = "appealed"
	StatusPaid      = "paid"
)

// Claim represents an insurance claim owned by a user.
type Claim struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	ClaimNumber    string           `json:"claimNumber"`
	PatientName    string           `json:"patientName"`
	PayerName      string           `json:"payerName"`
	ProviderName   string           `json:"providerName"`
	ProviderNPI    string           `json:"providerNpi,omitempty"`
	FacilityName   string           `json:"facilityName,omitempty"`
	PlanType       string           `json:"planType"`
	DiagnosisCodes []string         `json:"diagnosisCodes"`
	ProcedureCodes []string         `json:"procedureCodes"`
	BilledAmount   float64          `json:"billedAmount"`
	ServiceDate    *time.Time       `json:"serviceDate,omitempty"`
	Status         string           `json:"status"`
	Notes          string           `json:"notes,omitempty"`
	DenialReason   string           `json:"denialReason,omitempty"`
	DenialCode     string           `json:"denialCode,omitempty"`
	DenialDate     *time.Time       `json:"denialDate,omitempty"`
	RiskAssessment *risk.Assessment `json:"riskAssessment,omitempty"`
	RiskAssessedAt *time.Time       `json:"riskAssessedAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// RiskInput projects the claim onto the scorer's read-only view.
func (c Claim) RiskInput() risk.Claim {
	return risk.Claim{
		ID:             c.ID,
		ClaimNumber:    c.ClaimNumber,
		DiagnosisCodes: c.DiagnosisCodes,
		ProcedureCodes: c.ProcedureCodes,
		ProviderNPI:    c.ProviderNPI,
		BilledAmount:   c.BilledAmount,
		PlanType:       c.PlanType,
		ServiceDate:    c.ServiceDate,
		Status:         c.Status,
		Notes:          c.Notes,
	}
}
