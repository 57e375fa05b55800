package claims

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"claims-backend/internal/risk"
	"claims-backend/internal/shared/telemetry"
)

// CreateInput carries the fields accepted when registering a claim.
type CreateInput struct {
	ClaimNumber    string
	PatientName    string
	PayerName      string
	ProviderName   string
	ProviderNPI    string
	FacilityName   string
	PlanType       string
	DiagnosisCodes []string
	ProcedureCodes []string
	BilledAmount   float64
	ServiceDate    *time.Time
	Notes          string
}

// Service contains business logic for claims.
type Service struct {
	Repo   Repo
	Scorer *risk.Scorer
}

// Create registers a new draft claim for the user.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Claim, error) {
	in.PatientName = strings.TrimSpace(in.PatientName)
	in.PayerName = strings.TrimSpace(in.PayerName)
	if in.PatientName == "" {
		return Claim{}, fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if in.PayerName == "" {
		return Claim{}, fmt.Errorf("%w: payerName is required", ErrInvalidInput)
	}
	if in.BilledAmount < 0 {
		return Claim{}, fmt.Errorf("%w: billedAmount must not be negative", ErrInvalidInput)
	}

	now := time.Now().UTC()
	claim := Claim{
		ID:             uuid.NewString(),
		UserID:         userID,
		ClaimNumber:    strings.TrimSpace(in.ClaimNumber),
		PatientName:    in.PatientName,
		PayerName:      in.PayerName,
		ProviderName:   strings.TrimSpace(in.ProviderName),
		ProviderNPI:    strings.TrimSpace(in.ProviderNPI),
		FacilityName:   strings.TrimSpace(in.FacilityName),
		PlanType:       strings.TrimSpace(in.PlanType),
		DiagnosisCodes: normalizeCodes(in.DiagnosisCodes),
		ProcedureCodes: normalizeCodes(in.ProcedureCodes),
		BilledAmount:   in.BilledAmount,
		ServiceDate:    in.ServiceDate,
		Status:         StatusDraft,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, claim); err != nil {
		return Claim{}, err
	}
	return claim, nil
}

// Get returns a claim owned by the user.
func (s *Service) Get(ctx context.Context, userID, claimID string) (Claim, error) {
	return s.Repo.GetByID(ctx, userID, claimID)
}

// List returns the user's claims, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Claim, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Analyze runs the denial-risk assessment for the claim and persists the
// result. Persistence failures do not invalidate the assessment itself.
func (s *Service) Analyze(ctx context.Context, userID, claimID string) (risk.Assessment, error) {
	claim, err := s.Repo.GetByID(ctx, userID, claimID)
	if err != nil {
		return risk.Assessment{}, err
	}

	assessment := s.Scorer.AssessRisk(ctx, claim.RiskInput())

	if err := s.Repo.UpdateRiskAssessment(ctx, userID, claimID, assessment); err != nil {
		telemetry.Error("failed to persist risk assessment", map[string]any{
			"claim_id": claimID,
			"error":    err.Error(),
		})
	}
	return assessment, nil
}

// RecordDenial marks the claim denied with the payer's stated reason.
func (s *Service) RecordDenial(ctx context.Context, userID, claimID, reason, code string, denialDate *time.Time) (Claim, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Claim{}, fmt.Errorf("%w: denial reason is required", ErrInvalidInput)
	}
	if err := s.Repo.UpdateDenial(ctx, userID, claimID, reason, strings.TrimSpace(code), denialDate); err != nil {
		return Claim{}, err
	}
	return s.Repo.GetByID(ctx, userID, claimID)
}

// UpdateStatus moves the claim through its workflow states.
func (s *Service) UpdateStatus(ctx context.Context, userID, claimID, status string) (Claim, error) {
	switch status {
	case StatusDraft, StatusSubmitted, StatusDenied, StatusAppealed, StatusPaid:
	default:
		return Claim{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if err := s.Repo.UpdateStatus(ctx, userID, claimID, status); err != nil {
		return Claim{}, err
	}
	return s.Repo.GetByID(ctx, userID, claimID)
}

func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}
