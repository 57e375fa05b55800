package appeals

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"claims-backend/internal/claims"
	"claims-backend/internal/shared/telemetry"
)

// ErrNotDenied is returned when a letter is requested for a claim that has
// no recorded denial.
var ErrNotDenied = fmt.Errorf("claim has no recorded denial")

// Service generates and persists appeal letters.
type Service struct {
	Claims    claims.Repo
	Repo      Repo
	Generator *Generator
}

// GenerateForClaim drafts an appeal letter for a denied claim and persists
// it. Persistence failures are logged; the generated letter is still
// returned to the caller.
func (s *Service) GenerateForClaim(ctx context.Context, userID, claimID string) (Letter, error) {
	claim, err := s.Claims.GetByID(ctx, userID, claimID)
	if err != nil {
		return Letter{}, err
	}
	if claim.DenialReason == "" && claim.Status != claims.StatusDenied {
		return Letter{}, ErrNotDenied
	}

	letter := s.Generator.Generate(ctx, claim, DenialInfo{
		Reason: claim.DenialReason,
		Code:   claim.DenialCode,
		Date:   claim.DenialDate,
	})
	letter.ID = uuid.NewString()
	letter.ClaimID = claim.ID

	if err := s.Repo.Create(ctx, userID, letter); err != nil {
		telemetry.Error("failed to persist appeal letter", map[string]any{
			"claim_id": claimID,
			"error":    err.Error(),
		})
	}
	return letter, nil
}

// ListForClaim returns previously generated letters for a claim.
func (s *Service) ListForClaim(ctx context.Context, userID, claimID string) ([]Letter, error) {
	if _, err := s.Claims.GetByID(ctx, userID, claimID); err != nil {
		return nil, err
	}
	return s.Repo.ListByClaim(ctx, userID, claimID)
}
