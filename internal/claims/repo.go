package claims

import (
	"context"
	"time"

	"claims-backend/internal/risk"
)

// Repo defines persistence operations for claims.
type Repo interface {
	Create(ctx context.Context, claim Claim) error
	GetByID(ctx context.Context, userID, claimID string) (Claim, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Claim, error)
	UpdateDenial(ctx context.Context, userID, claimID, reason, code string, denialDate *time.Time) error
	UpdateRiskAssessment(ctx context.Context, userID, claimID string, assessment risk.Assessment) error
	UpdateStatus(ctx context.Context, userID, claimID, status string) error
}
