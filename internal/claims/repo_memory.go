package claims

import (
	"context"
	"sort"
	"sync"
	"time"

	"claims-backend/internal/risk"
)

// MemoryRepo stores claims in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Claim
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Claim),
		byUser: make(map[string][]string),
	}
}

// Create stores the claim.
func (r *MemoryRepo) Create(ctx context.Context, claim Claim) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[claim.ID] = claim
	r.byUser[claim.UserID] = append(r.byUser[claim.UserID], claim.ID)
	return nil
}

// GetByID returns a claim by ID scoped to the owning user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, claimID string) (Claim, error) {
	if err := ctx.Err(); err != nil {
		return Claim{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	claim, ok := r.byID[claimID]
	if !ok || claim.UserID != userID {
		return Claim{}, ErrNotFound
	}
	return claim, nil
}

// ListByUser returns claims for a user ordered newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Claim, 0, len(r.byUser[userID]))
	for _, id := range r.byUser[userID] {
		out = append(out, r.byID[id])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Claim{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// UpdateDenial records denial details and moves the claim to denied.
func (r *MemoryRepo) UpdateDenial(ctx context.Context, userID, claimID, reason, code string, denialDate *time.Time) error {
	return r.update(ctx, userID, claimID, func(claim *Claim) {
		claim.DenialReason = reason
		claim.DenialCode = code
		claim.DenialDate = denialDate
		claim.Status = StatusDenied
	})
}

// UpdateRiskAssessment stores the latest assessment on the claim.
func (r *MemoryRepo) UpdateRiskAssessment(ctx context.Context, userID, claimID string, assessment risk.Assessment) error {
	return r.update(ctx, userID, claimID, func(claim *Claim) {
		a := assessment
		claim.RiskAssessment = &a
		at := assessment.AnalyzedAt
		claim.RiskAssessedAt = &at
	})
}

// UpdateStatus moves the claim to the given status.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, claimID, status string) error {
	return r.update(ctx, userID, claimID, func(claim *Claim) {
		claim.Status = status
	})
}

func (r *MemoryRepo) update(ctx context.Context, userID, claimID string, apply func(*Claim)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	claim, ok := r.byID[claimID]
	if !ok || claim.UserID != userID {
		return ErrNotFound
	}
	apply(&claim)
	claim.UpdatedAt = time.Now().UTC()
	r.byID[claimID] = claim
	return nil
}
