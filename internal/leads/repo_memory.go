package leads

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo stores leads in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Lead
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Lead)}
}

// Create stores a lead.
func (r *MemoryRepo) Create(ctx context.Context, lead Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[lead.ID] = lead
	return nil
}

// MarkCRMSynced records a successful CRM sync.
func (r *MemoryRepo) MarkCRMSynced(ctx context.Context, leadID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.byID[leadID]
	if !ok {
		return nil
	}
	lead.CRMSyncedAt = &at
	r.byID[leadID] = lead
	return nil
}

// Get returns a stored lead. Used by tests.
func (r *MemoryRepo) Get(leadID string) (Lead, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lead, ok := r.byID[leadID]
	return lead, ok
}
