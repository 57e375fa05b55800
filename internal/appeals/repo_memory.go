package appeals

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores appeal letters in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byClaim map[string][]Letter
	owners  map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byClaim: make(map[string][]Letter),
		owners:  make(map[string]string),
	}
}

// Create stores a generated letter.
func (r *MemoryRepo) Create(ctx context.Context, userID string, letter Letter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byClaim[letter.ClaimID] = append(r.byClaim[letter.ClaimID], letter)
	r.owners[letter.ClaimID] = userID
	return nil
}

// ListByClaim returns letters for a claim, newest first.
func (r *MemoryRepo) ListByClaim(ctx context.Context, userID, claimID string) ([]Letter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if owner, ok := r.owners[claimID]; ok && owner != userID {
		return []Letter{}, nil
	}
	letters := r.byClaim[claimID]
	out := make([]Letter, len(letters))
	copy(out, letters)
	sort.Slice(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	return out, nil
}
