package leads

import (
	"context"
	"time"
)

// Repo defines persistence operations for leads.
type Repo interface {
	Create(ctx context.Context, lead Lead) error
	MarkCRMSynced(ctx context.Context, leadID string, at time.Time) error
}
