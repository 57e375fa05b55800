package appeals

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an appeal letter does not exist.
var ErrNotFound = errors.New("appeal letter not found")

// Repo defines persistence operations for appeal letters.
type Repo interface {
	Create(ctx context.Context, userID string, letter Letter) error
	ListByClaim(ctx context.Context, userID, claimID string) ([]Letter, error)
}
