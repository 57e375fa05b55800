package llm

import (
	"context"
	"errors"
)

// Completer abstracts hosted text-generation providers. Implementations make a
// single network round-trip per call; callers own any fallback behavior.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider credentials are set.
var ErrNotConfigured = errors.New("llm not configured")

// Disabled is the no-provider Completer. Every call reports ErrNotConfigured,
// which callers treat as the degraded (rule-only / template) mode.
type Disabled struct{}

// Complete returns ErrNotConfigured.
func (Disabled) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// IsConfigured reports whether c is a usable provider.
func IsConfigured(c Completer) bool {
	if c == nil {
		return false
	}
	_, ok := c.(Disabled)
	return !ok
}
