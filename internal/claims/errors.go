package claims

import "errors"

// ErrNotFound is returned when a claim does not exist or belongs to another user.
var ErrNotFound = errors.New("claim not found")

// ErrInvalidInput indicates the caller supplied an unusable claim payload.
var ErrInvalidInput = errors.New("invalid claim input")
