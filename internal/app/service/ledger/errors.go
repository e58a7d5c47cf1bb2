package ledger

import "errors"

var (
	// ErrInsufficientCredits means the balance check failed; nothing was
	// written. Not retryable without a top-up.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrInvalidRequest covers missing user id, missing idempotency key or a
	// negative cost.
	ErrInvalidRequest = errors.New("invalid ledger request")
)
