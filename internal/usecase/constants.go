package usecase

import "time"

const (
	// MaxApprovedLoans is the maximum number of approved loans an account may
	// hold at once.
	MaxApprovedLoans = 3

	// NotifyTimeout bounds post-commit notification dispatch so a slow mail
	// server cannot hold a request open.
	NotifyTimeout = 5 * time.Second

	// AccountNoAttempts is how many candidate account numbers registration
	// tries before giving up on a unique one.
	AccountNoAttempts = 5

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyProcessing marks an idempotency key whose first request has
	// not finished yet.
	IdempotencyProcessing = "processing"
)
