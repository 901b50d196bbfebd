package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultCatalogCacheTTL is how long the shared default catalog stays cached.
	DefaultCatalogCacheTTL = 10 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// Ledger operation names used for metrics and logs.
const (
	OpCreateTransaction = "transaction.create"
	OpUpdateTransaction = "transaction.update"
	OpDeleteTransaction = "transaction.delete"
	OpRecalculate       = "source.recalculate"
)
