package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SourceRepository defines data access for sources. Every lookup is scoped to
// an owner; a source owned by someone else is reported as not found.
type SourceRepository interface {
	Create(ctx context.Context, tx Transaction, source *domain.Source) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Source, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, ownerID, id string) (*domain.Source, error)
	// GetByIDsForUpdate locks the requested sources in id order. Missing ids
	// are omitted from the result.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ownerID string, ids []string) ([]*domain.Source, error)
	// List returns the owner's sources; tx may be nil.
	List(ctx context.Context, tx Transaction, ownerID string) ([]*domain.Source, error)
	UpdateDetails(ctx context.Context, tx Transaction, source *domain.Source) error
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateInitialAmount(ctx context.Context, tx Transaction, id string, initialAmount, balance decimal.Decimal, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, ownerID, id string) error
}

// TransactionTypeRepository defines data access for transaction types.
type TransactionTypeRepository interface {
	ListShared(ctx context.Context) ([]*domain.TransactionType, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.TransactionType, error)
	Create(ctx context.Context, tx Transaction, t *domain.TransactionType) error
	Rename(ctx context.Context, tx Transaction, ownerID, id, name string, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, ownerID, id string) error
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	ListShared(ctx context.Context) ([]*domain.Category, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error)
	Create(ctx context.Context, tx Transaction, c *domain.Category) error
	Rename(ctx context.Context, tx Transaction, ownerID, id, name string, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, ownerID, id string) error
}

// TransactionFilter narrows transaction listings and sums.
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	SourceID   string
	TypeID     string
	CategoryID string
	Limit      int
	Offset     int
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, ownerID, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, t *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, ownerID, id string) error
	List(ctx context.Context, ownerID string, filter TransactionFilter) ([]*domain.Transaction, error)
	// ListBySource returns the full history of a source as primary or
	// target; tx may be nil.
	ListBySource(ctx context.Context, tx Transaction, sourceID string) ([]*domain.Transaction, error)
	// Sum aggregates amounts by kind; income/expense count against the
	// primary source, transfers in/out are relative to filter.SourceID when
	// set.
	Sum(ctx context.Context, ownerID string, filter TransactionFilter) (domain.Totals, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// MetricsRecorder receives ledger instrumentation.
type MetricsRecorder interface {
	RecordOperation(operation string, started time.Time, err error)
	RecordReconciliation(checked, discrepancies int)
}

type nopMetrics struct{}

func (nopMetrics) RecordOperation(string, time.Time, error) {}
func (nopMetrics) RecordReconciliation(int, int)            {}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}
