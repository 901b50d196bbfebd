package postgres

import (
	"context"

	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/infrastructure/postgres/generated"
	"github.com/iho/gobudget/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db, queries: generated.New(db)}
}

// Create inserts a transaction row.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	return queriesFor(r.db, tx).CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:             t.ID,
		OwnerID:        t.OwnerID,
		Description:    t.Description,
		Amount:         decimalToNumeric(t.Amount),
		Date:           timeToPgTimestamptz(t.Date),
		TypeID:         t.TypeID,
		TypeKind:       string(t.TypeKind),
		SourceID:       t.SourceID,
		TargetSourceID: optionalText(t.TargetSourceID),
		CategoryID:     optionalText(t.CategoryID),
		CreatedAt:      timeToPgTimestamptz(t.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(t.UpdatedAt),
	})
}

// GetByID retrieves a transaction owned by ownerID.
func (r *TransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, generated.GetTransactionByIDParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, notFound(err, domain.ErrTransactionNotFound)
	}

	return rowToTransaction(row), nil
}

// GetByIDForUpdate retrieves a transaction with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Transaction, error) {
	row, err := queriesFor(r.db, tx).GetTransactionByIDForUpdate(ctx, generated.GetTransactionByIDForUpdateParams{
		ID:      id,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, notFound(err, domain.ErrTransactionNotFound)
	}

	return rowToTransaction(row), nil
}

// Update rewrites every mutable column of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	n, err := queriesFor(r.db, tx).UpdateTransaction(ctx, generated.UpdateTransactionParams{
		ID:             t.ID,
		OwnerID:        t.OwnerID,
		Description:    t.Description,
		Amount:         decimalToNumeric(t.Amount),
		Date:           timeToPgTimestamptz(t.Date),
		TypeID:         t.TypeID,
		TypeKind:       string(t.TypeKind),
		SourceID:       t.SourceID,
		TargetSourceID: optionalText(t.TargetSourceID),
		CategoryID:     optionalText(t.CategoryID),
		UpdatedAt:      timeToPgTimestamptz(t.UpdatedAt),
	})

	return affected(n, err, domain.ErrTransactionNotFound)
}

// Delete removes a transaction row.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	n, err := queriesFor(r.db, tx).DeleteTransaction(ctx, generated.DeleteTransactionParams{ID: id, OwnerID: ownerID})

	return affected(n, err, domain.ErrTransactionNotFound)
}

// List lists transactions newest first.
func (r *TransactionRepository) List(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, generated.ListTransactionsParams{
		OwnerID:    ownerID,
		SourceID:   filterText(filter.SourceID),
		TypeID:     filterText(filter.TypeID),
		CategoryID: filterText(filter.CategoryID),
		FromDate:   optionalTime(filter.From),
		ToDate:     optionalTime(filter.To),
		RowLimit:   int32(filter.Limit),
		RowOffset:  int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// ListBySource returns every transaction touching sourceID in date order.
func (r *TransactionRepository) ListBySource(ctx context.Context, tx usecase.Transaction, sourceID string) ([]*domain.Transaction, error) {
	rows, err := queriesFor(r.db, tx).ListTransactionsBySource(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// Sum aggregates amounts per kind for the filtered transactions.
func (r *TransactionRepository) Sum(ctx context.Context, ownerID string, filter usecase.TransactionFilter) (domain.Totals, error) {
	row, err := r.queries.SumTransactions(ctx, generated.SumTransactionsParams{
		OwnerID:    ownerID,
		SourceID:   filterText(filter.SourceID),
		TypeID:     filterText(filter.TypeID),
		CategoryID: filterText(filter.CategoryID),
		FromDate:   optionalTime(filter.From),
		ToDate:     optionalTime(filter.To),
	})
	if err != nil {
		return domain.Totals{}, err
	}

	return domain.Totals{
		Income:      numericToDecimal(row.Income),
		Expense:     numericToDecimal(row.Expense),
		TransferIn:  numericToDecimal(row.TransferIn),
		TransferOut: numericToDecimal(row.TransferOut),
		Count:       row.TransactionCount,
	}, nil
}

func rowsToTransactions(rows []generated.Transaction) []*domain.Transaction {
	txs := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, rowToTransaction(row))
	}

	return txs
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:             row.ID,
		OwnerID:        row.OwnerID,
		Description:    row.Description,
		Amount:         numericToDecimal(row.Amount),
		Date:           row.Date.Time,
		TypeID:         row.TypeID,
		TypeKind:       domain.TypeKind(row.TypeKind),
		SourceID:       row.SourceID,
		TargetSourceID: textPtr(row.TargetSourceID),
		CategoryID:     textPtr(row.CategoryID),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
