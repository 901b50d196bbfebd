package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/infrastructure/postgres/generated"
	"github.com/iho/gobudget/internal/usecase"
)

// SourceRepository implements usecase.SourceRepository.
type SourceRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewSourceRepository creates a new SourceRepository.
func NewSourceRepository(db generated.DBTX) *SourceRepository {
	return &SourceRepository{db: db, queries: generated.New(db)}
}

// Create creates a new source.
func (r *SourceRepository) Create(ctx context.Context, tx usecase.Transaction, source *domain.Source) error {
	err := queriesFor(r.db, tx).CreateSource(ctx, generated.CreateSourceParams{
		ID:            source.ID,
		OwnerID:       source.OwnerID,
		Name:          source.Name,
		AccountNumber: optionalText(source.AccountNumber),
		InitialAmount: decimalToNumeric(source.InitialAmount),
		Balance:       decimalToNumeric(source.Balance),
		Version:       source.Version,
		CreatedAt:     timeToPgTimestamptz(source.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(source.UpdatedAt),
	})

	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicateName
	case isForeignKeyViolation(err):
		return domain.ErrUserNotFound
	}

	return err
}

// GetByID retrieves a source owned by ownerID.
func (r *SourceRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Source, error) {
	row, err := r.queries.GetSourceByID(ctx, generated.GetSourceByIDParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, notFound(err, domain.ErrSourceNotFound)
	}

	return rowToSource(row), nil
}

// GetByIDForUpdate retrieves a source with a FOR UPDATE lock.
func (r *SourceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Source, error) {
	row, err := queriesFor(r.db, tx).GetSourceByIDForUpdate(ctx, generated.GetSourceByIDForUpdateParams{
		ID:      id,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, notFound(err, domain.ErrSourceNotFound)
	}

	return rowToSource(row), nil
}

// GetByIDsForUpdate locks several sources in id order.
func (r *SourceRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, ids []string) ([]*domain.Source, error) {
	rows, err := queriesFor(r.db, tx).GetSourcesByIDsForUpdate(ctx, generated.GetSourcesByIDsForUpdateParams{
		OwnerID: ownerID,
		Column2: ids,
	})
	if err != nil {
		return nil, err
	}

	return rowsToSources(rows), nil
}

// List lists the owner's sources in creation order.
func (r *SourceRepository) List(ctx context.Context, tx usecase.Transaction, ownerID string) ([]*domain.Source, error) {
	rows, err := queriesFor(r.db, tx).ListSourcesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return rowsToSources(rows), nil
}

// UpdateDetails updates the name and account number.
func (r *SourceRepository) UpdateDetails(ctx context.Context, tx usecase.Transaction, source *domain.Source) error {
	n, err := queriesFor(r.db, tx).UpdateSourceDetails(ctx, generated.UpdateSourceDetailsParams{
		ID:            source.ID,
		OwnerID:       source.OwnerID,
		Name:          source.Name,
		AccountNumber: optionalText(source.AccountNumber),
		UpdatedAt:     timeToPgTimestamptz(source.UpdatedAt),
	})

	return affected(n, err, domain.ErrSourceNotFound)
}

// UpdateBalance writes a new balance and bumps the version.
func (r *SourceRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	n, err := queriesFor(r.db, tx).UpdateSourceBalance(ctx, generated.UpdateSourceBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})

	return affected(n, err, domain.ErrSourceNotFound)
}

// UpdateInitialAmount writes the initial amount together with the
// recalculated balance.
func (r *SourceRepository) UpdateInitialAmount(ctx context.Context, tx usecase.Transaction, id string, initialAmount, balance decimal.Decimal, updatedAt time.Time) error {
	n, err := queriesFor(r.db, tx).UpdateSourceInitialAmount(ctx, generated.UpdateSourceInitialAmountParams{
		ID:            id,
		InitialAmount: decimalToNumeric(initialAmount),
		Balance:       decimalToNumeric(balance),
		UpdatedAt:     timeToPgTimestamptz(updatedAt),
	})

	return affected(n, err, domain.ErrSourceNotFound)
}

// Delete removes a source. Sources referenced by any transaction are
// rejected with domain.ErrInUse.
func (r *SourceRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	n, err := queriesFor(r.db, tx).DeleteSource(ctx, generated.DeleteSourceParams{ID: id, OwnerID: ownerID})
	if isForeignKeyViolation(err) {
		return domain.ErrInUse
	}

	return affected(n, err, domain.ErrSourceNotFound)
}

func affected(n int64, err, missing error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

func rowsToSources(rows []generated.Source) []*domain.Source {
	sources := make([]*domain.Source, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, rowToSource(row))
	}

	return sources
}

func rowToSource(row generated.Source) *domain.Source {
	return &domain.Source{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Name:          row.Name,
		AccountNumber: textPtr(row.AccountNumber),
		InitialAmount: numericToDecimal(row.InitialAmount),
		Balance:       numericToDecimal(row.Balance),
		Version:       row.Version,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
