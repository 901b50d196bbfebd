package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/infrastructure/postgres/generated"
	"github.com/iho/gobudget/internal/usecase"
)

// TransactionTypeRepository implements usecase.TransactionTypeRepository.
// Shared defaults have a NULL owner and are never written through it.
type TransactionTypeRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewTransactionTypeRepository creates a new TransactionTypeRepository.
func NewTransactionTypeRepository(db generated.DBTX) *TransactionTypeRepository {
	return &TransactionTypeRepository{db: db, queries: generated.New(db)}
}

// ListShared lists the shared default types.
func (r *TransactionTypeRepository) ListShared(ctx context.Context) ([]*domain.TransactionType, error) {
	rows, err := r.queries.ListSharedTransactionTypes(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToTypes(rows), nil
}

// ListByOwner lists the types created by ownerID.
func (r *TransactionTypeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.TransactionType, error) {
	rows, err := r.queries.ListTransactionTypesByOwner(ctx, ownerText(ownerID))
	if err != nil {
		return nil, err
	}

	return rowsToTypes(rows), nil
}

// Create inserts an owned type.
func (r *TransactionTypeRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.TransactionType) error {
	err := queriesFor(r.db, tx).CreateTransactionType(ctx, generated.CreateTransactionTypeParams{
		ID:        t.ID,
		Name:      t.Name,
		Kind:      string(t.Kind),
		OwnerID:   optionalText(t.OwnerID),
		CreatedAt: timeToPgTimestamptz(t.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(t.UpdatedAt),
	})

	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicateName
	case isForeignKeyViolation(err):
		return domain.ErrUserNotFound
	}

	return err
}

// Rename renames an owned type.
func (r *TransactionTypeRepository) Rename(ctx context.Context, tx usecase.Transaction, ownerID, id, name string, updatedAt time.Time) error {
	n, err := queriesFor(r.db, tx).RenameTransactionType(ctx, generated.RenameTransactionTypeParams{
		ID:        id,
		OwnerID:   ownerText(ownerID),
		Name:      name,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}

	return affected(n, err, domain.ErrTransactionTypeNotFound)
}

// Delete removes an owned type that no transaction or category references.
func (r *TransactionTypeRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	n, err := queriesFor(r.db, tx).DeleteTransactionType(ctx, generated.DeleteTransactionTypeParams{
		ID:      id,
		OwnerID: ownerText(ownerID),
	})
	if isForeignKeyViolation(err) {
		return domain.ErrInUse
	}

	return affected(n, err, domain.ErrTransactionTypeNotFound)
}

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db generated.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db, queries: generated.New(db)}
}

// ListShared lists the shared default categories.
func (r *CategoryRepository) ListShared(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.queries.ListSharedCategories(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToCategories(rows), nil
}

// ListByOwner lists the categories created by ownerID.
func (r *CategoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	rows, err := r.queries.ListCategoriesByOwner(ctx, ownerText(ownerID))
	if err != nil {
		return nil, err
	}

	return rowsToCategories(rows), nil
}

// Create inserts an owned category.
func (r *CategoryRepository) Create(ctx context.Context, tx usecase.Transaction, c *domain.Category) error {
	err := queriesFor(r.db, tx).CreateCategory(ctx, generated.CreateCategoryParams{
		ID:        c.ID,
		Name:      c.Name,
		TypeID:    c.TypeID,
		OwnerID:   optionalText(c.OwnerID),
		CreatedAt: timeToPgTimestamptz(c.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(c.UpdatedAt),
	})

	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicateName
	case isForeignKeyViolation(err):
		return domain.ErrTransactionTypeNotFound
	}

	return err
}

// Rename renames an owned category.
func (r *CategoryRepository) Rename(ctx context.Context, tx usecase.Transaction, ownerID, id, name string, updatedAt time.Time) error {
	n, err := queriesFor(r.db, tx).RenameCategory(ctx, generated.RenameCategoryParams{
		ID:        id,
		OwnerID:   ownerText(ownerID),
		Name:      name,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}

	return affected(n, err, domain.ErrCategoryNotFound)
}

// Delete removes an owned category that no transaction references.
func (r *CategoryRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	n, err := queriesFor(r.db, tx).DeleteCategory(ctx, generated.DeleteCategoryParams{
		ID:      id,
		OwnerID: ownerText(ownerID),
	})
	if isForeignKeyViolation(err) {
		return domain.ErrInUse
	}

	return affected(n, err, domain.ErrCategoryNotFound)
}

func ownerText(ownerID string) pgtype.Text {
	return pgtype.Text{String: ownerID, Valid: true}
}

func rowsToTypes(rows []generated.TransactionType) []*domain.TransactionType {
	types := make([]*domain.TransactionType, 0, len(rows))
	for _, row := range rows {
		types = append(types, &domain.TransactionType{
			ID:        row.ID,
			Name:      row.Name,
			Kind:      domain.TypeKind(row.Kind),
			OwnerID:   textPtr(row.OwnerID),
			CreatedAt: row.CreatedAt.Time,
			UpdatedAt: row.UpdatedAt.Time,
		})
	}

	return types
}

func rowsToCategories(rows []generated.Category) []*domain.Category {
	categories := make([]*domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, &domain.Category{
			ID:        row.ID,
			Name:      row.Name,
			TypeID:    row.TypeID,
			OwnerID:   textPtr(row.OwnerID),
			CreatedAt: row.CreatedAt.Time,
			UpdatedAt: row.UpdatedAt.Time,
		})
	}

	return categories
}
