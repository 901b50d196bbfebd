package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/gobudget/internal/domain"
)

// CatalogUseCase manages owner transaction types and categories. Shared
// defaults are visible to everyone and cannot be changed.
type CatalogUseCase struct {
	uow          unitOfWork
	typeRepo     TransactionTypeRepository
	categoryRepo CategoryRepository
	catalog      CatalogProvider
	idGen        IDGenerator
	now          func() time.Time
}

// NewCatalogUseCase creates a new CatalogUseCase.
func NewCatalogUseCase(
	txManager TransactionManager,
	typeRepo TransactionTypeRepository,
	categoryRepo CategoryRepository,
	catalog CatalogProvider,
	idGen IDGenerator,
	retrier Retrier,
	timeout time.Duration,
) *CatalogUseCase {
	return &CatalogUseCase{
		uow:          newUnitOfWork(txManager, retrier, timeout),
		typeRepo:     typeRepo,
		categoryRepo: categoryRepo,
		catalog:      catalog,
		idGen:        idGen,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ListTypes returns the types visible to the owner.
func (uc *CatalogUseCase) ListTypes(ctx context.Context, ownerID string) ([]*domain.TransactionType, error) {
	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return catalog.Types(), nil
}

// GetType retrieves a visible type.
func (uc *CatalogUseCase) GetType(ctx context.Context, ownerID, id string) (*domain.TransactionType, error) {
	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	t, ok := catalog.Type(id)
	if !ok {
		return nil, domain.ErrTransactionTypeNotFound
	}
	return t, nil
}

// CreateType creates an owner transaction type. Its kind cannot change later.
func (uc *CatalogUseCase) CreateType(ctx context.Context, ownerID, name string, kind domain.TypeKind) (*domain.TransactionType, error) {
	var fields domain.Fields
	domain.ValidateName(&fields, FieldName, name)
	if kind == "" {
		fields.Add(FieldKind, "is required")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, domain.ErrInvalidTypeKind
	}

	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if catalog.TypeNameTaken(name, "") {
		return nil, domain.ErrDuplicateName
	}

	now := uc.now()
	owner := ownerID
	t := &domain.TransactionType{
		ID:        uc.idGen.Generate(),
		Name:      name,
		Kind:      kind,
		OwnerID:   &owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.typeRepo.Create(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// RenameType changes the name of an owner type.
func (uc *CatalogUseCase) RenameType(ctx context.Context, ownerID, id, name string) (*domain.TransactionType, error) {
	var fields domain.Fields
	domain.ValidateName(&fields, FieldName, name)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	t, ok := catalog.Type(id)
	if !ok {
		return nil, domain.ErrTransactionTypeNotFound
	}
	if t.IsShared() {
		return nil, domain.ErrDefaultReadOnly
	}

	name = strings.TrimSpace(name)
	if catalog.TypeNameTaken(name, id) {
		return nil, domain.ErrDuplicateName
	}

	now := uc.now()
	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.typeRepo.Rename(ctx, tx, ownerID, id, name, now)
	})
	if err != nil {
		return nil, err
	}

	renamed := *t
	renamed.Name = name
	renamed.UpdatedAt = now
	return &renamed, nil
}

// DeleteType deletes an owner type that no transaction or category uses.
func (uc *CatalogUseCase) DeleteType(ctx context.Context, ownerID, id string) error {
	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return err
	}

	t, ok := catalog.Type(id)
	if !ok {
		return domain.ErrTransactionTypeNotFound
	}
	if t.IsShared() {
		return domain.ErrDefaultReadOnly
	}

	return uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.typeRepo.Delete(ctx, tx, ownerID, id)
	})
}

// ListCategories returns visible categories, optionally of one type.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, ownerID, typeID string) ([]*domain.Category, error) {
	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(typeID), nil
}

// GetCategory retrieves a visible category.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	c, ok := catalog.Category(id)
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

// CreateCategory creates an owner category under a visible single-source type.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, ownerID, name, typeID string) (*domain.Category, error) {
	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var fields domain.Fields
	domain.ValidateName(&fields, FieldName, name)

	typ, ok := catalog.Type(typeID)
	switch {
	case strings.TrimSpace(typeID) == "":
		fields.Add(FieldTypeID, "is required")
	case !ok:
		fields.Add(FieldTypeID, "transaction type does not exist")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}
	if typ.Kind.IsDualSource() {
		return nil, domain.ErrInvalidTypeKind.WithMessage(string(typ.Kind) + " transactions do not take categories")
	}

	name = strings.TrimSpace(name)
	if catalog.CategoryNameTaken(name, "") {
		return nil, domain.ErrDuplicateName
	}

	now := uc.now()
	owner := ownerID
	c := &domain.Category{
		ID:        uc.idGen.Generate(),
		Name:      name,
		TypeID:    typ.ID,
		OwnerID:   &owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.categoryRepo.Create(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// RenameCategory changes the name of an owner category.
func (uc *CatalogUseCase) RenameCategory(ctx context.Context, ownerID, id, name string) (*domain.Category, error) {
	var fields domain.Fields
	domain.ValidateName(&fields, FieldName, name)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	c, ok := catalog.Category(id)
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if c.IsShared() {
		return nil, domain.ErrDefaultReadOnly
	}

	name = strings.TrimSpace(name)
	if catalog.CategoryNameTaken(name, id) {
		return nil, domain.ErrDuplicateName
	}

	now := uc.now()
	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.categoryRepo.Rename(ctx, tx, ownerID, id, name, now)
	})
	if err != nil {
		return nil, err
	}

	renamed := *c
	renamed.Name = name
	renamed.UpdatedAt = now
	return &renamed, nil
}

// DeleteCategory deletes an owner category no transaction uses.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, ownerID, id string) error {
	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return err
	}

	c, ok := catalog.Category(id)
	if !ok {
		return domain.ErrCategoryNotFound
	}
	if c.IsShared() {
		return domain.ErrDefaultReadOnly
	}

	return uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.categoryRepo.Delete(ctx, tx, ownerID, id)
	})
}
