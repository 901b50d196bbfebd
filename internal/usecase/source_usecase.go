package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
)

// SourceUseCase manages an owner's sources.
type SourceUseCase struct {
	uow          unitOfWork
	sourceRepo   SourceRepository
	recalculator *RecalculationUseCase
	idGen        IDGenerator
	logger       zerolog.Logger
	now          func() time.Time
}

// NewSourceUseCase creates a new SourceUseCase.
func NewSourceUseCase(
	txManager TransactionManager,
	sourceRepo SourceRepository,
	recalculator *RecalculationUseCase,
	idGen IDGenerator,
	retrier Retrier,
	timeout time.Duration,
	logger zerolog.Logger,
) *SourceUseCase {
	return &SourceUseCase{
		uow:          newUnitOfWork(txManager, retrier, timeout),
		sourceRepo:   sourceRepo,
		recalculator: recalculator,
		idGen:        idGen,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateSourceInput represents input for creating a source.
type CreateSourceInput struct {
	Name          string
	AccountNumber *string
	InitialAmount decimal.Decimal
}

// UpdateSourceInput carries the fields to change; nil fields are kept.
type UpdateSourceInput struct {
	Name          *string
	AccountNumber *string
	InitialAmount *decimal.Decimal
}

// CreateSource creates a source whose balance starts at its initial amount.
func (uc *SourceUseCase) CreateSource(ctx context.Context, ownerID string, input CreateSourceInput) (*domain.Source, error) {
	var fields domain.Fields
	domain.ValidateName(&fields, FieldName, input.Name)
	domain.ValidateAccountNumber(&fields, FieldAccountNumber, input.AccountNumber)
	domain.ValidateInitialAmount(&fields, FieldInitialAmount, input.InitialAmount)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	now := uc.now()
	source := &domain.Source{
		ID:            uc.idGen.Generate(),
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(input.Name),
		AccountNumber: trimmed(input.AccountNumber),
		InitialAmount: input.InitialAmount,
		Balance:       input.InitialAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		existing, err := uc.sourceRepo.List(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		if sourceNameTaken(existing, source.Name, "") {
			return domain.ErrDuplicateName
		}

		return uc.sourceRepo.Create(ctx, tx, source)
	})
	if err != nil {
		return nil, err
	}

	return source, nil
}

// GetSource retrieves a source.
func (uc *SourceUseCase) GetSource(ctx context.Context, ownerID, id string) (*domain.Source, error) {
	return uc.sourceRepo.GetByID(ctx, ownerID, id)
}

// ListSources lists the owner's sources. It never provisions defaults.
func (uc *SourceUseCase) ListSources(ctx context.Context, ownerID string) ([]*domain.Source, error) {
	return uc.sourceRepo.List(ctx, nil, ownerID)
}

// UpdateSource changes a source's details. A new initial amount is applied
// through the recalculator in the same unit of work.
func (uc *SourceUseCase) UpdateSource(ctx context.Context, ownerID, id string, input UpdateSourceInput) (*domain.Source, error) {
	var fields domain.Fields
	if input.Name != nil {
		domain.ValidateName(&fields, FieldName, *input.Name)
	}
	domain.ValidateAccountNumber(&fields, FieldAccountNumber, input.AccountNumber)
	if input.InitialAmount != nil {
		domain.ValidateInitialAmount(&fields, FieldInitialAmount, *input.InitialAmount)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	var updated *domain.Source
	err := uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		source, err := uc.sourceRepo.GetByIDForUpdate(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		if input.Name != nil || input.AccountNumber != nil {
			if input.Name != nil {
				name := strings.TrimSpace(*input.Name)
				existing, err := uc.sourceRepo.List(ctx, tx, ownerID)
				if err != nil {
					return err
				}
				if sourceNameTaken(existing, name, id) {
					return domain.ErrDuplicateName
				}
				source.Name = name
			}
			if input.AccountNumber != nil {
				source.AccountNumber = trimmed(input.AccountNumber)
			}
			source.UpdatedAt = uc.now()

			if err := uc.sourceRepo.UpdateDetails(ctx, tx, source); err != nil {
				return err
			}
		}

		if input.InitialAmount != nil {
			balance, err := uc.recalculator.recalculate(ctx, tx, ownerID, id, input.InitialAmount)
			if err != nil {
				return err
			}
			source.InitialAmount = *input.InitialAmount
			source.Balance = balance
		}

		updated = source
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteSource removes a source. A source referenced by any transaction
// cannot be deleted.
func (uc *SourceUseCase) DeleteSource(ctx context.Context, ownerID, id string) error {
	return uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.sourceRepo.Delete(ctx, tx, ownerID, id)
	})
}

// ProvisionDefaults creates the default sources the owner does not have yet
// and returns the ones it created. Calling it again creates nothing.
func (uc *SourceUseCase) ProvisionDefaults(ctx context.Context, ownerID string) ([]*domain.Source, error) {
	var created []*domain.Source
	err := uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		var err error
		created, err = uc.provisionDefaults(ctx, tx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (uc *SourceUseCase) provisionDefaults(ctx context.Context, tx Transaction, ownerID string) ([]*domain.Source, error) {
	existing, err := uc.sourceRepo.List(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	var created []*domain.Source
	for _, tmpl := range domain.DefaultSourceTemplates {
		if sourceNameTaken(existing, tmpl.Name, "") {
			continue
		}

		source := &domain.Source{
			ID:            uc.idGen.Generate(),
			OwnerID:       ownerID,
			Name:          tmpl.Name,
			InitialAmount: decimal.Zero,
			Balance:       decimal.Zero,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.sourceRepo.Create(ctx, tx, source); err != nil {
			return nil, err
		}
		created = append(created, source)
	}

	if len(created) > 0 {
		uc.logger.Info().
			Str("owner_id", ownerID).
			Int("count", len(created)).
			Msg("provisioned default sources")
	}

	return created, nil
}

func sourceNameTaken(sources []*domain.Source, name, excludeID string) bool {
	for _, s := range sources {
		if s.ID != excludeID && domain.SameName(s.Name, name) {
			return true
		}
	}
	return false
}
