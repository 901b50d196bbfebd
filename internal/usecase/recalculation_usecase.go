package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
)

// RecalculationUseCase rebuilds a source balance from its full history.
type RecalculationUseCase struct {
	uow             unitOfWork
	sourceRepo      SourceRepository
	transactionRepo TransactionRepository
	metrics         MetricsRecorder
	logger          zerolog.Logger
	now             func() time.Time
}

// NewRecalculationUseCase creates a new RecalculationUseCase.
func NewRecalculationUseCase(
	txManager TransactionManager,
	sourceRepo SourceRepository,
	transactionRepo TransactionRepository,
	retrier Retrier,
	metrics MetricsRecorder,
	timeout time.Duration,
	logger zerolog.Logger,
) *RecalculationUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &RecalculationUseCase{
		uow:             newUnitOfWork(txManager, retrier, timeout),
		sourceRepo:      sourceRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// RecalculateSourceBalance sets the source's initial amount (or keeps the
// current one when newInitialAmount is nil) and rewrites its balance from the
// complete transaction history. Running it twice yields the same balance.
func (uc *RecalculationUseCase) RecalculateSourceBalance(
	ctx context.Context,
	ownerID, sourceID string,
	newInitialAmount *decimal.Decimal,
) (balance decimal.Decimal, err error) {
	started := time.Now()
	defer func() { uc.metrics.RecordOperation(OpRecalculate, started, err) }()

	if newInitialAmount != nil {
		var fields domain.Fields
		domain.ValidateInitialAmount(&fields, FieldInitialAmount, *newInitialAmount)
		if err := fields.Err(); err != nil {
			return decimal.Zero, err
		}
	}

	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		var err error
		balance, err = uc.recalculate(ctx, tx, ownerID, sourceID, newInitialAmount)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	uc.logger.Debug().
		Str("owner_id", ownerID).
		Str("source_id", sourceID).
		Str("balance", balance.String()).
		Msg("source balance recalculated")

	return balance, nil
}

// recalculate runs inside an existing unit of work.
func (uc *RecalculationUseCase) recalculate(
	ctx context.Context,
	tx Transaction,
	ownerID, sourceID string,
	newInitialAmount *decimal.Decimal,
) (decimal.Decimal, error) {
	source, err := uc.sourceRepo.GetByIDForUpdate(ctx, tx, ownerID, sourceID)
	if err != nil {
		return decimal.Zero, err
	}

	initial := source.InitialAmount
	if newInitialAmount != nil {
		initial = *newInitialAmount
	}

	history, err := uc.transactionRepo.ListBySource(ctx, tx, sourceID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := domain.Recalculate(sourceID, initial, history)

	if err := uc.sourceRepo.UpdateInitialAmount(ctx, tx, sourceID, initial, balance, uc.now()); err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}
