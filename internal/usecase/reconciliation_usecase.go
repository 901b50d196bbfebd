package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
)

// ReconciliationUseCase compares stored balances with the balances derived
// from transaction history. It never writes.
type ReconciliationUseCase struct {
	sourceRepo      SourceRepository
	transactionRepo TransactionRepository
	metrics         MetricsRecorder
	logger          zerolog.Logger
}

// NewReconciliationUseCase creates a new reconciliation use case.
func NewReconciliationUseCase(
	sourceRepo SourceRepository,
	transactionRepo TransactionRepository,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *ReconciliationUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &ReconciliationUseCase{
		sourceRepo:      sourceRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// ReconciliationResult represents the result of a reconciliation check.
type ReconciliationResult struct {
	SourceID          string
	SourceName        string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

// ReconcileSource recomputes one source's balance and reports the difference
// from the stored value.
func (uc *ReconciliationUseCase) ReconcileSource(ctx context.Context, ownerID, sourceID string) (*ReconciliationResult, error) {
	source, err := uc.sourceRepo.GetByID(ctx, ownerID, sourceID)
	if err != nil {
		return nil, err
	}

	return uc.reconcile(ctx, source)
}

// ReconcileAll reconciles every source of the owner.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context, ownerID string) ([]*ReconciliationResult, error) {
	sources, err := uc.sourceRepo.List(ctx, nil, ownerID)
	if err != nil {
		return nil, err
	}

	results := make([]*ReconciliationResult, 0, len(sources))
	for _, source := range sources {
		result, err := uc.reconcile(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile source %s: %w", source.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// ReconciliationReport represents a full reconciliation report.
type ReconciliationReport struct {
	TotalSources      int
	ReconciledSources int
	Discrepancies     []*ReconciliationResult
	CheckedAt         time.Time
}

// GenerateReconciliationReport reconciles all of the owner's sources and
// collects the ones whose stored balance drifted.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context, ownerID string) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalSources:  len(results),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledSources++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	uc.metrics.RecordReconciliation(report.TotalSources, len(report.Discrepancies))

	if len(report.Discrepancies) > 0 {
		uc.logger.Warn().
			Str("owner_id", ownerID).
			Int("discrepancies", len(report.Discrepancies)).
			Msg("balance discrepancies detected")
	}

	return report, nil
}

func (uc *ReconciliationUseCase) reconcile(ctx context.Context, source *domain.Source) (*ReconciliationResult, error) {
	history, err := uc.transactionRepo.ListBySource(ctx, nil, source.ID)
	if err != nil {
		return nil, err
	}

	calculated := domain.Recalculate(source.ID, source.InitialAmount, history)
	diff := source.Balance.Sub(calculated)

	return &ReconciliationResult{
		SourceID:          source.ID,
		SourceName:        source.Name,
		RecordedBalance:   source.Balance,
		CalculatedBalance: calculated,
		Difference:        diff,
		IsReconciled:      diff.IsZero(),
		LastChecked:       time.Now().UTC(),
	}, nil
}
