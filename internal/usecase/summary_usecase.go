package usecase

import (
	"context"

	"github.com/iho/gobudget/internal/domain"
)

// SummaryUseCase computes aggregate sums over an owner's transactions.
type SummaryUseCase struct {
	transactionRepo TransactionRepository
}

// NewSummaryUseCase creates a new SummaryUseCase.
func NewSummaryUseCase(transactionRepo TransactionRepository) *SummaryUseCase {
	return &SummaryUseCase{transactionRepo: transactionRepo}
}

// Summarize returns income, expense and transfer totals for the filter.
// Pagination fields of the filter are ignored.
func (uc *SummaryUseCase) Summarize(ctx context.Context, ownerID string, filter TransactionFilter) (domain.Totals, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return domain.Totals{}, domain.NewValidationError(domain.FieldError{Field: "to", Message: "must not be before from"})
	}

	filter.Limit, filter.Offset = 0, 0

	return uc.transactionRepo.Sum(ctx, ownerID, filter)
}
