package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
)

// SourceResponse represents a source in API responses.
type SourceResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	AccountNumber *string         `json:"account_number"`
	InitialAmount decimal.Decimal `json:"initial_amount"`
	Balance       decimal.Decimal `json:"balance"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SourceFromDomain converts a domain source to a response.
func SourceFromDomain(s *domain.Source) *SourceResponse {
	return &SourceResponse{
		ID:            s.ID,
		Name:          s.Name,
		AccountNumber: s.AccountNumber,
		InitialAmount: s.InitialAmount,
		Balance:       s.Balance,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SourcesFromDomain converts domain sources to responses.
func SourcesFromDomain(sources []*domain.Source) []*SourceResponse {
	result := make([]*SourceResponse, len(sources))
	for i, s := range sources {
		result[i] = SourceFromDomain(s)
	}
	return result
}

// TypeResponse represents a transaction type in API responses.
type TypeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Shared bool   `json:"shared"`
}

// TypeFromDomain converts a domain type to a response.
func TypeFromDomain(t *domain.TransactionType) *TypeResponse {
	return &TypeResponse{
		ID:     t.ID,
		Name:   t.Name,
		Kind:   string(t.Kind),
		Shared: t.IsShared(),
	}
}

// TypesFromDomain converts domain types to responses.
func TypesFromDomain(types []*domain.TransactionType) []*TypeResponse {
	result := make([]*TypeResponse, len(types))
	for i, t := range types {
		result[i] = TypeFromDomain(t)
	}
	return result
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TypeID string `json:"type_id"`
	Shared bool   `json:"shared"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:     c.ID,
		Name:   c.Name,
		TypeID: c.TypeID,
		Shared: c.IsShared(),
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// TransactionResponse represents a transaction in API responses. Related
// entities are embedded when the ledger resolved them.
type TransactionResponse struct {
	ID             string            `json:"id"`
	Description    string            `json:"description"`
	Amount         decimal.Decimal   `json:"amount"`
	Date           time.Time         `json:"date"`
	TypeID         string            `json:"type_id"`
	TypeKind       string            `json:"type_kind"`
	SourceID       string            `json:"source_id"`
	TargetSourceID *string           `json:"target_source_id"`
	CategoryID     *string           `json:"category_id"`
	Type           *TypeResponse     `json:"type,omitempty"`
	Source         *SourceResponse   `json:"source,omitempty"`
	TargetSource   *SourceResponse   `json:"target_source,omitempty"`
	Category       *CategoryResponse `json:"category,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:             t.ID,
		Description:    t.Description,
		Amount:         t.Amount,
		Date:           t.Date,
		TypeID:         t.TypeID,
		TypeKind:       string(t.TypeKind),
		SourceID:       t.SourceID,
		TargetSourceID: t.TargetSourceID,
		CategoryID:     t.CategoryID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}

	if t.Type != nil {
		resp.Type = TypeFromDomain(t.Type)
	}
	if t.Source != nil {
		resp.Source = SourceFromDomain(t.Source)
	}
	if t.TargetSource != nil {
		resp.TargetSource = SourceFromDomain(t.TargetSource)
	}
	if t.Category != nil {
		resp.Category = CategoryFromDomain(t.Category)
	}

	return resp
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// BalanceResponse is returned by recalculation.
type BalanceResponse struct {
	SourceID string          `json:"source_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// ReconciliationResponse represents the reconciliation of one source.
type ReconciliationResponse struct {
	SourceID          string          `json:"source_id"`
	SourceName        string          `json:"source_name"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationFromUseCase converts a reconciliation result to a response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		SourceID:          r.SourceID,
		SourceName:        r.SourceName,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse summarizes reconciliation of all sources.
type ReconciliationReportResponse struct {
	TotalSources      int                       `json:"total_sources"`
	ReconciledSources int                       `json:"reconciled_sources"`
	Discrepancies     []*ReconciliationResponse `json:"discrepancies"`
	CheckedAt         time.Time                 `json:"checked_at"`
}

// ReportFromUseCase converts a reconciliation report to a response.
func ReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromUseCase(d)
	}

	return &ReconciliationReportResponse{
		TotalSources:      r.TotalSources,
		ReconciledSources: r.ReconciledSources,
		Discrepancies:     discrepancies,
		CheckedAt:         r.CheckedAt,
	}
}

// SummaryResponse represents aggregate sums.
type SummaryResponse struct {
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	TransferIn  decimal.Decimal `json:"transfer_in"`
	TransferOut decimal.Decimal `json:"transfer_out"`
	Net         decimal.Decimal `json:"net"`
	Count       int64           `json:"count"`
}

// SummaryFromDomain converts totals to a response.
func SummaryFromDomain(t domain.Totals) *SummaryResponse {
	return &SummaryResponse{
		Income:      t.Income,
		Expense:     t.Expense,
		TransferIn:  t.TransferIn,
		TransferOut: t.TransferOut,
		Net:         t.Net(),
		Count:       t.Count,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterResponse is returned by registration. Token is set when bearer
// authentication is enabled.
type RegisterResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}
