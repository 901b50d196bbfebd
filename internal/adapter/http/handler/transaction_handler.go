package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
)

// LedgerService defines the behavior needed by TransactionHandler.
type LedgerService interface {
	CreateTransaction(ctx context.Context, ownerID string, input usecase.TransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, ownerID, id string, input usecase.TransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) error
	GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	ledger LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := h.ledger.CreateTransaction(r.Context(), owner, req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := h.ledger.GetTransaction(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// Update replaces a transaction and moves balances accordingly.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := h.ledger.UpdateTransaction(r.Context(), owner, chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// Delete removes a transaction and reverts its balance effect.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.ledger.DeleteTransaction(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists transactions, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	txs, err := h.ledger.ListTransactions(r.Context(), owner, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)
	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txs),
		Limit:        limit,
		Offset:       offset,
	})
}

// parseFilter reads the shared transaction filter query parameters.
func parseFilter(r *http.Request) (usecase.TransactionFilter, error) {
	q := r.URL.Query()

	var fields domain.Fields
	filter := usecase.TransactionFilter{
		SourceID:   q.Get("source_id"),
		TypeID:     q.Get("type_id"),
		CategoryID: q.Get("category_id"),
		From:       parseTimeQuery(r, "from", false, &fields),
		To:         parseTimeQuery(r, "to", true, &fields),
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	return filter, fields.Err()
}
