package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
)

type ledgerServiceStub struct {
	createFn func(ctx context.Context, ownerID string, input usecase.TransactionInput) (*domain.Transaction, error)
	updateFn func(ctx context.Context, ownerID, id string, input usecase.TransactionInput) (*domain.Transaction, error)
	deleteFn func(ctx context.Context, ownerID, id string) error
	getFn    func(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	listFn   func(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
}

func (s *ledgerServiceStub) CreateTransaction(ctx context.Context, ownerID string, input usecase.TransactionInput) (*domain.Transaction, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *ledgerServiceStub) UpdateTransaction(ctx context.Context, ownerID, id string, input usecase.TransactionInput) (*domain.Transaction, error) {
	return s.updateFn(ctx, ownerID, id, input)
}

func (s *ledgerServiceStub) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	return s.deleteFn(ctx, ownerID, id)
}

func (s *ledgerServiceStub) GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, ownerID, id)
}

func (s *ledgerServiceStub) ListTransactions(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	return s.listFn(ctx, ownerID, filter)
}

// withURLParam routes id through a chi context the way the router does.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	var (
		capturedOwner string
		captured      usecase.TransactionInput
	)
	handler := NewTransactionHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, ownerID string, input usecase.TransactionInput) (*domain.Transaction, error) {
			capturedOwner, captured = ownerID, input
			return &domain.Transaction{
				ID:       "tx-1",
				Amount:   input.Amount,
				TypeID:   input.TypeID,
				TypeKind: domain.TypeKindExpense,
				SourceID: input.SourceID,
			}, nil
		},
	})

	body := `{"description":"coffee","amount":"3.50","type_id":"expense","source_id":"src-1"}`
	req := withOwner(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedOwner != testOwner {
		t.Fatalf("expected owner %s, got %s", testOwner, capturedOwner)
	}
	if !captured.Amount.Equal(decimal.RequireFromString("3.5")) || captured.Description != "coffee" {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "tx-1" || resp.TypeKind != "expense" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTransactionHandler_Create_DomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"self transfer", domain.ErrSelfTransfer, http.StatusUnprocessableEntity, domain.ErrSelfTransfer.Code},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity, domain.ErrInsufficientFunds.Code},
		{
			"missing reference",
			domain.NewValidationError(domain.FieldError{Field: "source_id", Message: "source not found"}),
			http.StatusBadRequest,
			domain.ErrValidation.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(&ledgerServiceStub{
				createFn: func(ctx context.Context, ownerID string, input usecase.TransactionInput) (*domain.Transaction, error) {
					return nil, tt.err
				},
			})

			req := withOwner(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{}`)))
			rec := httptest.NewRecorder()
			handler.Create(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if resp := decodeError(t, rec); resp.Error != tt.code {
				t.Fatalf("expected code %s, got %+v", tt.code, resp)
			}
		})
	}
}

func TestTransactionHandler_Create_InvalidBody(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		createFn: func(ctx context.Context, ownerID string, input usecase.TransactionInput) (*domain.Transaction, error) {
			t.Fatal("ledger should not be called")
			return nil, nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"amount":"abc"}`)))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_GetAndDelete(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		getFn: func(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
			if id != "tx-9" {
				return nil, domain.ErrTransactionNotFound
			}
			return &domain.Transaction{ID: id}, nil
		},
		deleteFn: func(ctx context.Context, ownerID, id string) error {
			if id != "tx-9" {
				return domain.ErrTransactionNotFound
			}
			return nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, withURLParam(withOwner(httptest.NewRequest(http.MethodGet, "/transactions/tx-9", nil)), "id", "tx-9"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Get(rec, withURLParam(withOwner(httptest.NewRequest(http.MethodGet, "/transactions/nope", nil)), "id", "nope"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Delete(rec, withURLParam(withOwner(httptest.NewRequest(http.MethodDelete, "/transactions/tx-9", nil)), "id", "tx-9"))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestTransactionHandler_Update(t *testing.T) {
	var capturedID string
	handler := NewTransactionHandler(&ledgerServiceStub{
		updateFn: func(ctx context.Context, ownerID, id string, input usecase.TransactionInput) (*domain.Transaction, error) {
			capturedID = id
			return &domain.Transaction{ID: id, Amount: input.Amount}, nil
		},
	})

	body := `{"amount":"7","type_id":"expense","source_id":"src-1"}`
	req := withURLParam(withOwner(httptest.NewRequest(http.MethodPut, "/transactions/tx-2", strings.NewReader(body))), "id", "tx-2")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusOK || capturedID != "tx-2" {
		t.Fatalf("unexpected update: %d %s", rec.Code, capturedID)
	}
}

func TestTransactionHandler_List_ParsesFilter(t *testing.T) {
	var captured usecase.TransactionFilter
	handler := NewTransactionHandler(&ledgerServiceStub{
		listFn: func(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
			captured = filter
			return []*domain.Transaction{{ID: "tx-1"}}, nil
		},
	})

	req := withOwner(httptest.NewRequest(http.MethodGet,
		"/transactions?source_id=src-1&type_id=expense&from=2024-01-01&to=2024-01-31&limit=500&offset=10", nil))
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.SourceID != "src-1" || captured.TypeID != "expense" || captured.Offset != 10 {
		t.Fatalf("unexpected filter %+v", captured)
	}
	if captured.From == nil || !captured.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %v", captured.From)
	}
	if captured.To == nil || captured.To.Day() != 31 {
		t.Fatalf("unexpected to %v", captured.To)
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Limit != 100 || resp.Offset != 10 || len(resp.Transactions) != 1 {
		t.Fatalf("unexpected list response %+v", resp)
	}
}

func TestTransactionHandler_List_InvalidDate(t *testing.T) {
	handler := NewTransactionHandler(&ledgerServiceStub{
		listFn: func(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
			return nil, errors.New("should not be called")
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, withOwner(httptest.NewRequest(http.MethodGet, "/transactions?from=last-week", nil)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); len(resp.Fields) != 1 || resp.Fields[0].Field != "from" {
		t.Fatalf("expected from field error, got %+v", resp)
	}
}
