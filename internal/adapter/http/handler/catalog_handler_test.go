package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/domain"
)

type catalogServiceStub struct {
	listTypesFn      func(ctx context.Context, ownerID string) ([]*domain.TransactionType, error)
	getTypeFn        func(ctx context.Context, ownerID, id string) (*domain.TransactionType, error)
	createTypeFn     func(ctx context.Context, ownerID, name string, kind domain.TypeKind) (*domain.TransactionType, error)
	renameTypeFn     func(ctx context.Context, ownerID, id, name string) (*domain.TransactionType, error)
	deleteTypeFn     func(ctx context.Context, ownerID, id string) error
	listCategoriesFn func(ctx context.Context, ownerID, typeID string) ([]*domain.Category, error)
	getCategoryFn    func(ctx context.Context, ownerID, id string) (*domain.Category, error)
	createCategoryFn func(ctx context.Context, ownerID, name, typeID string) (*domain.Category, error)
	renameCategoryFn func(ctx context.Context, ownerID, id, name string) (*domain.Category, error)
	deleteCategoryFn func(ctx context.Context, ownerID, id string) error
}

func (s *catalogServiceStub) ListTypes(ctx context.Context, ownerID string) ([]*domain.TransactionType, error) {
	return s.listTypesFn(ctx, ownerID)
}

func (s *catalogServiceStub) GetType(ctx context.Context, ownerID, id string) (*domain.TransactionType, error) {
	return s.getTypeFn(ctx, ownerID, id)
}

func (s *catalogServiceStub) CreateType(ctx context.Context, ownerID, name string, kind domain.TypeKind) (*domain.TransactionType, error) {
	return s.createTypeFn(ctx, ownerID, name, kind)
}

func (s *catalogServiceStub) RenameType(ctx context.Context, ownerID, id, name string) (*domain.TransactionType, error) {
	return s.renameTypeFn(ctx, ownerID, id, name)
}

func (s *catalogServiceStub) DeleteType(ctx context.Context, ownerID, id string) error {
	return s.deleteTypeFn(ctx, ownerID, id)
}

func (s *catalogServiceStub) ListCategories(ctx context.Context, ownerID, typeID string) ([]*domain.Category, error) {
	return s.listCategoriesFn(ctx, ownerID, typeID)
}

func (s *catalogServiceStub) GetCategory(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	return s.getCategoryFn(ctx, ownerID, id)
}

func (s *catalogServiceStub) CreateCategory(ctx context.Context, ownerID, name, typeID string) (*domain.Category, error) {
	return s.createCategoryFn(ctx, ownerID, name, typeID)
}

func (s *catalogServiceStub) RenameCategory(ctx context.Context, ownerID, id, name string) (*domain.Category, error) {
	return s.renameCategoryFn(ctx, ownerID, id, name)
}

func (s *catalogServiceStub) DeleteCategory(ctx context.Context, ownerID, id string) error {
	return s.deleteCategoryFn(ctx, ownerID, id)
}

func TestCatalogHandler_CreateType(t *testing.T) {
	var capturedKind domain.TypeKind
	owner := testOwner
	handler := NewCatalogHandler(&catalogServiceStub{
		createTypeFn: func(ctx context.Context, ownerID, name string, kind domain.TypeKind) (*domain.TransactionType, error) {
			capturedKind = kind
			return &domain.TransactionType{ID: "t-1", Name: name, Kind: kind, OwnerID: &owner}, nil
		},
	})

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"name":"Refund","kind":"income"}`)
	handler.CreateType(rec, withOwner(httptest.NewRequest(http.MethodPost, "/types", body)))

	if rec.Code != http.StatusCreated || capturedKind != domain.TypeKindIncome {
		t.Fatalf("unexpected create %d %s", rec.Code, capturedKind)
	}

	var resp dto.TypeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Shared || resp.Kind != "income" {
		t.Fatalf("unexpected type %+v", resp)
	}
}

func TestCatalogHandler_SharedDefaultsAreReadOnly(t *testing.T) {
	handler := NewCatalogHandler(&catalogServiceStub{
		renameTypeFn: func(ctx context.Context, ownerID, id, name string) (*domain.TransactionType, error) {
			return nil, domain.ErrDefaultReadOnly
		},
		deleteCategoryFn: func(ctx context.Context, ownerID, id string) error {
			return domain.ErrDefaultReadOnly
		},
	})

	rec := httptest.NewRecorder()
	req := withURLParam(withOwner(httptest.NewRequest(http.MethodPatch, "/types/income", strings.NewReader(`{"name":"Earnings"}`))), "id", "income")
	handler.RenameType(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.DeleteCategory(rec, withURLParam(withOwner(httptest.NewRequest(http.MethodDelete, "/categories/food", nil)), "id", "food"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCatalogHandler_ListCategoriesByType(t *testing.T) {
	var capturedType string
	handler := NewCatalogHandler(&catalogServiceStub{
		listCategoriesFn: func(ctx context.Context, ownerID, typeID string) ([]*domain.Category, error) {
			capturedType = typeID
			return []*domain.Category{{ID: "food", Name: "Food", TypeID: "expense"}}, nil
		},
		listTypesFn: func(ctx context.Context, ownerID string) ([]*domain.TransactionType, error) {
			return []*domain.TransactionType{{ID: "income", Kind: domain.TypeKindIncome}}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.ListCategories(rec, withOwner(httptest.NewRequest(http.MethodGet, "/categories?type_id=expense", nil)))

	if rec.Code != http.StatusOK || capturedType != "expense" {
		t.Fatalf("unexpected list %d %q", rec.Code, capturedType)
	}
	if !strings.Contains(rec.Body.String(), `"shared":true`) {
		t.Fatalf("expected shared flag, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ListTypes(rec, withOwner(httptest.NewRequest(http.MethodGet, "/types", nil)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"kind":"income"`) {
		t.Fatalf("unexpected types %d %s", rec.Code, rec.Body.String())
	}
}

func TestCatalogHandler_CategoryLifecycle(t *testing.T) {
	handler := NewCatalogHandler(&catalogServiceStub{
		createCategoryFn: func(ctx context.Context, ownerID, name, typeID string) (*domain.Category, error) {
			return &domain.Category{ID: "c-1", Name: name, TypeID: typeID, OwnerID: &ownerID}, nil
		},
		getCategoryFn: func(ctx context.Context, ownerID, id string) (*domain.Category, error) {
			return nil, domain.ErrCategoryNotFound
		},
		renameCategoryFn: func(ctx context.Context, ownerID, id, name string) (*domain.Category, error) {
			return nil, domain.ErrDuplicateName
		},
		deleteTypeFn: func(ctx context.Context, ownerID, id string) error {
			return nil
		},
		getTypeFn: func(ctx context.Context, ownerID, id string) (*domain.TransactionType, error) {
			return &domain.TransactionType{ID: id, Kind: domain.TypeKindSaving}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.CreateCategory(rec, withOwner(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Pets","type_id":"expense"}`))))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.GetCategory(rec, withURLParam(withOwner(httptest.NewRequest(http.MethodGet, "/categories/x", nil)), "id", "x"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := withURLParam(withOwner(httptest.NewRequest(http.MethodPatch, "/categories/c-1", strings.NewReader(`{"name":"Rent"}`))), "id", "c-1")
	handler.RenameCategory(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.GetType(rec, withURLParam(withOwner(httptest.NewRequest(http.MethodGet, "/types/t-1", nil)), "id", "t-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.DeleteType(rec, withURLParam(withOwner(httptest.NewRequest(http.MethodDelete, "/types/t-1", nil)), "id", "t-1"))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
